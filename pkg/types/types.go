package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// FormatStyle selects the layout algorithm used by the formatter
type FormatStyle int32

const (
	FormatStyle_STANDARD FormatStyle = 0
	FormatStyle_COMPACT  FormatStyle = 1
	FormatStyle_EXPANDED FormatStyle = 2
	FormatStyle_TABULAR  FormatStyle = 3
)

var formatStyleNames = map[FormatStyle]string{
	FormatStyle_STANDARD: "STANDARD",
	FormatStyle_COMPACT:  "COMPACT",
	FormatStyle_EXPANDED: "EXPANDED",
	FormatStyle_TABULAR:  "TABULAR",
}

func (s FormatStyle) String() string {
	return enumName(formatStyleNames, s)
}

// ParseFormatStyle resolves a style name, case-insensitively.
func ParseFormatStyle(s string) (FormatStyle, bool) {
	return parseEnum(formatStyleNames, s)
}

// MarshalJSON implements json.Marshaler for FormatStyle
func (s FormatStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for FormatStyle
func (s *FormatStyle) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return s.set(str)
}

// MarshalYAML implements yaml.Marshaler for FormatStyle
func (s FormatStyle) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for FormatStyle
func (s *FormatStyle) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	return s.set(str)
}

func (s *FormatStyle) set(name string) error {
	style, ok := ParseFormatStyle(name)
	if !ok {
		return errors.Errorf("unknown format style: %q", name)
	}
	*s = style
	return nil
}

// QueryType is the statement kind derived from the leading keyword
type QueryType int32

const (
	QueryType_UNKNOWN QueryType = 0
	QueryType_SELECT  QueryType = 1
	QueryType_INSERT  QueryType = 2
	QueryType_UPDATE  QueryType = 3
	QueryType_DELETE  QueryType = 4
	QueryType_CREATE  QueryType = 5
	QueryType_ALTER   QueryType = 6
	QueryType_DROP    QueryType = 7
)

var queryTypeNames = map[QueryType]string{
	QueryType_UNKNOWN: "UNKNOWN",
	QueryType_SELECT:  "SELECT",
	QueryType_INSERT:  "INSERT",
	QueryType_UPDATE:  "UPDATE",
	QueryType_DELETE:  "DELETE",
	QueryType_CREATE:  "CREATE",
	QueryType_ALTER:   "ALTER",
	QueryType_DROP:    "DROP",
}

func (q QueryType) String() string {
	return enumName(queryTypeNames, q)
}

// MarshalJSON implements json.Marshaler for QueryType
func (q QueryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.String())
}

// UnmarshalJSON implements json.Unmarshaler for QueryType
func (q *QueryType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*q, _ = parseEnum(queryTypeNames, s)
	return nil
}

// MarshalYAML implements yaml.Marshaler for QueryType
func (q QueryType) MarshalYAML() (interface{}, error) {
	return q.String(), nil
}

// Complexity is the bucket of the accumulated complexity score
type Complexity int32

const (
	Complexity_LOW       Complexity = 0
	Complexity_MEDIUM    Complexity = 1
	Complexity_HIGH      Complexity = 2
	Complexity_VERY_HIGH Complexity = 3
)

var complexityNames = map[Complexity]string{
	Complexity_LOW:       "LOW",
	Complexity_MEDIUM:    "MEDIUM",
	Complexity_HIGH:      "HIGH",
	Complexity_VERY_HIGH: "VERY_HIGH",
}

func (c Complexity) String() string {
	return enumName(complexityNames, c)
}

// MarshalJSON implements json.Marshaler for Complexity
func (c Complexity) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler for Complexity
func (c *Complexity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c, _ = parseEnum(complexityNames, s)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Complexity
func (c Complexity) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Performance is the bucket of the accumulated performance score
type Performance int32

const (
	Performance_EXCELLENT Performance = 0
	Performance_GOOD      Performance = 1
	Performance_FAIR      Performance = 2
	Performance_POOR      Performance = 3
	Performance_VERY_POOR Performance = 4
)

var performanceNames = map[Performance]string{
	Performance_EXCELLENT: "EXCELLENT",
	Performance_GOOD:      "GOOD",
	Performance_FAIR:      "FAIR",
	Performance_POOR:      "POOR",
	Performance_VERY_POOR: "VERY_POOR",
}

func (p Performance) String() string {
	return enumName(performanceNames, p)
}

// MarshalJSON implements json.Marshaler for Performance
func (p Performance) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler for Performance
func (p *Performance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p, _ = parseEnum(performanceNames, s)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Performance
func (p Performance) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// SQLReviewRuleLevel overrides the status of a check, or disables it
type SQLReviewRuleLevel int32

const (
	SQLReviewRuleLevel_LEVEL_UNSPECIFIED SQLReviewRuleLevel = 0
	SQLReviewRuleLevel_ERROR             SQLReviewRuleLevel = 1
	SQLReviewRuleLevel_WARNING           SQLReviewRuleLevel = 2
	SQLReviewRuleLevel_DISABLED          SQLReviewRuleLevel = 3
)

var ruleLevelNames = map[SQLReviewRuleLevel]string{
	SQLReviewRuleLevel_LEVEL_UNSPECIFIED: "LEVEL_UNSPECIFIED",
	SQLReviewRuleLevel_ERROR:             "ERROR",
	SQLReviewRuleLevel_WARNING:           "WARNING",
	SQLReviewRuleLevel_DISABLED:          "DISABLED",
}

func (l SQLReviewRuleLevel) String() string {
	return enumName(ruleLevelNames, l)
}

// UnmarshalYAML implements yaml.Unmarshaler for SQLReviewRuleLevel
func (l *SQLReviewRuleLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*l, _ = parseEnum(ruleLevelNames, s)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for SQLReviewRuleLevel
func (l *SQLReviewRuleLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l, _ = parseEnum(ruleLevelNames, s)
	return nil
}

// MarshalYAML implements yaml.Marshaler for SQLReviewRuleLevel
func (l SQLReviewRuleLevel) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// MarshalJSON implements json.Marshaler for SQLReviewRuleLevel
func (l SQLReviewRuleLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// Advice_Status represents the status of an advice
type Advice_Status int32

const (
	Advice_STATUS_UNSPECIFIED Advice_Status = 0
	Advice_SUCCESS            Advice_Status = 1
	Advice_WARNING            Advice_Status = 2
	Advice_ERROR              Advice_Status = 3
)

var adviceStatusNames = map[Advice_Status]string{
	Advice_STATUS_UNSPECIFIED: "STATUS_UNSPECIFIED",
	Advice_SUCCESS:            "SUCCESS",
	Advice_WARNING:            "WARNING",
	Advice_ERROR:              "ERROR",
}

func (s Advice_Status) String() string {
	return enumName(adviceStatusNames, s)
}

// MarshalJSON implements json.Marshaler for Advice_Status
func (s Advice_Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for Advice_Status
func (s *Advice_Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s, _ = parseEnum(adviceStatusNames, str)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Advice_Status
func (s Advice_Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// SQLReviewRule configures a single analysis check by its type
type SQLReviewRule struct {
	Type    string             `json:"type"              yaml:"type"`
	Level   SQLReviewRuleLevel `json:"level"             yaml:"level"`
	Comment string             `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Advice represents a single finding of the analyzer
type Advice struct {
	Status        Advice_Status `json:"status"                  yaml:"status"`
	Code          int32         `json:"code"                    yaml:"code"`
	Title         string        `json:"title"                   yaml:"title"`
	Content       string        `json:"content"                 yaml:"content"`
	StartPosition *Position     `json:"startPosition,omitempty" yaml:"startPosition,omitempty"`
}

// Position represents a position in the source code
type Position struct {
	Line   int32 `json:"line"   yaml:"line"`
	Column int32 `json:"column" yaml:"column"`
}

func enumName[T comparable](names map[T]string, v T) string {
	if name, ok := names[v]; ok {
		return name
	}
	return "UNKNOWN"
}

// parseEnum matches s against names case-insensitively. The zero value is
// returned with false when nothing matches.
func parseEnum[T comparable](names map[T]string, s string) (T, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for v, name := range names {
		if name == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}
