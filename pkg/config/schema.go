package config

import (
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/analyzer"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

// SchemaRule describes one check that rules can configure.
type SchemaRule struct {
	Type     string              `yaml:"type"     json:"type"`
	Category string              `yaml:"category" json:"category"`
	Code     int32               `yaml:"code"     json:"code"`
	Level    types.Advice_Status `yaml:"level"    json:"level"`
	Title    string              `yaml:"title"    json:"title"`
	Message  string              `yaml:"message"  json:"message"`
}

// Schema lists every configurable check in evaluation order.
func Schema() []SchemaRule {
	checks := analyzer.Checks()
	rules := make([]SchemaRule, 0, len(checks))
	for _, check := range checks {
		category, _, _ := strings.Cut(string(check.Type), ".")
		rules = append(rules, SchemaRule{
			Type:     string(check.Type),
			Category: strings.ToUpper(category),
			Code:     check.Code.Int32(),
			Level:    check.Status,
			Title:    check.Title,
			Message:  check.Message,
		})
	}
	return rules
}

// ConvertSchemaRulesToConfig builds a configuration that enables every
// schema rule at its default level.
func ConvertSchemaRulesToConfig(id string, schemaRules []SchemaRule) *Config {
	rules := make([]*types.SQLReviewRule, 0, len(schemaRules))
	for _, schemaRule := range schemaRules {
		rules = append(rules, &types.SQLReviewRule{
			Type:    schemaRule.Type,
			Level:   levelOf(schemaRule.Level),
			Comment: schemaRule.Title,
		})
	}
	return &Config{
		ID:    id,
		Rules: rules,
	}
}

// DefaultRulesConfig is ConvertSchemaRulesToConfig over Schema.
func DefaultRulesConfig(id string) *Config {
	return ConvertSchemaRulesToConfig(id, Schema())
}

func levelOf(status types.Advice_Status) types.SQLReviewRuleLevel {
	switch status {
	case types.Advice_ERROR:
		return types.SQLReviewRuleLevel_ERROR
	case types.Advice_WARNING:
		return types.SQLReviewRuleLevel_WARNING
	default:
		return types.SQLReviewRuleLevel_DISABLED
	}
}
