package advisor

// Code is the error code for advisor.
type Code int

// Application error codes for advisor.
const (
	// 101 ~ 199 recommendation.
	MissingWhere         Code = 101
	SelectAll            Code = 102
	MissingLimit         Code = 103
	TooManyJoins         Code = 104
	OrCondition          Code = 105
	LeadingWildcardLike  Code = 106
	LimitWithoutOrderBy  Code = 107
	GroupByWithoutHaving Code = 108
	Subquery             Code = 109

	// 201 ~ 299 security.
	StringConcatenation  Code = 201
	InlineComment        Code = 202
	MultipleStatements   Code = 203
	DestructiveOperation Code = 204
	DynamicSQL           Code = 205
)

// Int32 returns the int32 value of the code.
func (c Code) Int32() int32 {
	return int32(c)
}
