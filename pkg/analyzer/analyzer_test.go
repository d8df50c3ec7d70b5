package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-formatter/pkg/advisor"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

func codes(advices []*types.Advice) []int32 {
	out := make([]int32, 0, len(advices))
	for _, a := range advices {
		out = append(out, a.Code)
	}
	return out
}

func TestAnalyze_SelectAllWithoutWhere(t *testing.T) {
	r := Analyze("SELECT * FROM users")

	assert.False(t, r.Empty)
	assert.Equal(t, types.QueryType_SELECT, r.QueryType)
	assert.Equal(t, []string{"users"}, r.Tables)
	assert.False(t, r.HasWhere)
	assert.Contains(t, []types.Performance{types.Performance_POOR, types.Performance_VERY_POOR}, r.Performance)
	assert.Equal(t, 45, r.PerformanceScore)
	assert.Equal(t, types.Complexity_LOW, r.Complexity)
	assert.Equal(t, 2, r.ComplexityScore)

	require.Len(t, r.Recommendations, 3)
	assert.Contains(t, r.Recommendations[0], "WHERE")
	assert.Contains(t, r.Recommendations[1], "SELECT *")
	assert.Contains(t, r.Recommendations[2], "LIMIT")
	assert.Empty(t, r.SecurityWarnings)
	assert.Equal(t, []int32{
		advisor.MissingWhere.Int32(), advisor.SelectAll.Int32(), advisor.MissingLimit.Int32(),
	}, codes(r.Advices))
}

func TestAnalyze_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		r := Analyze(input)

		assert.True(t, r.Empty)
		assert.Equal(t, types.QueryType_UNKNOWN, r.QueryType)
		require.NotNil(t, r.Tables)
		assert.Empty(t, r.Tables)
		assert.Empty(t, r.Recommendations)
		assert.Empty(t, r.SecurityWarnings)
		assert.Empty(t, r.Advices)
	}
}

func TestAnalyze_CleanQueryIsNotEmpty(t *testing.T) {
	r := Analyze("SELECT id FROM users WHERE id = 1 ORDER BY id LIMIT 1")

	assert.False(t, r.Empty)
	assert.Empty(t, r.Recommendations)
	assert.Empty(t, r.SecurityWarnings)
	assert.Equal(t, types.Performance_EXCELLENT, r.Performance)
}

func TestAnalyze_Recommendations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []advisor.Code
	}{
		{
			name:  "or and leading wildcard",
			input: "SELECT id FROM t WHERE a = 1 OR name LIKE '%x' ORDER BY id LIMIT 5",
			want:  []advisor.Code{advisor.OrCondition, advisor.LeadingWildcardLike},
		},
		{
			name:  "limit without order by",
			input: "SELECT id FROM t WHERE a = 1 LIMIT 5",
			want:  []advisor.Code{advisor.LimitWithoutOrderBy},
		},
		{
			name:  "group by without having",
			input: "SELECT a, COUNT(*) FROM t WHERE b = 1 GROUP BY a ORDER BY a LIMIT 5",
			want:  []advisor.Code{advisor.GroupByWithoutHaving},
		},
		{
			name:  "subquery",
			input: "SELECT id FROM t WHERE id IN (SELECT id FROM u WHERE x = 1) ORDER BY id LIMIT 5",
			want:  []advisor.Code{advisor.Subquery},
		},
		{
			name: "many join kinds",
			input: "SELECT a.id FROM a INNER JOIN b ON 1=1 LEFT JOIN c ON 1=1 RIGHT JOIN d ON 1=1 " +
				"FULL JOIN e ON 1=1 WHERE a.id = 1 ORDER BY a.id LIMIT 1",
			want: []advisor.Code{advisor.TooManyJoins},
		},
		{
			name:  "order by is not an OR",
			input: "SELECT id FROM t WHERE a = 1 ORDER BY id LIMIT 5",
			want:  []advisor.Code{},
		},
		{
			name:  "update without where",
			input: "UPDATE t SET a = 1",
			want:  []advisor.Code{},
		},
		{
			name:  "delete without where",
			input: "DELETE FROM t",
			want:  []advisor.Code{advisor.MissingWhere},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Analyze(tt.input)
			want := make([]int32, 0, len(tt.want))
			for _, c := range tt.want {
				want = append(want, c.Int32())
			}
			assert.Equal(t, want, codes(r.FilterAdvices(types.Advice_WARNING)))
			assert.Len(t, r.Recommendations, len(tt.want))
		})
	}
}

func TestAnalyze_SecurityWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []advisor.Code
	}{
		{
			name:  "all but dynamic sql in order",
			input: "SELECT * FROM t WHERE name = '' + @x; DROP TABLE t -- bye",
			want: []advisor.Code{
				advisor.StringConcatenation, advisor.InlineComment, advisor.MultipleStatements, advisor.DestructiveOperation,
			},
		},
		{
			name:  "trailing semicolon is fine",
			input: "SELECT 1;  ",
			want:  []advisor.Code{},
		},
		{
			name:  "dynamic sql",
			input: "EXEC sp_who",
			want:  []advisor.Code{advisor.DynamicSQL},
		},
		{
			name:  "execute",
			input: "execute stmt",
			want:  []advisor.Code{advisor.DynamicSQL},
		},
		{
			name:  "truncate",
			input: "TRUNCATE TABLE logs",
			want:  []advisor.Code{advisor.DestructiveOperation},
		},
		{
			name:  "column names are not keywords",
			input: "SELECT deleted_at, executed FROM t WHERE id = 1 LIMIT 1",
			want:  []advisor.Code{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Analyze(tt.input)
			want := make([]int32, 0, len(tt.want))
			for _, c := range tt.want {
				want = append(want, c.Int32())
			}
			assert.Equal(t, want, codes(r.FilterAdvices(types.Advice_ERROR)))
			assert.Len(t, r.SecurityWarnings, len(tt.want))
		})
	}
}

func TestAnalyzeWithRules(t *testing.T) {
	rules := []*types.SQLReviewRule{
		{Type: string(advisor.RecommendationNoSelectAll), Level: types.SQLReviewRuleLevel_DISABLED},
		{Type: string(advisor.RecommendationRequireWhere), Level: types.SQLReviewRuleLevel_ERROR},
		{Type: string(advisor.RecommendationRequireLimit)},
	}

	r := AnalyzeWithRules("SELECT * FROM users", rules)

	require.Len(t, r.Advices, 2)
	assert.Equal(t, advisor.MissingWhere.Int32(), r.Advices[0].Code)
	assert.Equal(t, types.Advice_ERROR, r.Advices[0].Status)
	assert.Equal(t, advisor.MissingLimit.Int32(), r.Advices[1].Code)
	assert.Equal(t, types.Advice_WARNING, r.Advices[1].Status)
	assert.Len(t, r.Recommendations, 2)
	assert.Empty(t, r.SecurityWarnings)
}

// Adding a JOIN never lowers the complexity score.
func TestAnalyze_ComplexityMonotonicInJoins(t *testing.T) {
	joins := []string{
		" JOIN t2 ON t2.id = t1.id",
		" LEFT JOIN t3 ON t3.id = t1.id",
		" INNER JOIN t4 ON t4.id = t1.id",
		" LEFT JOIN t3 ON t3.x = t1.x",
		" RIGHT JOIN t5 ON t5.id = t1.id",
		" FULL JOIN t6 ON t6.id = t1.id",
		" CROSS JOIN t7",
		" JOIN t1 ON 1 = 1",
	}

	query := "SELECT t1.a FROM t1"
	prev := Analyze(query + " WHERE t1.a = 1").ComplexityScore
	for _, j := range joins {
		query += j
		score := Analyze(query + " WHERE t1.a = 1").ComplexityScore
		assert.GreaterOrEqual(t, score, prev, query)
		prev = score
	}
}

func TestChecks(t *testing.T) {
	checks := Checks()
	require.Len(t, checks, len(recommendations)+len(securityChecks))

	seenCodes := map[advisor.Code]bool{}
	seenTypes := map[advisor.Type]bool{}
	for _, c := range checks {
		assert.False(t, seenCodes[c.Code], c.Code)
		assert.False(t, seenTypes[c.Type], c.Type)
		assert.NotEmpty(t, c.Message)
		assert.NotNil(t, c.Match)
		assert.True(t, (c.Code > 100 && c.Code < 200) || (c.Code > 200 && c.Code < 300), c.Code)
		seenCodes[c.Code] = true
		seenTypes[c.Type] = true
	}
}

func TestReport_Marshal(t *testing.T) {
	data, err := json.Marshal(Analyze(""))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"empty":true`)
	assert.Contains(t, string(data), `"queryType":"UNKNOWN"`)
	assert.Contains(t, string(data), `"tables":[]`)
	assert.Contains(t, string(data), `"complexity":"LOW"`)

	out, err := yaml.Marshal(Analyze("SELECT * FROM users"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "queryType: SELECT")
	assert.Contains(t, string(out), "performance: POOR")
	assert.Contains(t, string(out), "- users")
}
