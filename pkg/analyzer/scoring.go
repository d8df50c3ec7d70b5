package analyzer

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-formatter/pkg/types"
)

// facts are the inputs of both scores.
type facts struct {
	upper      string
	tables     int
	joins      int
	subqueries int
}

// weight contributes points to a score. Weights are folded in order.
type weight struct {
	name   string
	points func(f facts) int
}

func when(cond bool, points int) int {
	if cond {
		return points
	}
	return 0
}

func contains(s string) func(f facts) bool {
	return func(f facts) bool { return strings.Contains(f.upper, s) }
}

func has(pattern *regexp.Regexp) func(f facts) bool {
	return func(f facts) bool { return pattern.MatchString(f.upper) }
}

func flat(test func(f facts) bool, points int) func(f facts) int {
	return func(f facts) int { return when(test(f), points) }
}

var (
	wordOr    = regexp.MustCompile(`\bOR\b`)
	wordLike  = regexp.MustCompile(`\bLIKE\b`)
	wordIndex = regexp.MustCompile(`\bINDEX\b`)
)

var complexityWeights = []weight{
	{"select", flat(contains("SELECT"), 1)},
	{"write", flat(func(f facts) bool {
		return strings.Contains(f.upper, "INSERT") || strings.Contains(f.upper, "UPDATE") || strings.Contains(f.upper, "DELETE")
	}, 2)},
	{"tables", func(f facts) int { return f.tables }},
	{"joins", func(f facts) int { return 2 * f.joins }},
	{"subqueries", func(f facts) int { return 3 * f.subqueries }},
	{"group by", flat(contains("GROUP BY"), 2)},
	{"having", flat(contains("HAVING"), 2)},
	{"order by", flat(contains("ORDER BY"), 1)},
	{"union", flat(contains("UNION"), 3)},
	{"cte", flat(contains("WITH"), 2)},
	{"case", flat(contains("CASE"), 1)},
	{"exists", flat(contains("EXISTS"), 2)},
	{"window", flat(contains("WINDOW"), 3)},
}

// PerformanceBase is the performance score before any weight applies.
const PerformanceBase = 100

var performanceWeights = []weight{
	{"full scan", flat(func(f facts) bool { return !strings.Contains(f.upper, "WHERE") && f.tables > 0 }, -30)},
	{"join count", flat(func(f facts) bool { return f.joins > 3 }, -20)},
	{"select all", flat(contains("SELECT *"), -15)},
	{"unbounded select", flat(func(f facts) bool {
		return !strings.Contains(f.upper, "LIMIT") && strings.Contains(f.upper, "SELECT")
	}, -10)},
	{"or", flat(has(wordOr), -5)},
	{"like", flat(has(wordLike), -5)},
	{"wildcard", flat(contains("%"), -5)},
	{"limit", flat(contains("LIMIT"), 5)},
	{"index", flat(has(wordIndex), 10)},
}

func fold(f facts, start int, weights []weight) int {
	score := start
	for _, w := range weights {
		score += w.points(f)
	}
	return score
}

// Score computes the complexity and performance scores of the normalized
// text upper and buckets them.
func Score(upper string, tableCount, joinCount, subqueryCount int) Scores {
	f := facts{upper: upper, tables: tableCount, joins: joinCount, subqueries: subqueryCount}
	s := Scores{
		ComplexityScore:  fold(f, 0, complexityWeights),
		PerformanceScore: fold(f, PerformanceBase, performanceWeights),
	}
	s.Complexity = ComplexityOf(s.ComplexityScore)
	s.Performance = PerformanceOf(s.PerformanceScore)
	return s
}

// Scores holds both scores and their buckets.
type Scores struct {
	Complexity       types.Complexity  `json:"complexity"       yaml:"complexity"`
	ComplexityScore  int               `json:"complexityScore"  yaml:"complexityScore"`
	Performance      types.Performance `json:"performance"      yaml:"performance"`
	PerformanceScore int               `json:"performanceScore" yaml:"performanceScore"`
}

// ComplexityOf buckets a complexity score.
func ComplexityOf(score int) types.Complexity {
	switch {
	case score <= 3:
		return types.Complexity_LOW
	case score <= 8:
		return types.Complexity_MEDIUM
	case score <= 15:
		return types.Complexity_HIGH
	default:
		return types.Complexity_VERY_HIGH
	}
}

// PerformanceOf buckets a performance score.
func PerformanceOf(score int) types.Performance {
	switch {
	case score >= 85:
		return types.Performance_EXCELLENT
	case score >= 70:
		return types.Performance_GOOD
	case score >= 50:
		return types.Performance_FAIR
	case score >= 30:
		return types.Performance_POOR
	default:
		return types.Performance_VERY_POOR
	}
}
