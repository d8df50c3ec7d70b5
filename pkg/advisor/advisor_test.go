package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-formatter/pkg/extractor"
	"github.com/nsxbet/sql-formatter/pkg/keyword"
	"github.com/nsxbet/sql-formatter/pkg/types"
)

func always(Context) bool { return true }

func TestRun(t *testing.T) {
	sql := "select * from t"
	checkCtx := NewContext(sql, extractor.Extract(sql, keyword.Default()))
	assert.Equal(t, "SELECT * FROM T", checkCtx.Upper)

	checks := []Check{
		{Type: "a", Code: 1, Status: types.Advice_WARNING, Title: "A", Message: "first", Match: always},
		{Type: "b", Code: 2, Status: types.Advice_WARNING, Message: "never", Match: func(Context) bool { return false }},
		{Type: "c", Code: 3, Status: types.Advice_ERROR, Title: "C", Message: "third", Match: func(c Context) bool {
			return len(c.Structure.Tables) == 1
		}},
	}

	advices := Run(checkCtx, checks)
	require.Len(t, advices, 2)
	assert.Equal(t, &types.Advice{Status: types.Advice_WARNING, Code: 1, Title: "A", Content: "first"}, advices[0])
	assert.Equal(t, &types.Advice{Status: types.Advice_ERROR, Code: 3, Title: "C", Content: "third"}, advices[1])
}

func TestRun_RecoversFromPanic(t *testing.T) {
	checks := []Check{
		{Type: "boom", Code: 1, Status: types.Advice_ERROR, Match: func(c Context) bool {
			return c.Structure.HasWhere // nil Structure
		}},
		{Type: "nil", Code: 2, Status: types.Advice_ERROR},
		{Type: "ok", Code: 3, Status: types.Advice_WARNING, Message: "fine", Match: always},
	}

	advices := Run(Context{Statement: "select 1"}, checks)
	require.Len(t, advices, 1)
	assert.Equal(t, int32(3), advices[0].Code)
}

func TestRun_Levels(t *testing.T) {
	checks := []Check{
		{Type: "a", Code: 1, Status: types.Advice_WARNING, Match: always},
		{Type: "b", Code: 2, Status: types.Advice_WARNING, Match: always},
		{Type: "c", Code: 3, Status: types.Advice_ERROR, Match: always},
		{Type: "d", Code: 4, Status: types.Advice_ERROR, Match: always},
	}
	checkCtx := Context{Levels: map[Type]types.SQLReviewRuleLevel{
		"a": types.SQLReviewRuleLevel_DISABLED,
		"b": types.SQLReviewRuleLevel_ERROR,
		"c": types.SQLReviewRuleLevel_WARNING,
		"d": types.SQLReviewRuleLevel_LEVEL_UNSPECIFIED,
	}}

	advices := Run(checkCtx, checks)
	require.Len(t, advices, 3)
	assert.Equal(t, types.Advice_ERROR, advices[0].Status)
	assert.Equal(t, types.Advice_WARNING, advices[1].Status)
	assert.Equal(t, types.Advice_ERROR, advices[2].Status)
}

func TestRun_NoChecks(t *testing.T) {
	advices := Run(Context{}, nil)
	assert.NotNil(t, advices)
	assert.Empty(t, advices)
}

func TestNewStatusBySQLReviewRuleLevel(t *testing.T) {
	status, err := NewStatusBySQLReviewRuleLevel(types.SQLReviewRuleLevel_ERROR)
	require.NoError(t, err)
	assert.Equal(t, types.Advice_ERROR, status)

	status, err = NewStatusBySQLReviewRuleLevel(types.SQLReviewRuleLevel_WARNING)
	require.NoError(t, err)
	assert.Equal(t, types.Advice_WARNING, status)

	_, err = NewStatusBySQLReviewRuleLevel(types.SQLReviewRuleLevel_DISABLED)
	assert.Error(t, err)
}
