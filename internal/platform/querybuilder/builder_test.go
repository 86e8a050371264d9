package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_WithConditionsAndPaging(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("league_id", "l1"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(20).
		Offset(40).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM teams WHERE league_id = $1 AND deleted_at IS NULL ORDER BY name LIMIT 20 OFFSET 40", query)
	assert.Equal(t, []any{"l1"}, args)
}

func TestSelect_RangeConditions(t *testing.T) {
	query, args, err := Select("*").
		From("player_game_stats").
		Where(Gte("game_time", int64(100)), Lt("game_time", int64(200))).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM player_game_stats WHERE game_time >= $1 AND game_time < $2", query)
	assert.Equal(t, []any{int64(100), int64(200)}, args)
}

func TestSelect_InConditionEmptyIsAlwaysFalse(t *testing.T) {
	query, _, err := Select("*").From("players").Where(In("id", nil)).ToSQL()
	require.NoError(t, err)
	assert.Contains(t, query, "1=0")
}

func TestInsert_MultipleRowsWithSuffix(t *testing.T) {
	query, args, err := InsertInto("team_scores").
		Columns("team_id", "week_id", "points").
		Values("t1", 202502, 16.0).
		Values("t2", 202502, 18.5).
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO team_scores (team_id, week_id, points) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING", query)
	assert.Len(t, args, 6)
}

func TestInsert_RowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdate_SetAndSetExpr(t *testing.T) {
	query, args, err := Update("teams").
		Set("moves_this_week", 2).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "t1")).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE teams SET moves_this_week = $1, updated_at = NOW() WHERE id = $2", query)
	assert.Equal(t, []any{2, "t1"}, args)
}

func TestDelete_RequiresWhere(t *testing.T) {
	_, _, err := DeleteFrom("team_scores").ToSQL()
	require.Error(t, err)

	query, args, err := DeleteFrom("team_scores").Where(Eq("week_id", 202502)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM team_scores WHERE week_id = $1", query)
	assert.Equal(t, []any{202502}, args)
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	model := struct {
		TeamID string  `db:"team_id"`
		WeekID int     `db:"week_id"`
		Points float64 `db:"points"`
		Skip   string  `db:"-"`
	}{TeamID: "t1", WeekID: 202502, Points: 31.5, Skip: "x"}

	query, args, err := InsertModel("team_scores", model, "")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO team_scores (team_id, week_id, points) VALUES ($1, $2, $3)", query)
	assert.Equal(t, []any{"t1", 202502, 31.5}, args)
}
