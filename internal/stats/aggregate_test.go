package stats

import (
	"testing"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var countries = map[string]country.Country{
	"ar": {CountryID: "ar", Name: "Argentina", Flag: "🇦🇷"},
	"br": {CountryID: "br", Name: "Brasil", Flag: "🇧🇷"},
}

func TestLeaderboardOrderAndTies(t *testing.T) {
	teams := []team.Team{
		{TeamID: "arg1", Name: "A1", CountryID: "ar", Goals: 3, Color: "#1"},
		{TeamID: "bra1", Name: "B1", CountryID: "br", Goals: 9, Color: "#2"},
		{TeamID: "arg2", Name: "A2", CountryID: "ar", Goals: 3, Color: "#3"},
		{TeamID: "gone", Name: "G", CountryID: "xx", CountryName: "stale", Flag: "stale", Goals: 0, Color: "#4"},
	}

	board := BuildLeaderboard(teams, countries)
	require.Len(t, board, 4)

	ids := []string{board[0].TeamID, board[1].TeamID, board[2].TeamID, board[3].TeamID}
	assert.Equal(t, []string{"bra1", "arg1", "arg2", "gone"}, ids)
	for i, e := range board {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.LessOrEqual(t, e.Goals, board[i-1].Goals)
		}
	}
	assert.Equal(t, "Brasil", board[0].CountryName)
	assert.Equal(t, "🇧🇷", board[0].Flag)
	assert.Empty(t, board[3].CountryName)
	assert.Empty(t, board[3].Flag)

	// 输入不被修改
	assert.Equal(t, "arg1", teams[0].TeamID)

	assert.Empty(t, BuildLeaderboard(nil, countries))
}

func TestTeamStats(t *testing.T) {
	teams := []team.Team{
		{TeamID: "arg1", Name: "A1", CountryID: "ar", Goals: 8},
		{TeamID: "bra1", Name: "B1", CountryID: "br", Goals: 0},
	}
	sessions := []game.GameSession{
		{TeamID: "arg1", Score: 5},
		{TeamID: "arg1", Score: 3},
		{TeamID: "arg1", Score: 0},
	}

	st := BuildTeamStats(teams, countries, sessions)
	require.Len(t, st, 2)

	assert.Equal(t, TeamStats{
		TeamID: "arg1", TeamName: "A1", CountryName: "Argentina",
		TotalGoals: 8, TotalGames: 3, AverageScore: 2.67, BestScore: 5,
	}, st[0])
	assert.Equal(t, TeamStats{
		TeamID: "bra1", TeamName: "B1", CountryName: "Brasil",
	}, st[1])
}

func TestTeamStatsUsesStoredCounter(t *testing.T) {
	teams := []team.Team{{TeamID: "arg1", Name: "A1", CountryID: "ar", Goals: 100}}
	st := BuildTeamStats(teams, countries, []game.GameSession{{TeamID: "arg1", Score: 1}})
	assert.EqualValues(t, 100, st[0].TotalGoals)
}

func TestBuckets(t *testing.T) {
	at := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return ts
	}
	sessions := []game.GameSession{
		{TeamID: "b", Score: 2, Timestamp: at("2024-03-02T10:00:00Z")},
		{TeamID: "a", Score: 5, Timestamp: at("2024-03-01T23:59:59Z")},
		{TeamID: "a", Score: 1, Timestamp: at("2024-03-02T00:00:00Z")},
		// UTC+8 的3月3日凌晨仍属于UTC的3月2日
		{TeamID: "a", Score: 4, Timestamp: at("2024-03-03T01:00:00+08:00")},
		{TeamID: "c", Score: 0, Timestamp: at("2024-02-10T08:00:00Z")},
	}

	daily := BuildDaily(sessions)
	assert.Equal(t, []DailyStats{
		{Date: "2024-02-10", TotalGoals: 0, TotalGames: 1, UniqueTeams: 1},
		{Date: "2024-03-01", TotalGoals: 5, TotalGames: 1, UniqueTeams: 1},
		{Date: "2024-03-02", TotalGoals: 7, TotalGames: 3, UniqueTeams: 2},
	}, daily)

	monthly := BuildMonthly(sessions)
	assert.Equal(t, []MonthlyStats{
		{Month: "2024-02", TotalGoals: 0, TotalGames: 1, UniqueTeams: 1},
		{Month: "2024-03", TotalGoals: 12, TotalGames: 4, UniqueTeams: 2},
	}, monthly)

	assert.Empty(t, BuildDaily(nil))
	assert.Empty(t, BuildMonthly(nil))
}
