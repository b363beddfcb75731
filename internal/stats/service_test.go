package stats

import (
	"context"
	"errors"
	"math"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database/dbtest"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteService(t *testing.T, now time.Time) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t, &country.Country{}, &team.Team{}, &game.GameSession{}, &game.Goal{})
	src := NewSource(team.NewRepository(db), country.NewRepository(db), game.NewRepository(db))
	return NewService(src, clockwork.NewFakeClockAt(now)), db
}

func TestDailyWindow(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	svc, db := newSQLiteService(t, now)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]game.GameSession{
		{SessionID: "s1", TeamID: "arg1", Score: 5, Timestamp: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)},
		// 早于窗口
		{SessionID: "s0", TeamID: "arg1", Score: 9, Timestamp: now.Add(-8 * 24 * time.Hour)},
	}).Error)

	daily, err := svc.Daily(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []DailyStats{{Date: "2024-03-01", TotalGoals: 5, TotalGames: 1, UniqueTeams: 1}}, daily)

	daily, err = svc.Daily(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, daily, 2)

	_, err = svc.Daily(ctx, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Monthly(ctx, -1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	monthly, err := svc.Monthly(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []MonthlyStats{{Month: "2024-02", TotalGoals: 9, TotalGames: 1, UniqueTeams: 1}, {Month: "2024-03", TotalGoals: 5, TotalGames: 1, UniqueTeams: 1}}, monthly)
}

func TestEmptyStore(t *testing.T) {
	svc, _ := newSQLiteService(t, time.Now())
	ctx := context.Background()

	board, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, board)

	st, err := svc.TeamStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, st)

	daily, err := svc.Daily(ctx, DefaultDays)
	require.NoError(t, err)
	assert.Empty(t, daily)
}

func TestLeaderboardFromStore(t *testing.T) {
	svc, db := newSQLiteService(t, time.Now())
	require.NoError(t, db.Create(&country.Country{CountryID: "ar", Name: "Argentina", Flag: "🇦🇷", Color: "#1"}).Error)
	require.NoError(t, db.Create(&[]team.Team{
		{TeamID: "arg1", Name: "A1", CountryID: "ar", Color: "#1", Goals: 2},
		{TeamID: "arg2", Name: "A2", CountryID: "ar", Color: "#2", Goals: 4},
	}).Error)

	board, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "arg2", board[0].TeamID)
	assert.Equal(t, "Argentina", board[1].CountryName)
}

func TestStoreFailurePropagates(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	boom := errors.New("connection reset by peer")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "teams"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "name", "country_id", "goals"}).AddRow(1, "arg1", "A1", "ar", 8))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "countries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "country_id", "name"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "game_sessions"`)).
		WillReturnError(boom)

	src := NewSource(team.NewRepository(db), country.NewRepository(db), game.NewRepository(db))
	svc := NewService(src, clockwork.NewFakeClock())

	st, err := svc.TeamStats(context.Background())
	assert.Nil(t, st)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLargeWindowsKeepAllSessions(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	svc, db := newSQLiteService(t, now)
	ctx := context.Background()
	require.NoError(t, db.Create(&game.GameSession{
		SessionID: "s1", TeamID: "arg1", Score: 5, Timestamp: time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
	}).Error)

	for _, days := range []int{100000, 200000, maxWindowDays, maxWindowDays + 1, math.MaxInt} {
		daily, err := svc.Daily(ctx, days)
		require.NoError(t, err)
		assert.Len(t, daily, 1, "days=%d", days)
	}
	for _, months := range []int{3000, 4000, maxWindowDays / daysPerMonth, math.MaxInt / 2, math.MaxInt} {
		monthly, err := svc.Monthly(ctx, months)
		require.NoError(t, err)
		assert.Len(t, monthly, 1, "months=%d", months)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 27, 9, 0, 0, 0, time.UTC), windowStart(now, 7))
	assert.Equal(t, time.Date(1750, 5, 21, 9, 0, 0, 0, time.UTC), windowStart(now, 100000))
	assert.True(t, windowStart(now, maxWindowDays).IsZero())
	assert.True(t, windowStart(now, math.MaxInt).IsZero())
}
