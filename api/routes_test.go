package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/config"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database"
	"github.com/SlpAus/mini-cup-backend/internal/platform/database/dbtest"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metadata"
	"github.com/SlpAus/mini-cup-backend/internal/platform/startup"
	"github.com/SlpAus/mini-cup-backend/internal/stats"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/SlpAus/mini-cup-backend/internal/user"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	users  *user.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	require.NoError(t, startup.InitializeApplication(db))

	tokens, err := token.NewManager([]byte("routes-secret"), 30*time.Minute, nil)
	require.NoError(t, err)

	countryRepo := country.NewRepository(db)
	teamRepo := team.NewRepository(db)
	gameRepo := game.NewRepository(db)
	userRepo := user.NewRepository(db)

	userSvc := user.NewService(db, userRepo, auth.NewPasswordHasher(4), tokens)
	deps := Deps{
		Tokens:     tokens,
		Status:     database.NewStatus(false),
		Countries:  country.NewHandler(country.NewService(db, countryRepo, teamRepo)),
		Teams:      team.NewHandler(team.NewService(db, teamRepo, countryRepo, gameRepo, t.TempDir()), 1<<20),
		Games:      game.NewHandler(game.NewService(db, gameRepo, teamRepo, nil, nil)),
		Users:      user.NewHandler(userSvc),
		Stats:      stats.NewHandler(stats.NewService(stats.NewSource(teamRepo, countryRepo, gameRepo), nil)),
		Config:     metadata.NewHandler(metadata.NewStore(db)),
		UploadsDir: t.TempDir(),
	}

	r := NewEngine(config.ServerConfig{Cors: config.CorsConfig{AllowedOrigins: []string{"*"}}})
	SetupRoutes(r, deps)
	return &testServer{router: r, users: userSvc}
}

func (s *testServer) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok user.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	return tok.AccessToken
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Mini Cup API","version":"1.0.0"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","redis":"disabled"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"free_plays":2`)

	for _, path := range []string{"/api/countries", "/api/teams", "/api/leaderboard"} {
		w = s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}

	w = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minicup_http_requests_total")
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/admin/countries", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodGet, "/api/stats/daily", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", `{"username":"fan","email":"fan@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fan := s.login(t, "fan@example.com", "pw")

	for _, path := range []string{"/api/admin/countries", "/api/admin/users", "/api/admin/config", "/api/stats/teams"} {
		w = s.do(http.MethodGet, path, "", fan)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.NotContains(t, w.Body.String(), "fan@example.com", path)
	}
	w = s.do(http.MethodPost, "/api/admin/countries", `{"country_id":"BR","name":"Brasil","flag":"🇧🇷","color":"#009C3B"}`, fan)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/countries", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAdminFlowEndToEnd(t *testing.T) {
	s := newTestServer(t)
	created, err := s.users.EnsureAdmin(context.Background(), "admin", "admin@minicup.com", "admin123")
	require.NoError(t, err)
	require.True(t, created)
	admin := s.login(t, "admin@minicup.com", "admin123")

	w := s.do(http.MethodPost, "/api/admin/countries", `{"country_id":"BR","name":"Brasil","flag":"🇧🇷","color":"#009C3B"}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/admin/teams", `{"team_id":"br-1","name":"Flamengo","country_id":"BR","color":"#C52613"}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/game/session", `{"team_id":"br-1","score":4}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/leaderboard", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var board []stats.LeaderboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, int64(4), board[0].Goals)
	assert.Equal(t, 1, board[0].Rank)

	w = s.do(http.MethodGet, "/api/stats/teams", "", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_games":1`)

	w = s.do(http.MethodGet, "/api/stats/daily?days=0", "", admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/admin/config", `{"free_plays":3,"plays_per_ad":2,"plays_per_share":2,"max_ad_views":5,"max_share_rewards":3}`, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodGet, "/api/config", "", "")
	assert.Contains(t, w.Body.String(), `"free_plays":3`)
}
