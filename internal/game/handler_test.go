package game_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/auth"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, nil)
	tokens, err := token.NewManager([]byte("game-secret"), time.Hour, clockwork.NewFakeClockAt(playedAt))
	require.NoError(t, err)

	r := gin.New()
	r.POST("/game/session", auth.OptionalAuth(tokens), game.NewHandler(f.svc).CreateSession)

	post := func(body, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/game/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"team_id":"arg1","score":3}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sess game.GameSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "arg1", sess.TeamID)
	assert.Nil(t, sess.UserID)

	signed, _, err := tokens.Issue(token.Identity{SubjectID: "u-7", Role: "user"})
	require.NoError(t, err)
	w = post(`{"team_id":"arg1","score":1,"user_id":"spoofed"}`, signed)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotNil(t, sess.UserID)
	assert.Equal(t, "u-7", *sess.UserID)

	assert.Equal(t, http.StatusBadRequest, post(`{"team_id":"arg1"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"team_id":"arg1","score":-2}`, "").Code)
	assert.Equal(t, http.StatusNotFound, post(`{"team_id":"ghost","score":1}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, post(`{"team_id":"arg1","score":1}`, "forged").Code)
}
