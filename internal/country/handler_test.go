package country_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCRUD(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	h := country.NewHandler(f.svc)

	r := gin.New()
	r.GET("/countries", h.ListCountries)
	r.POST("/countries", h.CreateCountry)
	r.PUT("/countries/:id", h.UpdateCountry)
	r.DELETE("/countries/:id", h.DeleteCountry)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/countries", `{"country_id":"uy","name":"Uruguay","flag":"🇺🇾","color":"#0038A8"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(http.MethodPost, "/countries", `{"country_id":"uy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodPost, "/countries", `{"country_id":"uy","name":"Uruguay","flag":"🇺🇾","color":"#0038A8"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(http.MethodPut, "/countries/uy", `{"color":"#FFFFFF"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodPut, "/countries/uy", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []country.Country
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "#FFFFFF", list[0].Color)

	assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/countries/uy", "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/countries/uy", "").Code)
}
