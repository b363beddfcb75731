package team_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadShirtHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), team.CreateRequest{TeamID: "arg1", Name: "A1", CountryID: "ar", Color: "#1"})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/teams/:id/shirt", team.NewHandler(f.svc, 16).UploadShirt)

	send := func(filename, contentType string, content []byte) *httptest.ResponseRecorder {
		body, ct := multipartBody(t, filename, contentType, content)
		req := httptest.NewRequest(http.MethodPost, "/teams/arg1/shirt", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send("kit.png", "image/png", []byte("tiny"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "/uploads/shirts/arg1_")

	assert.Equal(t, http.StatusBadRequest, send("notes.txt", "text/plain", []byte("hi")).Code)
	assert.Equal(t, http.StatusBadRequest, send("big.png", "image/png", bytes.Repeat([]byte("x"), 64)).Code)

	req := httptest.NewRequest(http.MethodPost, "/teams/arg1/shirt", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
