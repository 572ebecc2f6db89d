package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courseloom/courseloom-backend/internal/response"
)

func loggedRouter(buf *bytes.Buffer) *gin.Engine {
	log := zerolog.New(buf)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.Use(RequestLogger(log))
	r.Use(RequireInstructorToken())
	r.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestLoggerTagsInstructorSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "inst-7"})
	signed, err := token.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := loggedRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), `"instructor_id":"inst-7"`)
	assert.Contains(t, buf.String(), `"path":"/protected"`)
	assert.Contains(t, buf.String(), `"request_id":"`)
}

func TestRequestLoggerOmitsSubjectForOpaqueToken(t *testing.T) {
	var buf bytes.Buffer
	r := loggedRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, buf.String(), "instructor_id")
	assert.Contains(t, buf.String(), `"status":204`)
}
