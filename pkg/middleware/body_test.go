package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(maxBytes int64, ran *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/", BodySizeLimiter(maxBytes), func(c *gin.Context) {
		*ran = true
		c.Status(http.StatusOK)
	})

	return router
}

func TestBodySizeLimiterRejectsOversizedBody(t *testing.T) {
	var ran bool
	router := newLimitedRouter(10, &ran)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, ran, "handler ran after the oversized body was rejected")
}

func TestBodySizeLimiterPassesSmallBody(t *testing.T) {
	var ran bool
	router := newLimitedRouter(1<<20, &ran)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
}
