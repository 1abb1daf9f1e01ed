package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Errors())
	r.GET("/public", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusConflict, errors.New("blind box is out of stock")).SetType(gin.ErrorTypePublic)
	})
	r.GET("/private", func(c *gin.Context) {
		_ = c.AbortWithError(http.StatusInternalServerError, errors.New("pq: connection refused")).
			SetType(gin.ErrorTypePrivate)
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("details"))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	})
	return r
}

func TestErrors(t *testing.T) {
	r := newErrorsRouter()

	cases := []struct {
		name       string
		url        string
		accept     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public error as json",
			url:        "/public",
			accept:     "application/json",
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"blind box is out of stock"}`,
		}, {
			name:       "private error hidden",
			url:        "/private",
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		}, {
			name:       "body already written",
			url:        "/written",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid credentials"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantBody, rec.Body.String())
		})
	}
}
