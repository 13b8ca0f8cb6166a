package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"reseller-backend/internal/auth"
	"reseller-backend/internal/requestctx"
)

type stubAuth struct {
	claims *auth.Claims
	err    error
}

func (s stubAuth) Authenticate(context.Context, string) (*auth.Claims, error) {
	return s.claims, s.err
}

func newRouter(a Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/private", RequireAuth(a), func(c *gin.Context) {
		claims, _ := Claims(c)
		c.JSON(http.StatusOK, gin.H{
			"subject": claims.Subject,
			"actor":   requestctx.Actor(c.Request.Context()),
		})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	ok := stubAuth{claims: &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "admin", ID: "1"}}}

	tests := []struct {
		name   string
		auth   Authenticator
		header string
		status int
	}{
		{"missing header", ok, "", http.StatusUnauthorized},
		{"wrong scheme", ok, "Basic abc", http.StatusUnauthorized},
		{"valid token", ok, "Bearer abc", http.StatusOK},
		{"revoked token", stubAuth{err: auth.ErrTokenRevoked}, "Bearer abc", http.StatusUnauthorized},
		{"store failure", stubAuth{err: errors.New("redis down")}, "Bearer abc", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(tt.auth).ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"subject":"admin","actor":"admin"}`, w.Body.String())
			}
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, requestctx.RequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
