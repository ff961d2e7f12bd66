package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/auth"
)

func newGuardedRouter(cfg auth.TokenConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secret", RequireAdmin(cfg), func(c *gin.Context) {
		username, ok := AdminFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no admin in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": username})
	})
	return r
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	cfg := auth.TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"}
	r := newGuardedRouter(cfg)

	token, err := auth.CreateToken("admin", cfg)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin_Rejections(t *testing.T) {
	cfg := auth.TokenConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test"}
	r := newGuardedRouter(cfg)

	// No header.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Token signed with a different secret.
	foreign, err := auth.CreateToken("admin", auth.TokenConfig{Secret: "other", Expiry: time.Hour})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
