package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-api/logger"
	"storefront-api/models"

	"github.com/gin-gonic/gin"
)

var secret = []byte("test-secret")

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(logger.Discard()))
	r.GET("/me", AuthRequired(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetRole(c), "requestId": GetRequestID(c)})
	})
	r.GET("/admin", AuthRequired(secret), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, role models.UserRole, ttl time.Duration) string {
	t.Helper()
	tok, err := GenerateToken(&models.User{ID: "user-1", Email: "a@b.co", Role: role}, secret, ttl)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

func do(r *gin.Engine, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"expired", token(t, models.RoleCustomer, -time.Minute), http.StatusUnauthorized},
		{"valid", token(t, models.RoleCustomer, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, "/me", tt.token); w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tok := token(t, models.RoleCustomer, time.Hour)
	if _, err := ParseToken(tok, []byte("other")); err == nil {
		t.Fatal("expected signature error")
	}
	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != models.RoleCustomer {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRoleRequired(t *testing.T) {
	r := newRouter()
	if w := do(r, "/admin", token(t, models.RoleCustomer, time.Hour)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}
	if w := do(r, "/admin", token(t, models.RoleAdmin, time.Hour)); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newRouter()

	w := do(r, "/me", token(t, models.RoleCustomer, time.Hour))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected client id to be kept, got %q", got)
	}
}
