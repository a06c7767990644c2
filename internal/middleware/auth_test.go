package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/pkg/jwt"
)

func newAuthTestRouter(t *testing.T, jwtManager *jwt.Manager) (*httptest.ResponseRecorder, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	r.Use(JWTAuth(jwtManager))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      GetUserID(c),
			"display_name": GetDisplayName(c),
			"role":         GetRole(c),
		})
	})
	return w, r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
	w, r := newAuthTestRouter(t, jwtManager)

	token, err := jwtManager.GenerateAccessToken("u-1", "Asha", "contributor")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
	w, r := newAuthTestRouter(t, jwtManager)

	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
	w, r := newAuthTestRouter(t, jwtManager)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
	w, r := newAuthTestRouter(t, jwtManager)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := jwt.NewManager("test-secret-key-for-testing-only-32b!", -1, 1440)
	w, r := newAuthTestRouter(t, expired)

	token, err := expired.GenerateAccessToken("u-1", "Asha", "contributor")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
