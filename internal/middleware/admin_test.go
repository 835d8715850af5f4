package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio-backend/internal/logger"
)

func adminRouter(t *testing.T, token string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	mw := NewAdminMiddleware(log, token)
	router := gin.New()
	router.POST("/api/admin/update-similarities", mw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func postAdmin(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/update-similarities", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAdminRefusesWhenUnconfigured(t *testing.T) {
	router := adminRouter(t, "")
	w := postAdmin(router, "Bearer anything")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestRequireAdminMissingToken(t *testing.T) {
	router := adminRouter(t, "s3cret")
	w := postAdmin(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdminWrongToken(t *testing.T) {
	router := adminRouter(t, "s3cret")
	w := postAdmin(router, "Bearer wrong")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdminAcceptsToken(t *testing.T) {
	router := adminRouter(t, "s3cret")
	w := postAdmin(router, "Bearer s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireAdminNonBearerScheme(t *testing.T) {
	router := adminRouter(t, "s3cret")
	w := postAdmin(router, "Basic s3cret")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
