package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz_exam_backend/internal/middleware"
	"quiz_exam_backend/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *repository.ProgressRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	progress := repository.NewProgressRepository(rdb, time.Hour, time.Hour)

	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(progress), func(c *gin.Context) {
		id := middleware.GetIdentity(c)
		if id == nil {
			c.String(http.StatusInternalServerError, "no identity")
			return
		}
		c.String(http.StatusOK, id.Phone)
	})
	return r, progress
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "deadbeef"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	r, progress := newAuthRouter(t)
	if err := progress.SaveToken("tok123", &repository.Identity{UserID: 7, Phone: "13800000001"}); err != nil {
		t.Fatalf("save token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "tok123"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "13800000001" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	r, progress := newAuthRouter(t)
	if err := progress.SaveToken("tok456", &repository.Identity{UserID: 8, Phone: "13800000002"}); err != nil {
		t.Fatalf("save token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok456")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "13800000002" {
		t.Fatalf("body = %q", w.Body.String())
	}
}
