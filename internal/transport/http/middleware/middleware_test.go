package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFlash_SetThenLoad(t *testing.T) {
	router := gin.New()
	router.POST("/set", func(c *gin.Context) {
		if err := SetFlash(c, "secret", "success", "Thanks!"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/show", LoadFlash("secret"), func(c *gin.Context) {
		f, ok := FlashFromContext(c)
		if !ok {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, f.Category+":"+f.Message)
	})

	setRec := httptest.NewRecorder()
	router.ServeHTTP(setRec, httptest.NewRequest(http.MethodPost, "/set", nil))
	cookies := setRec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != FlashCookieName {
		t.Fatalf("expected flash cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "success:Thanks!" {
		t.Errorf("expected flash in context, got %q", rec.Body.String())
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("expected flash cookie to be cleared, got %v", cleared)
	}
}

func TestLoadFlash_TamperedCookieIgnored(t *testing.T) {
	router := gin.New()
	router.GET("/show", LoadFlash("secret"), func(c *gin.Context) {
		if _, ok := FlashFromContext(c); ok {
			c.String(http.StatusOK, "flash")
			return
		}
		c.String(http.StatusOK, "none")
	})

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "forged.token.value"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Body.String() != "none" {
		t.Errorf("expected tampered flash to be ignored, got %q", rec.Body.String())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	line := buf.String()
	if !strings.Contains(line, `"path":"/ping"`) || !strings.Contains(line, `"status":418`) {
		t.Errorf("unexpected request log %q", line)
	}
}
