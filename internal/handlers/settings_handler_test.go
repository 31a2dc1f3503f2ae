package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupSettingsRouter(s *stack) *gin.Engine {
	handler := NewSettingsHandler(s.device)
	r := gin.New()
	r.GET("/settings/theme", handler.GetTheme)
	r.PUT("/settings/theme", handler.SetTheme)
	return r
}

func TestSettingsHandler_Theme(t *testing.T) {
	t.Run("defaults to light", func(t *testing.T) {
		r := setupSettingsRouter(newTestStack(t))

		rec := doRequest(r, "GET", "/settings/theme", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["theme"] != "light" {
			t.Errorf("expected light, got %v", parseJSON(t, rec)["theme"])
		}
	})

	t.Run("saves preference", func(t *testing.T) {
		r := setupSettingsRouter(newTestStack(t))

		rec := doRequest(r, "PUT", "/settings/theme", `{"theme":"dark"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doRequest(r, "GET", "/settings/theme", "")
		if parseJSON(t, rec)["theme"] != "dark" {
			t.Errorf("expected dark, got %v", parseJSON(t, rec)["theme"])
		}
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		r := setupSettingsRouter(newTestStack(t))

		rec := doRequest(r, "PUT", "/settings/theme", `{"theme":"solarized"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
