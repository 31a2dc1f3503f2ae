package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/storage"
)

// SettingsHandler serves the plain device preference slots.
type SettingsHandler struct {
	device storage.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(device storage.Store) *SettingsHandler {
	return &SettingsHandler{device: device}
}

// GetTheme returns the saved theme preference, defaulting to light.
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	theme, ok, err := h.device.Get(storage.KeyTheme)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !ok || theme == "" {
		theme = "light"
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetThemeRequest selects the theme preference.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}

// SetTheme saves the theme preference.
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.device.Set(storage.KeyTheme, req.Theme); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
