package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/auth"
	"pocketledger/internal/biometric"
	"pocketledger/internal/credentials"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/middleware"
	"pocketledger/internal/models"
)

// AuthHandler handles signup, onboarding, login, logout, and the biometric
// login factor.
type AuthHandler struct {
	session *auth.Session
	creds   *credentials.Store
	binder  *biometric.Binder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(session *auth.Session, creds *credentials.Store, binder *biometric.Binder) *AuthHandler {
	return &AuthHandler{session: session, creds: creds, binder: binder}
}

// ProfileResponse is the profile as exposed over HTTP. The stored password
// never leaves the server.
type ProfileResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Mobile           string `json:"mobile,omitempty"`
	Email            string `json:"email,omitempty"`
	Language         string `json:"language"`
	Currency         string `json:"currency"`
	ProfilePicture   string `json:"profilePicture,omitempty"`
	BiometricEnabled bool   `json:"biometricEnabled"`
}

func profileResponse(p *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID,
		Name:             p.Name,
		Mobile:           p.Mobile,
		Email:            p.Email,
		Language:         p.Language,
		Currency:         p.Currency,
		ProfilePicture:   p.ProfilePicture,
		BiometricEnabled: p.BiometricEnabled,
	}
}

// sessionReply bundles a profile with a fresh session token.
func sessionReply(c *gin.Context, status int, profile *models.UserProfile) {
	token, err := middleware.GenerateSessionToken(profile.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(status, gin.H{
		"profile": profileResponse(profile),
		"token":   token,
	})
}

// SignupRequest starts a new signup.
type SignupRequest struct {
	Identifier string `json:"identifier" binding:"required,min=3,max=254"`
}

// Signup begins signup for a new identifier.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.session.StartSignup(req.Identifier); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"state": h.session.State()})
}

// OnboardingRequest completes signup with the user's details.
type OnboardingRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	Mobile          string `json:"mobile" binding:"omitempty,max=20"`
	Email           string `json:"email" binding:"omitempty,email"`
	Language        string `json:"language" binding:"omitempty,max=8"`
	Currency        string `json:"currency" binding:"omitempty,max=8"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// CompleteOnboarding finishes signup and authenticates.
func (h *AuthHandler) CompleteOnboarding(c *gin.Context) {
	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.session.CompleteOnboarding(auth.OnboardingDetails{
		Name:            req.Name,
		Mobile:          req.Mobile,
		Email:           req.Email,
		Language:        req.Language,
		Currency:        req.Currency,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionReply(c, http.StatusCreated, profile)
}

// LoginRequest authenticates an existing identity.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login authenticates with identifier and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.session.Login(req.Identifier, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionReply(c, http.StatusOK, profile)
}

// Logout ends the session. Ledger data stays on the device.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.session.State()})
}

// ResetPasswordRequest replaces a forgotten password.
type ResetPasswordRequest struct {
	Identifier      string `json:"identifier" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPassword sets a new password for an identifier.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := auth.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.creds.ResetPassword(req.Identifier, req.Password); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// GetProfile returns the authenticated profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, ok := h.session.CurrentUser()
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profileResponse(profile)})
}

// UpdateProfileRequest carries optional settings changes.
type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	Mobile         *string `json:"mobile" binding:"omitempty,max=20"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Language       *string `json:"language" binding:"omitempty,max=8"`
	Currency       *string `json:"currency" binding:"omitempty,max=8"`
	ProfilePicture *string `json:"profilePicture"`
}

// UpdateProfile applies a settings change to the authenticated profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.session.UpdateProfile(auth.ProfileUpdate{
		Name:           req.Name,
		Mobile:         req.Mobile,
		Email:          req.Email,
		Language:       req.Language,
		Currency:       req.Currency,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profileResponse(profile)})
}

// RegisterBiometric enrolls the authenticated profile with the platform
// authenticator.
func (h *AuthHandler) RegisterBiometric(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.binder.Register(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profileResponse(profile)})
}

// VerifyBiometricRequest identifies the account to verify.
type VerifyBiometricRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// VerifyBiometric runs the assertion ceremony and logs the profile in.
func (h *AuthHandler) VerifyBiometric(c *gin.Context) {
	var req VerifyBiometricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.binder.Verify(c.Request.Context(), req.Identifier)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionReply(c, http.StatusOK, profile)
}
