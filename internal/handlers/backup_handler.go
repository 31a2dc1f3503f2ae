package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/auth"
	"pocketledger/internal/backup"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
)

// BackupHandler handles backup export and the two restore paths.
type BackupHandler struct {
	codec   *backup.Codec
	session *auth.Session
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(codec *backup.Codec, session *auth.Session) *BackupHandler {
	return &BackupHandler{codec: codec, session: session}
}

// CreateBackupRequest optionally supplies a backup password. With no
// password the default embedded key is used.
type CreateBackupRequest struct {
	Password string `json:"password"`
}

// CreateBackup bundles the account into one encrypted blob. Delivery of the
// file (share sheet or download) is the client's concern.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	var req CreateBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, ok := h.session.CurrentUser()
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	payload, err := h.codec.CreateBackup(profile, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payload":  payload,
		"filename": "pocketledger-" + profile.ID + models.BackupFileExtension,
	})
}

// RestoreRequest carries the backup blob and the optional password used
// when the default-key decode fails.
type RestoreRequest struct {
	Payload  string `json:"payload" binding:"required"`
	Password string `json:"password"`
}

// Restore replaces the ledger from a backup owned by the authenticated
// account. Identity is untouched.
func (h *BackupHandler) Restore(c *gin.Context) {
	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.codec.RestoreIntoCurrentProfile(req.Payload, req.Password, userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": true})
}

// RestoreAccount recovers a full account on a device with no authenticated
// user. Public: there is no current owner to check against.
func (h *BackupHandler) RestoreAccount(c *gin.Context) {
	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.codec.RestoreFullAccount(req.Payload, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sessionReply(c, http.StatusOK, profile)
}
