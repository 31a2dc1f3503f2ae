// Package backup serializes the whole account — profile plus ledger — into
// one encrypted text blob and reverses the operation, enforcing ownership on
// the in-profile restore path.
package backup

import (
	"errors"
	"time"

	"pocketledger/internal/auth"
	"pocketledger/internal/cipher"
	"pocketledger/internal/credentials"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
)

// Codec creates and restores backup payloads.
type Codec struct {
	creds   *credentials.Store
	ledger  *ledger.Store
	session *auth.Session
}

// NewCodec creates a backup codec over the credential store, the ledger,
// and the auth session.
func NewCodec(creds *credentials.Store, ledgerStore *ledger.Store, session *auth.Session) *Codec {
	return &Codec{creds: creds, ledger: ledgerStore, session: session}
}

// CreateBackup bundles the authenticated profile and ledger into one
// encrypted payload. With an empty password the default embedded key is
// used; otherwise the key is derived from the password.
func (c *Codec) CreateBackup(profile *models.UserProfile, password string) (string, error) {
	if profile == nil || profile.ID == "" {
		return "", apperrors.ErrUnauthorized
	}

	payload := models.BackupPayload{
		Metadata: &models.BackupMetadata{
			UserID:    profile.ID,
			Email:     profile.Email,
			Version:   models.BackupFormatVersion,
			Timestamp: time.Now(),
		},
		Profile: profile,
		Data: &models.BackupData{
			Expenses: c.ledger.Expenses(),
			Incomes:  c.ledger.Incomes(),
			Budgets:  c.ledger.Budgets(),
		},
	}

	return codecFor(password).Encode(payload)
}

// RestoreIntoCurrentProfile replaces the ledger collections from a backup
// that belongs to the currently authenticated account. Identity is not
// touched. Fails with INVALID_BACKUP_FORMAT when metadata or data is
// missing and with OWNERSHIP_MISMATCH when the payload was made by a
// different account; the ledger is unchanged on any failure.
func (c *Codec) RestoreIntoCurrentProfile(cipherText, password, currentUserID string) error {
	payload, err := c.decode(cipherText, password)
	if err != nil {
		return err
	}
	if payload.Metadata == nil || payload.Data == nil {
		return apperrors.ErrInvalidBackupFormat
	}
	if payload.Metadata.UserID != currentUserID {
		return apperrors.ErrOwnershipMismatch
	}
	return c.ledger.ReplaceAll(payload.Data.Expenses, payload.Data.Incomes, payload.Data.Budgets)
}

// RestoreFullAccount recovers an account on a device with no authenticated
// user: the embedded profile is written into the credential store, its
// identifiers are rebound, it becomes the active user, and the ledger
// collections are replaced. There is no ownership check — there is no
// current owner yet.
func (c *Codec) RestoreFullAccount(cipherText, password string) (*models.UserProfile, error) {
	payload, err := c.decode(cipherText, password)
	if err != nil {
		return nil, err
	}
	if payload.Profile == nil || payload.Profile.ID == "" || payload.Data == nil {
		return nil, apperrors.ErrInvalidBackupFormat
	}

	if err := c.creds.SaveProfile(payload.Profile); err != nil {
		return nil, err
	}
	if err := c.creds.BindIdentifiers(payload.Profile.ID, payload.Profile.Identifiers()); err != nil {
		return nil, err
	}
	if err := c.session.CompleteLogin(payload.Profile); err != nil {
		return nil, err
	}
	if err := c.ledger.ReplaceAll(payload.Data.Expenses, payload.Data.Incomes, payload.Data.Budgets); err != nil {
		return nil, err
	}
	return payload.Profile, nil
}

// decode tries the default embedded key first, then retries with the
// password-derived key when a password was supplied. Both variants exist in
// the wild; files written by either must open.
func (c *Codec) decode(cipherText, password string) (*models.BackupPayload, error) {
	var payload models.BackupPayload
	err := cipher.Default().Decode(cipherText, &payload)
	if err == nil {
		return &payload, nil
	}

	var appErr *apperrors.AppError
	if password != "" && errors.As(err, &appErr) && appErr.Code == apperrors.ErrDecodeFailure.Code {
		payload = models.BackupPayload{}
		if err := cipher.WithPassword(password).Decode(cipherText, &payload); err != nil {
			return nil, err
		}
		return &payload, nil
	}
	return nil, err
}

// codecFor picks the cipher for a create operation.
func codecFor(password string) *cipher.Codec {
	if password == "" {
		return cipher.Default()
	}
	return cipher.WithPassword(password)
}
