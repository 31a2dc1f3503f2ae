// Package biometric registers and verifies a platform biometric credential
// as an alternate login factor. The two ceremonies — creating a platform
// credential and asserting against a stored one — are consumed through the
// Platform interface, never implemented here.
package biometric

import (
	"context"
	"encoding/base64"

	"pocketledger/internal/auth"
	"pocketledger/internal/credentials"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
)

// Platform is the device authenticator consumed by the binder.
type Platform interface {
	// CreateCredential runs the registration ceremony for (user id, display
	// name) and returns an opaque credential identifier.
	CreateCredential(ctx context.Context, userID, displayName string) ([]byte, error)
	// GetAssertion runs the verification ceremony for a stored credential
	// identifier.
	GetAssertion(ctx context.Context, credentialID []byte) error
}

// Binder binds platform credentials to profiles.
type Binder struct {
	platform Platform
	creds    *credentials.Store
	session  *auth.Session
}

// NewBinder creates a binder over the platform authenticator, the credential
// store, and the auth session.
func NewBinder(platform Platform, creds *credentials.Store, session *auth.Session) *Binder {
	return &Binder{platform: platform, creds: creds, session: session}
}

// Register requests a platform credential for the profile, stores its
// identifier base64-encoded on the profile with the enabled flag, and
// persists. Any platform rejection (user cancel, unsupported, policy
// failure) surfaces as BIOMETRIC_CEREMONY_FAILED; nothing is stored then.
func (b *Binder) Register(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := b.creds.LoadProfile(userID)
	if err != nil {
		return nil, err
	}

	credentialID, err := b.platform.CreateCredential(ctx, profile.ID, profile.Name)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrBiometricCeremonyFailed, err)
	}

	profile.BiometricEnabled = true
	profile.BiometricCredentialID = base64.StdEncoding.EncodeToString(credentialID)
	if err := b.creds.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Verify looks up the profile bound to the identifier, runs the assertion
// ceremony against its stored credential, and on success completes login
// exactly as a password login does. Auth state is untouched on any failure.
func (b *Binder) Verify(ctx context.Context, identifier string) (*models.UserProfile, error) {
	profile, err := b.creds.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if !profile.BiometricEnabled || profile.BiometricCredentialID == "" {
		return nil, apperrors.ErrBiometricNotEnrolled
	}

	credentialID, err := base64.StdEncoding.DecodeString(profile.BiometricCredentialID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrBiometricNotEnrolled, err)
	}

	if err := b.platform.GetAssertion(ctx, credentialID); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrBiometricCeremonyFailed, err)
	}

	if err := b.session.CompleteLogin(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UnsupportedPlatform is the authenticator used when the device exposes no
// biometric capability; every ceremony fails.
type UnsupportedPlatform struct{}

// CreateCredential always fails with BIOMETRIC_UNAVAILABLE.
func (UnsupportedPlatform) CreateCredential(context.Context, string, string) ([]byte, error) {
	return nil, apperrors.ErrBiometricUnavailable
}

// GetAssertion always fails with BIOMETRIC_UNAVAILABLE.
func (UnsupportedPlatform) GetAssertion(context.Context, []byte) error {
	return apperrors.ErrBiometricUnavailable
}
