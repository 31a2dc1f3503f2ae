package biometric

import (
	"context"
	"errors"
	"testing"

	"pocketledger/internal/auth"
	"pocketledger/internal/cipher"
	"pocketledger/internal/credentials"
	"pocketledger/internal/models"
	"pocketledger/internal/storage"
	"pocketledger/internal/testutil"
)

// fakePlatform is a scriptable authenticator.
type fakePlatform struct {
	createErr error
	assertErr error
	created   []byte
}

func (f *fakePlatform) CreateCredential(_ context.Context, userID, _ string) ([]byte, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = []byte("cred-" + userID)
	return f.created, nil
}

func (f *fakePlatform) GetAssertion(_ context.Context, credentialID []byte) error {
	if f.assertErr != nil {
		return f.assertErr
	}
	if string(credentialID) != string(f.created) {
		return errors.New("unknown credential")
	}
	return nil
}

func newTestBinder(t *testing.T, platform Platform) (*Binder, *auth.Session, *models.UserProfile) {
	t.Helper()

	device := storage.NewMemStore()
	creds := credentials.NewStore(device, cipher.Default())
	session, err := auth.NewSession(creds, device, storage.NewMemStore())
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, session.StartSignup("a@b.com"))
	profile, err := session.CompleteOnboarding(auth.OnboardingDetails{
		Name:            "Ada",
		Email:           "a@b.com",
		Password:        testutil.TestPassword,
		ConfirmPassword: testutil.TestPassword,
	})
	testutil.AssertNoError(t, err)

	return NewBinder(platform, creds, session), session, profile
}

func TestRegister(t *testing.T) {
	t.Run("stores_credential_on_profile", func(t *testing.T) {
		binder, _, profile := newTestBinder(t, &fakePlatform{})

		updated, err := binder.Register(context.Background(), profile.ID)
		testutil.AssertNoError(t, err)

		if !updated.BiometricEnabled {
			t.Error("expected biometric flag to be set")
		}
		if updated.BiometricCredentialID == "" {
			t.Error("expected credential id to be stored")
		}
	})

	t.Run("ceremony_failure_stores_nothing", func(t *testing.T) {
		platform := &fakePlatform{createErr: errors.New("user cancelled")}
		binder, _, profile := newTestBinder(t, platform)

		_, err := binder.Register(context.Background(), profile.ID)
		testutil.AssertAppError(t, err, "BIOMETRIC_CEREMONY_FAILED")
	})

	t.Run("unknown_user", func(t *testing.T) {
		binder, _, _ := newTestBinder(t, &fakePlatform{})

		_, err := binder.Register(context.Background(), "no-such-id")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("unsupported_platform", func(t *testing.T) {
		binder, _, profile := newTestBinder(t, UnsupportedPlatform{})

		_, err := binder.Register(context.Background(), profile.ID)
		testutil.AssertAppError(t, err, "BIOMETRIC_CEREMONY_FAILED")
	})
}

func TestVerify(t *testing.T) {
	t.Run("logs_in_like_password_path", func(t *testing.T) {
		platform := &fakePlatform{}
		binder, session, profile := newTestBinder(t, platform)

		_, err := binder.Register(context.Background(), profile.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, session.Logout())

		verified, err := binder.Verify(context.Background(), "a@b.com")
		testutil.AssertNoError(t, err)
		if verified.ID != profile.ID {
			t.Errorf("expected %s, got %s", profile.ID, verified.ID)
		}
		if session.State() != auth.StateAuthenticated {
			t.Errorf("expected Authenticated, got %s", session.State())
		}
	})

	t.Run("not_enrolled", func(t *testing.T) {
		binder, session, _ := newTestBinder(t, &fakePlatform{})
		testutil.AssertNoError(t, session.Logout())

		_, err := binder.Verify(context.Background(), "a@b.com")
		testutil.AssertAppError(t, err, "BIOMETRIC_NOT_ENROLLED")
	})

	t.Run("failed_assertion_leaves_auth_state", func(t *testing.T) {
		platform := &fakePlatform{}
		binder, session, profile := newTestBinder(t, platform)

		_, err := binder.Register(context.Background(), profile.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, session.Logout())

		platform.assertErr = errors.New("no match")
		_, err = binder.Verify(context.Background(), "a@b.com")
		testutil.AssertAppError(t, err, "BIOMETRIC_CEREMONY_FAILED")

		if session.State() != auth.StateUnauthenticated {
			t.Errorf("expected Unauthenticated after failed ceremony, got %s", session.State())
		}
	})

	t.Run("unknown_identifier", func(t *testing.T) {
		binder, _, _ := newTestBinder(t, &fakePlatform{})

		_, err := binder.Verify(context.Background(), "nobody@b.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
