// Package auth implements the device login/signup/onboarding/logout state
// machine over the credential store. The "is a session active" flag lives in
// the session-scoped store, which is lost with the process, so re-opening
// the app always requires re-authentication; the active user id and all
// encrypted/ledger data live in the device scope and survive.
package auth

import (
	"sync"

	"pocketledger/internal/credentials"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/storage"
)

// State is the authentication state of the device session.
type State string

const (
	StateUnauthenticated      State = "Unauthenticated"
	StateSignupPending        State = "SignupPending"
	StateOnboardingIncomplete State = "OnboardingIncomplete"
	StateAuthenticated        State = "Authenticated"
)

// Session flag values written to the session-scoped store.
const (
	flagOnboarding = "onboarding"
	flagActive     = "active"
)

// signupIdentifierKey remembers which identifier a pending signup was started
// with. Session scope only: an interrupted onboarding re-enters onboarding on
// the next open, while a closed tab after logout starts clean.
const signupIdentifierKey = "pl_signup_identifier"

// OnboardingDetails carries everything collected during onboarding.
type OnboardingDetails struct {
	Name            string
	Mobile          string
	Email           string
	Language        string
	Currency        string
	Password        string
	ConfirmPassword string
}

// ChatMessage is one turn of the in-memory assistant conversation. History
// is discarded on logout and never persisted.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the authentication state machine.
type Session struct {
	creds   *credentials.Store
	device  storage.Store
	session storage.Store

	mu                sync.Mutex
	state             State
	pendingIdentifier string
	profile           *models.UserProfile
	chatHistory       []ChatMessage
}

// NewSession creates the session and reattaches any interrupted state: an
// onboarding flag without a profile re-enters onboarding, an active flag
// with a stored active user resumes as authenticated.
func NewSession(creds *credentials.Store, device, session storage.Store) (*Session, error) {
	s := &Session{
		creds:   creds,
		device:  device,
		session: session,
		state:   StateUnauthenticated,
	}
	if err := s.resume(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) resume() error {
	flag, ok, err := s.session.Get(storage.KeySessionActive)
	if err != nil || !ok {
		return err
	}

	switch flag {
	case flagOnboarding:
		identifier, _, err := s.session.Get(signupIdentifierKey)
		if err != nil {
			return err
		}
		s.state = StateOnboardingIncomplete
		s.pendingIdentifier = identifier
	case flagActive:
		userID, ok, err := s.device.Get(storage.KeyActiveUser)
		if err != nil {
			return err
		}
		if !ok || userID == "" {
			return nil
		}
		profile, err := s.creds.LoadProfile(userID)
		if err != nil {
			// Stale flag pointing at a missing profile; stay unauthenticated.
			return nil
		}
		s.state = StateAuthenticated
		s.profile = profile
	}
	return nil
}

// State returns the current authentication state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated profile, if any.
func (s *Session) CurrentUser() (*models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.profile == nil {
		return nil, false
	}
	snapshot := *s.profile
	return &snapshot, true
}

// StartSignup begins signup for a new identifier. Fails with
// IDENTIFIER_TAKEN (no state change) if the identifier is already mapped.
// On success the session moves to SignupPending and the short-lived
// "authenticated, no profile yet" flag is persisted so an interrupted
// onboarding re-enters onboarding rather than the login screen.
func (s *Session) StartSignup(identifier string) error {
	if identifier == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "identifier is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.creds.IdentifierExists(identifier)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrIdentifierTaken
	}

	s.state = StateSignupPending
	s.pendingIdentifier = identifier
	s.profile = nil

	if err := s.session.Set(storage.KeySessionActive, flagOnboarding); err != nil {
		return err
	}
	return s.session.Set(signupIdentifierKey, identifier)
}

// CompleteOnboarding finishes signup: enforces the password policy,
// allocates the opaque user id, binds the signup identifier plus any
// mobile/email supplied, persists the profile, and authenticates.
func (s *Session) CompleteOnboarding(details OnboardingDetails) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSignupPending && s.state != StateOnboardingIncomplete {
		return nil, apperrors.ErrNoSignupPending
	}
	if err := ValidatePassword(details.Password, details.ConfirmPassword); err != nil {
		return nil, err
	}

	userID, err := s.creds.CreateIdentity(s.pendingIdentifier)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:       userID,
		Name:     details.Name,
		Mobile:   details.Mobile,
		Email:    details.Email,
		Language: defaultString(details.Language, "en"),
		Currency: defaultString(details.Currency, "$"),
		Password: details.Password,
	}

	if err := s.creds.BindIdentifiers(userID, profile.Identifiers()); err != nil {
		return nil, err
	}
	if err := s.creds.SaveProfile(profile); err != nil {
		return nil, err
	}

	if err := s.authenticateLocked(profile); err != nil {
		return nil, err
	}
	s.pendingIdentifier = ""
	_ = s.session.Delete(signupIdentifierKey)
	return profile, nil
}

// Login authenticates an existing identity. Failure leaves the state
// unchanged and surfaces the failure kind (USER_NOT_FOUND or
// INVALID_CREDENTIALS).
func (s *Session) Login(identifier, password string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.creds.VerifyPassword(identifier, password)
	if err != nil {
		return nil, err
	}
	if err := s.authenticateLocked(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CompleteLogin authenticates a profile whose identity was verified outside
// the password path: a biometric assertion or a full-account restore.
func (s *Session) CompleteLogin(profile *models.UserProfile) error {
	if profile == nil || profile.ID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "profile with id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticateLocked(profile)
}

// authenticateLocked records the active user and marks the session live.
// Callers hold s.mu.
func (s *Session) authenticateLocked(profile *models.UserProfile) error {
	if err := s.device.Set(storage.KeyActiveUser, profile.ID); err != nil {
		return err
	}
	if err := s.session.Set(storage.KeySessionActive, flagActive); err != nil {
		return err
	}
	snapshot := *profile
	s.state = StateAuthenticated
	s.profile = &snapshot
	return nil
}

// Logout clears the in-memory profile, the active-session flag, and any
// in-memory chat history. Ledger data stays on the device; the active user
// id survives so a later login reattaches to the existing data.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateUnauthenticated
	s.profile = nil
	s.pendingIdentifier = ""
	s.chatHistory = nil

	if err := s.session.Delete(storage.KeySessionActive); err != nil {
		return err
	}
	return s.session.Delete(signupIdentifierKey)
}

// UpdateProfile applies a settings change to the authenticated profile,
// rebinds any changed identifiers, and persists.
func (s *Session) UpdateProfile(update ProfileUpdate) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated || s.profile == nil {
		return nil, apperrors.ErrUnauthorized
	}

	profile := *s.profile
	update.apply(&profile)

	if err := s.creds.BindIdentifiers(profile.ID, profile.Identifiers()); err != nil {
		return nil, err
	}
	if err := s.creds.SaveProfile(&profile); err != nil {
		return nil, err
	}

	s.profile = &profile
	snapshot := profile
	return &snapshot, nil
}

// AppendChat records one turn of assistant conversation in memory.
func (s *Session) AppendChat(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatHistory = append(s.chatHistory, msg)
}

// ChatHistory returns a copy of the in-memory conversation.
func (s *Session) ChatHistory() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.chatHistory))
	copy(out, s.chatHistory)
	return out
}

// ProfileUpdate carries optional settings changes; nil fields are untouched.
type ProfileUpdate struct {
	Name           *string
	Mobile         *string
	Email          *string
	Language       *string
	Currency       *string
	ProfilePicture *string
}

func (u ProfileUpdate) apply(p *models.UserProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Mobile != nil {
		p.Mobile = *u.Mobile
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	if u.Currency != nil {
		p.Currency = *u.Currency
	}
	if u.ProfilePicture != nil {
		p.ProfilePicture = *u.ProfilePicture
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
