// Package credentials owns the identity map (login identifier -> user id)
// and the encrypted profiles slot (user id -> profile). Identifiers are
// lookup handles only; the opaque user id is the primary key of a profile.
package credentials

import (
	"pocketledger/internal/cipher"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/storage"
	"pocketledger/internal/uuid"
)

// Store resolves identifiers and persists profiles.
type Store struct {
	slots storage.Store
	codec *cipher.Codec
}

// NewStore creates a credential store over the device slot store.
func NewStore(slots storage.Store, codec *cipher.Codec) *Store {
	return &Store{slots: slots, codec: codec}
}

// IdentifierExists reports whether the identifier is already mapped to a user.
func (s *Store) IdentifierExists(identifier string) (bool, error) {
	ids, err := s.loadIdentityMap()
	if err != nil {
		return false, err
	}
	_, ok := ids[identifier]
	return ok, nil
}

// CreateIdentity allocates a fresh user id for the identifier. Fails with
// IDENTIFIER_TAKEN if the identifier is already mapped.
func (s *Store) CreateIdentity(identifier string) (string, error) {
	if identifier == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "identifier is required")
	}
	ids, err := s.loadIdentityMap()
	if err != nil {
		return "", err
	}
	if _, ok := ids[identifier]; ok {
		return "", apperrors.ErrIdentifierTaken
	}

	userID := uuid.New()
	ids[identifier] = userID
	if err := s.saveIdentityMap(ids); err != nil {
		return "", err
	}
	return userID, nil
}

// BindIdentifiers adds identifier -> userID entries without removing existing
// ones. An identifier already bound to a different user is skipped; entries
// are never removed in this design.
func (s *Store) BindIdentifiers(userID string, identifiers []string) error {
	ids, err := s.loadIdentityMap()
	if err != nil {
		return err
	}

	changed := false
	for _, identifier := range identifiers {
		if identifier == "" {
			continue
		}
		if existing, ok := ids[identifier]; ok && existing != userID {
			continue
		}
		if ids[identifier] != userID {
			ids[identifier] = userID
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return s.saveIdentityMap(ids)
}

// SaveProfile writes the profile into the encrypted profiles slot. The whole
// map of known users is re-encoded on every save; the read-modify-write is
// not isolated against concurrent logical operations (single-user device).
func (s *Store) SaveProfile(profile *models.UserProfile) error {
	if profile == nil || profile.ID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "profile with id is required")
	}
	profiles, err := s.loadProfiles()
	if err != nil {
		return err
	}
	profiles[profile.ID] = *profile
	return s.saveProfiles(profiles)
}

// LoadProfile returns the profile for the user id, or USER_NOT_FOUND.
func (s *Store) LoadProfile(userID string) (*models.UserProfile, error) {
	profiles, err := s.loadProfiles()
	if err != nil {
		return nil, err
	}
	profile, ok := profiles[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &profile, nil
}

// FindByIdentifier resolves an identifier to its profile, or USER_NOT_FOUND.
func (s *Store) FindByIdentifier(identifier string) (*models.UserProfile, error) {
	ids, err := s.loadIdentityMap()
	if err != nil {
		return nil, err
	}
	userID, ok := ids[identifier]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s.LoadProfile(userID)
}

// VerifyPassword resolves the identifier and checks the password by exact
// match against the stored value. Fails USER_NOT_FOUND when the identifier
// is unknown and INVALID_CREDENTIALS when the password differs.
func (s *Store) VerifyPassword(identifier, password string) (*models.UserProfile, error) {
	profile, err := s.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if profile.Password != password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return profile, nil
}

// ResetPassword replaces the stored password for the identifier's profile.
func (s *Store) ResetPassword(identifier, newPassword string) error {
	profile, err := s.FindByIdentifier(identifier)
	if err != nil {
		return err
	}
	profile.Password = newPassword
	return s.SaveProfile(profile)
}

// loadIdentityMap reads the plain identifier -> user id slot.
func (s *Store) loadIdentityMap() (map[string]string, error) {
	raw, ok, err := s.slots.Get(storage.KeyIdentityMap)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string)
	if !ok || raw == "" {
		return ids, nil
	}
	if err := unmarshalSlot(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) saveIdentityMap(ids map[string]string) error {
	raw, err := marshalSlot(ids)
	if err != nil {
		return err
	}
	return s.slots.Set(storage.KeyIdentityMap, raw)
}

// loadProfiles decodes the encrypted user id -> profile slot.
func (s *Store) loadProfiles() (map[string]models.UserProfile, error) {
	raw, ok, err := s.slots.Get(storage.KeyProfiles)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]models.UserProfile)
	if !ok || raw == "" {
		return profiles, nil
	}
	if err := s.codec.Decode(raw, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Store) saveProfiles(profiles map[string]models.UserProfile) error {
	encoded, err := s.codec.Encode(profiles)
	if err != nil {
		return err
	}
	return s.slots.Set(storage.KeyProfiles, encoded)
}
