// Package models defines the domain records persisted by the credential and
// ledger stores. Records are plain values serialized to JSON storage slots;
// they carry no database machinery.
package models

// UserProfile is the single account living on this device. The ID is opaque,
// generated once at onboarding, and never changes; login identifiers (email,
// phone) are resolved to it through the identity map.
//
// The password is stored verbatim. This mirrors the shipped behavior of the
// app and is deliberately preserved; the encrypted profiles slot is an
// obfuscation layer, not a security boundary.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile,omitempty"`
	Email    string `json:"email,omitempty"`
	Language string `json:"language"`
	Currency string `json:"currency"`
	Password string `json:"password"`

	ProfilePicture string `json:"profilePicture,omitempty"`

	BiometricEnabled      bool   `json:"biometricEnabled,omitempty"`
	BiometricCredentialID string `json:"biometricCredentialId,omitempty"`
}

// Identifiers returns the login identifiers carried by the profile, in a
// stable order, skipping empty ones.
func (p *UserProfile) Identifiers() []string {
	var ids []string
	if p.Mobile != "" {
		ids = append(ids, p.Mobile)
	}
	if p.Email != "" {
		ids = append(ids, p.Email)
	}
	return ids
}
