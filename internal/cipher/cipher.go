// Package cipher implements the reversible transform used to obscure
// persisted profiles and exported backups: canonical JSON, XORed with a key
// repeated cyclically, then base64-encoded. It is an obfuscation layer
// against casual inspection of the data at rest, not a security boundary —
// the default key ships with every installation.
package cipher

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"golang.org/x/crypto/pbkdf2"

	apperrors "pocketledger/internal/errors"
)

// defaultKey is the fixed secret shared by every installation. Backups
// encoded with it are readable by any copy of the app; the password-derived
// variant below exists for users who want their own key.
const defaultKey = "pocketledger-device-secret-7f3a"

// Key derivation parameters for the password variant.
const (
	kdfIterations = 4096
	kdfKeyLen     = 32
)

// kdfSalt is fixed: both sides of a backup round-trip must derive the same
// key from the same password with nothing but the file in hand.
var kdfSalt = []byte("pocketledger.backup.v1")

// Codec encodes and decodes values with one symmetric key.
type Codec struct {
	key []byte
}

// New creates a codec with the given key. The key must be non-empty.
func New(key []byte) *Codec {
	if len(key) == 0 {
		key = []byte(defaultKey)
	}
	return &Codec{key: key}
}

// Default returns a codec using the fixed embedded key.
func Default() *Codec {
	return New([]byte(defaultKey))
}

// WithPassword returns a codec whose key is derived from a user-supplied
// password via PBKDF2-SHA256.
func WithPassword(password string) *Codec {
	key := pbkdf2.Key([]byte(password), kdfSalt, kdfIterations, kdfKeyLen, sha256.New)
	return New(key)
}

// Encode serializes v to canonical JSON, XORs it with the key, and returns
// the base64 text form.
func (c *Codec) Encode(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return base64.StdEncoding.EncodeToString(c.xor(plain)), nil
}

// Decode reverses Encode into out. It fails with DECODE_FAILURE on corrupted
// or foreign-keyed input and never panics. Callers must pass a fresh zero
// value so that a failed decode leaves no partially-applied state visible.
func (c *Codec) Decode(cipherText string, out any) error {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDecodeFailure, err)
	}
	plain := c.xor(raw)
	if !json.Valid(plain) {
		return apperrors.ErrDecodeFailure
	}
	if err := json.Unmarshal(plain, out); err != nil {
		return apperrors.Wrap(apperrors.ErrDecodeFailure, err)
	}
	return nil
}

// xor applies the key cyclically. XOR is its own inverse, so the same
// routine serves both directions.
func (c *Codec) xor(data []byte) []byte {
	result := make([]byte, len(data))
	for i, b := range data {
		result[i] = b ^ c.key[i%len(c.key)]
	}
	return result
}
