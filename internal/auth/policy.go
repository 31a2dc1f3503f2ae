package auth

import (
	"strings"
	"unicode"

	apperrors "pocketledger/internal/errors"
)

// passwordSymbols is the fixed set of symbols the strength policy accepts.
const passwordSymbols = `!@#$%^&*()-_=+[]{};:,.?`

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// ValidatePassword enforces the minimum-strength policy and the
// confirmation match. It fails with WEAK_PASSWORD or PASSWORD_MISMATCH.
func ValidatePassword(password, confirm string) error {
	if password != confirm {
		return apperrors.ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return apperrors.ErrWeakPassword
	}
	return nil
}
