package credentials

import (
	"encoding/json"

	apperrors "pocketledger/internal/errors"
)

// marshalSlot serializes a plain (unencrypted) slot value.
func marshalSlot(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return string(raw), nil
}

// unmarshalSlot parses a plain slot value into a fresh out value.
func unmarshalSlot(raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apperrors.Wrap(apperrors.ErrDecodeFailure, err)
	}
	return nil
}
