package models

import (
	"encoding/json"
	"time"
)

// BackupFormatVersion is written into every backup's metadata.
const BackupFormatVersion = 1

// BackupFileExtension is the conventional extension for exported backups.
const BackupFileExtension = ".plbak"

// BackupMetadata identifies the account a backup belongs to.
type BackupMetadata struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// BackupData carries the three ledger collections.
type BackupData struct {
	Expenses []Expense `json:"expenses"`
	Incomes  []Income  `json:"incomes"`
	Budgets  []Budget  `json:"budgets"`
}

// UnmarshalJSON decodes each collection independently: a section that is
// not an array loads as empty rather than failing the whole payload.
func (d *BackupData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Expenses json.RawMessage `json:"expenses"`
		Incomes  json.RawMessage `json:"incomes"`
		Budgets  json.RawMessage `json:"budgets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Expenses = decodeArray[Expense](raw.Expenses)
	d.Incomes = decodeArray[Income](raw.Incomes)
	d.Budgets = decodeArray[Budget](raw.Budgets)
	return nil
}

func decodeArray[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// BackupPayload is the full encrypted bundle exported and restored by the
// backup codec: account metadata, the profile, and the ledger.
type BackupPayload struct {
	Metadata *BackupMetadata `json:"metadata"`
	Profile  *UserProfile    `json:"userProfile"`
	Data     *BackupData     `json:"data"`
}
