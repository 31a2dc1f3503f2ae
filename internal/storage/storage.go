// Package storage provides the string-keyed slots the rest of the core
// persists into. Two scopes exist: a device store whose slots survive across
// sessions (SQLite-backed), and a session store that is lost when the
// process exits, used for the "is a session active" flag.
package storage

// Slot keys. Each logical collection or flag owns exactly one slot.
const (
	KeyIdentityMap   = "pl_identity_map"   // plain JSON: identifier -> user id
	KeyProfiles      = "pl_profiles"       // cipher-encoded JSON: user id -> profile
	KeyActiveUser    = "pl_active_user"    // plain user id
	KeyExpenses      = "pl_expenses"       // plain JSON array
	KeyIncomes       = "pl_incomes"        // plain JSON array
	KeyBudgets       = "pl_budgets"        // plain JSON array
	KeyTheme         = "pl_theme"          // plain string, "light" or "dark"
	KeySessionActive = "pl_session_active" // session scope only
)

// Store is a string-keyed slot store. Get reports ok=false when the slot has
// never been written (distinct from an empty value).
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
