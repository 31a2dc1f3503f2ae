// Package ledger owns the expenses, incomes, and budgets of the device's
// user. Each collection is held in insertion order and written through to
// its own plain storage slot on every mutation; there is no batching and no
// transactional grouping across the three slots.
package ledger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
	"pocketledger/internal/storage"
	"pocketledger/internal/uuid"
)

// Store holds the three ledger collections.
type Store struct {
	slots storage.Store

	mu       sync.Mutex
	expenses []models.Expense
	incomes  []models.Income
	budgets  []models.Budget
}

// Open loads the three collections from their slots and runs the overdue
// reconcile pass once. A slot that was never written, or whose content does
// not parse, loads as an empty collection.
func Open(slots storage.Store) (*Store, error) {
	s := &Store{slots: slots}

	s.expenses = loadCollection[models.Expense](slots, storage.KeyExpenses)
	s.incomes = loadCollection[models.Income](slots, storage.KeyIncomes)
	s.budgets = loadCollection[models.Budget](slots, storage.KeyBudgets)

	if err := s.reconcileOverdue(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddExpenseInput is the typed command for recording an expense. Both direct
// user actions and assistant tool calls reduce to this shape.
type AddExpenseInput struct {
	Amount        decimal.Decimal
	Category      models.ExpenseCategory
	Description   string
	Date          dates.Date
	PaymentMethod models.PaymentMethod
}

// AddExpense records a new expense with a fresh id and creation timestamp.
func (s *Store) AddExpense(in AddExpenseInput) (*models.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !in.Category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
	}
	if !in.PaymentMethod.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payment method")
	}
	if in.Date.IsZero() {
		in.Date = dates.Today()
	}

	expense := models.Expense{
		ID:            uuid.New(),
		Amount:        in.Amount,
		Category:      in.Category,
		Description:   in.Description,
		Date:          in.Date,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, expense)
	if err := s.persistExpenses(); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes the expense and returns the removed record so the
// caller can offer an undo.
func (s *Store) DeleteExpense(id string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			if err := s.persistExpenses(); err != nil {
				return nil, err
			}
			return &e, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

// RestoreExpense reinserts a previously deleted record (the undo
// affordance). The record keeps its original id and creation timestamp and
// is placed back in creation order. The record is held to the same
// constraints as AddExpense: the payload comes back over the wire, so it
// cannot be trusted to still be the record we handed out.
func (s *Store) RestoreExpense(expense models.Expense) error {
	if expense.ID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expense id is required")
	}
	if !expense.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !expense.Category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
	}
	if !expense.PaymentMethod.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payment method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.ID == expense.ID {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "expense already present")
		}
	}

	at := len(s.expenses)
	for i, e := range s.expenses {
		if e.CreatedAt.After(expense.CreatedAt) {
			at = i
			break
		}
	}
	s.expenses = append(s.expenses[:at], append([]models.Expense{expense}, s.expenses[at:]...)...)
	return s.persistExpenses()
}

// AddIncomeInput is the typed command for recording an income.
type AddIncomeInput struct {
	Amount        decimal.Decimal
	Category      models.IncomeCategory
	Source        string
	Date          dates.Date
	Recurrence    models.Recurrence
	TenantContact string
}

// AddIncome records a new expected income with a fresh id and creation
// timestamp.
func (s *Store) AddIncome(in AddIncomeInput) (*models.Income, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !in.Category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown income category")
	}
	if in.Recurrence == "" {
		in.Recurrence = models.RecurrenceNone
	}
	if !in.Recurrence.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown recurrence")
	}
	if in.Date.IsZero() {
		in.Date = dates.Today()
	}

	income := models.Income{
		ID:            uuid.New(),
		Amount:        in.Amount,
		Category:      in.Category,
		Source:        in.Source,
		Date:          in.Date,
		Recurrence:    in.Recurrence,
		Status:        models.IncomeStatusExpected,
		TenantContact: in.TenantContact,
		CreatedAt:     time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes = append(s.incomes, income)
	if err := s.persistIncomes(); err != nil {
		return nil, err
	}
	return &income, nil
}

// DeleteIncome removes the income record.
func (s *Store) DeleteIncome(id string) (*models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, inc := range s.incomes {
		if inc.ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			if err := s.persistIncomes(); err != nil {
				return nil, err
			}
			return &inc, nil
		}
	}
	return nil, apperrors.ErrTransactionNotFound
}

// SetBudget sets the limit for a category, replacing any prior entry for
// that category. Setting the same budget twice leaves exactly one entry.
func (s *Store) SetBudget(category models.ExpenseCategory, limit decimal.Decimal) (*models.Budget, error) {
	if !category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
	}
	if !limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	budget := models.Budget{Category: category, Limit: limit}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.budgets {
		if s.budgets[i].Category == category {
			s.budgets[i] = budget
			replaced = true
			break
		}
	}
	if !replaced {
		s.budgets = append(s.budgets, budget)
	}

	if err := s.persistBudgets(); err != nil {
		return nil, err
	}
	return &budget, nil
}

// GetBudget returns the budget for a category, or BUDGET_NOT_FOUND.
func (s *Store) GetBudget(category models.ExpenseCategory) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets {
		if b.Category == category {
			budget := b
			return &budget, nil
		}
	}
	return nil, apperrors.ErrBudgetNotFound
}

// Expenses returns a copy of the expense collection in display order.
func (s *Store) Expenses() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Incomes returns a copy of the income collection in display order.
func (s *Store) Incomes() []models.Income {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Income, len(s.incomes))
	copy(out, s.incomes)
	return out
}

// Budgets returns a copy of the budget collection.
func (s *Store) Budgets() []models.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// ReplaceAll swaps in the three collections wholesale and persists each to
// its slot. Used by the restore paths; nil sections load as empty.
func (s *Store) ReplaceAll(expenses []models.Expense, incomes []models.Income, budgets []models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expenses == nil {
		expenses = []models.Expense{}
	}
	if incomes == nil {
		incomes = []models.Income{}
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}

	s.expenses = expenses
	s.incomes = incomes
	s.budgets = budgets

	if err := s.persistExpenses(); err != nil {
		return err
	}
	if err := s.persistIncomes(); err != nil {
		return err
	}
	return s.persistBudgets()
}

// loadCollection reads one collection slot. Absent or unparseable content
// loads as empty rather than failing the open.
func loadCollection[T any](slots storage.Store, key string) []T {
	raw, ok, err := slots.Get(key)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Get().Warnw("discarding unreadable ledger slot", "slot", key, "error", err)
		return nil
	}
	return items
}

func (s *Store) persistExpenses() error { return s.persist(storage.KeyExpenses, s.expenses) }
func (s *Store) persistIncomes() error  { return s.persist(storage.KeyIncomes, s.incomes) }
func (s *Store) persistBudgets() error  { return s.persist(storage.KeyBudgets, s.budgets) }

func (s *Store) persist(key string, collection any) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.slots.Set(key, string(raw))
}
