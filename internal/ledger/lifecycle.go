package ledger

import (
	"time"

	"pocketledger/internal/dates"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/uuid"
)

// reconcileOverdue is the scheduled consistency pass run once per store
// load: any Expected income whose due date is strictly before today flips to
// Overdue and the change is persisted. The pass is idempotent — a second
// load finds nothing to flip.
func (s *Store) reconcileOverdue() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := dates.Today()
	changed := false
	for i := range s.incomes {
		if s.incomes[i].Status == models.IncomeStatusExpected && s.incomes[i].Date.Before(today) {
			s.incomes[i].Status = models.IncomeStatusOverdue
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return s.persistIncomes()
}

// MarkIncomeReceived marks an income as received today and, for recurring
// incomes, generates the next occurrence as a new record so each past
// occurrence survives as its own entity.
//
// The received copy is dated today regardless of the original due date; the
// next occurrence is computed from the ORIGINAL due date (one calendar month
// for Monthly, one calendar year for Yearly). After the operation the new
// occurrence, if any, comes first, then the received record, then the
// remaining records in their prior order.
func (s *Store) MarkIncomeReceived(id string) (received *models.Income, next *models.Income, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, inc := range s.incomes {
		if inc.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil, apperrors.ErrTransactionNotFound
	}

	original := s.incomes[idx]
	if original.Status == models.IncomeStatusReceived {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income already received")
	}

	updated := original
	updated.Status = models.IncomeStatusReceived
	updated.Date = dates.Today()

	if original.Recurrence != models.RecurrenceNone {
		occurrence := models.Income{
			ID:            uuid.New(),
			Amount:        original.Amount,
			Category:      original.Category,
			Source:        original.Source,
			Date:          nextOccurrence(original.Date, original.Recurrence),
			Recurrence:    original.Recurrence,
			Status:        models.IncomeStatusExpected,
			TenantContact: original.TenantContact,
			CreatedAt:     time.Now(),
		}
		next = &occurrence
	}

	rest := make([]models.Income, 0, len(s.incomes)-1)
	rest = append(rest, s.incomes[:idx]...)
	rest = append(rest, s.incomes[idx+1:]...)

	reordered := make([]models.Income, 0, len(rest)+2)
	if next != nil {
		reordered = append(reordered, *next)
	}
	reordered = append(reordered, updated)
	reordered = append(reordered, rest...)
	s.incomes = reordered

	if err := s.persistIncomes(); err != nil {
		return nil, nil, err
	}
	return &updated, next, nil
}

// nextOccurrence advances a due date by one recurrence period.
func nextOccurrence(due dates.Date, recurrence models.Recurrence) dates.Date {
	switch recurrence {
	case models.RecurrenceMonthly:
		return due.AddMonths(1)
	case models.RecurrenceYearly:
		return due.AddYears(1)
	default:
		return due
	}
}
