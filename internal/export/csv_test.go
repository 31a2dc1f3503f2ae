package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
	"pocketledger/internal/models"
	"pocketledger/internal/testutil"
)

func TestWriteCSV(t *testing.T) {
	t.Run("one_row_per_record", func(t *testing.T) {
		expenses := []models.Expense{{
			ID:            "e1",
			Amount:        decimal.NewFromFloat(12.50),
			Category:      models.ExpenseCategoryFood,
			Description:   "Lunch",
			Date:          dates.New(2024, time.March, 1),
			PaymentMethod: models.PaymentMethodCash,
		}}
		incomes := []models.Income{{
			ID:       "i1",
			Amount:   decimal.NewFromInt(100),
			Category: models.IncomeCategorySalary,
			Source:   "Acme Corp",
			Date:     dates.New(2024, time.March, 5),
			Status:   models.IncomeStatusExpected,
		}}

		var buf strings.Builder
		testutil.AssertNoError(t, WriteCSV(&buf, expenses, incomes))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "Type,Date,Category,Description/Source,Amount,Status" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if lines[1] != "Expense,2024-03-01,Food,Lunch,-12.5,Paid" {
			t.Errorf("unexpected expense row: %s", lines[1])
		}
		if lines[2] != "Income,2024-03-05,Salary,Acme Corp,100,Expected" {
			t.Errorf("unexpected income row: %s", lines[2])
		}
	})

	t.Run("empty_ledger_writes_header_only", func(t *testing.T) {
		var buf strings.Builder
		testutil.AssertNoError(t, WriteCSV(&buf, nil, nil))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 1 {
			t.Errorf("expected header only, got %d lines", len(lines))
		}
	})

	t.Run("embedded_quotes_are_doubled", func(t *testing.T) {
		expenses := []models.Expense{{
			ID:            "e1",
			Amount:        decimal.NewFromInt(5),
			Category:      models.ExpenseCategoryOther,
			Description:   `the "good" coffee, etc`,
			Date:          dates.New(2024, time.March, 1),
			PaymentMethod: models.PaymentMethodCard,
		}}

		var buf strings.Builder
		testutil.AssertNoError(t, WriteCSV(&buf, expenses, nil))

		if !strings.Contains(buf.String(), `"the ""good"" coffee, etc"`) {
			t.Errorf("expected quoted field with doubled quotes, got %s", buf.String())
		}
	})

	t.Run("overdue_status_is_exported", func(t *testing.T) {
		incomes := []models.Income{{
			ID:       "i1",
			Amount:   decimal.NewFromInt(750),
			Category: models.IncomeCategoryRent,
			Source:   "Tenant",
			Date:     dates.New(2024, time.January, 1),
			Status:   models.IncomeStatusOverdue,
		}}

		var buf strings.Builder
		testutil.AssertNoError(t, WriteCSV(&buf, nil, incomes))

		if !strings.Contains(buf.String(), ",Overdue") {
			t.Errorf("expected Overdue status in output, got %s", buf.String())
		}
	})
}
