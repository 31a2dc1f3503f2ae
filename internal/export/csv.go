// Package export renders the ledger as a comma-separated table for
// spreadsheet use.
package export

import (
	"encoding/csv"
	"io"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
)

// header is the fixed column order of the export table.
var header = []string{"Type", "Date", "Category", "Description/Source", "Amount", "Status"}

// WriteCSV writes one row per expense and one per income. Expense amounts
// render negative with status "Paid"; income amounts render positive with
// their lifecycle status. Embedded quotes are doubled per standard CSV
// quoting (encoding/csv handles this).
func WriteCSV(w io.Writer, expenses []models.Expense, incomes []models.Income) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, e := range expenses {
		row := []string{
			"Expense",
			e.Date.String(),
			string(e.Category),
			e.Description,
			e.Amount.Neg().String(),
			"Paid",
		}
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	for _, inc := range incomes {
		row := []string{
			"Income",
			inc.Date.String(),
			string(inc.Category),
			inc.Source,
			inc.Amount.String(),
			string(inc.Status),
		}
		if err := cw.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
