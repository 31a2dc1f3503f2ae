package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/export"
	"pocketledger/internal/ledger"
)

// ExportHandler streams the ledger as CSV.
type ExportHandler struct {
	ledger *ledger.Store
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(ledgerStore *ledger.Store) *ExportHandler {
	return &ExportHandler{ledger: ledgerStore}
}

// ExportCSV renders every expense and income as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, h.ledger.Expenses(), h.ledger.Incomes()); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pocketledger-export.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
