package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	ledger *ledger.Store
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(ledgerStore *ledger.Store) *ExpenseHandler {
	return &ExpenseHandler{ledger: ledgerStore}
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category" binding:"required,expense_category"`
	Description   string          `json:"description" binding:"max=500"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,payment_method"`
}

// CreateExpense records a new expense.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.ledger.AddExpense(ledger.AddExpenseInput{
		Amount:        req.Amount,
		Category:      models.ExpenseCategory(req.Category),
		Description:   req.Description,
		Date:          date,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses lists expenses in display order, paginated.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := pagination.Slice(h.ledger.Expenses(), page)
	c.JSON(http.StatusOK, result)
}

// DeleteExpense removes an expense. The removed record is returned so the
// client can offer an undo.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := recordIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.ledger.DeleteExpense(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// RestoreExpense reinserts a previously deleted expense (undo).
func (h *ExpenseHandler) RestoreExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.ledger.RestoreExpense(expense); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// parseOptionalDate parses an optional ISO date; empty means "today" at the
// ledger layer.
func parseOptionalDate(s string) (dates.Date, error) {
	if s == "" {
		return dates.Date{}, nil
	}
	d, err := dates.Parse(s)
	if err != nil {
		return dates.Date{}, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return d, nil
}
