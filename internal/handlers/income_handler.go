package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
)

// IncomeHandler handles income-related requests.
type IncomeHandler struct {
	ledger *ledger.Store
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(ledgerStore *ledger.Store) *IncomeHandler {
	return &IncomeHandler{ledger: ledgerStore}
}

// CreateIncomeRequest represents the request payload for recording an income.
type CreateIncomeRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category" binding:"required,income_category"`
	Source        string          `json:"source" binding:"required,max=200"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Recurrence    string          `json:"recurrence" binding:"omitempty,recurrence"`
	TenantContact string          `json:"tenantContact" binding:"omitempty,max=200"`
}

// CreateIncome records a new expected income.
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.ledger.AddIncome(ledger.AddIncomeInput{
		Amount:        req.Amount,
		Category:      models.IncomeCategory(req.Category),
		Source:        req.Source,
		Date:          date,
		Recurrence:    models.Recurrence(req.Recurrence),
		TenantContact: req.TenantContact,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncomes lists incomes in display order, paginated.
func (h *IncomeHandler) GetIncomes(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := pagination.Slice(h.ledger.Incomes(), page)
	c.JSON(http.StatusOK, result)
}

// DeleteIncome removes an income record.
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, err := recordIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.ledger.DeleteIncome(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// MarkReceived marks an income as received today and returns the generated
// next occurrence for recurring incomes.
func (h *IncomeHandler) MarkReceived(c *gin.Context) {
	id, err := recordIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	received, next, err := h.ledger.MarkIncomeReceived(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reply := gin.H{"income": received}
	if next != nil {
		reply["next"] = next
	}
	c.JSON(http.StatusOK, reply)
}
