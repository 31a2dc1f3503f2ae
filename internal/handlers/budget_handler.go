package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	ledger *ledger.Store
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(ledgerStore *ledger.Store) *BudgetHandler {
	return &BudgetHandler{ledger: ledgerStore}
}

// SetBudgetRequest represents the request payload for setting a budget.
type SetBudgetRequest struct {
	Category string          `json:"category" binding:"required,expense_category"`
	Limit    decimal.Decimal `json:"limit" binding:"required"`
}

// SetBudget sets the limit for a category, replacing any prior entry.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.ledger.SetBudget(models.ExpenseCategory(req.Category), req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudget returns the budget for one category.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.ledger.GetBudget(models.ExpenseCategory(c.Param("category")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets lists every budget.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"budgets": h.ledger.Budgets()})
}
