package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupBudgetRouter(s *stack) *gin.Engine {
	handler := NewBudgetHandler(s.ledger)
	r := gin.New()
	r.PUT("/budgets", handler.SetBudget)
	r.GET("/budgets", handler.GetBudgets)
	r.GET("/budgets/:category", handler.GetBudget)
	return r
}

func TestBudgetHandler_SetBudget(t *testing.T) {
	t.Run("returns 200 and replaces prior entry", func(t *testing.T) {
		s := newTestStack(t)
		r := setupBudgetRouter(s)

		rec := doRequest(r, "PUT", "/budgets", `{"category":"Food","limit":"500"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doRequest(r, "PUT", "/budgets", `{"category":"Food","limit":"300"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = doRequest(r, "GET", "/budgets", "")
		budgets := parseJSON(t, rec)["budgets"].([]interface{})
		if len(budgets) != 1 {
			t.Fatalf("expected exactly 1 budget, got %d", len(budgets))
		}
		limit := budgets[0].(map[string]interface{})["limit"]
		if limit != "300" && limit != float64(300) {
			t.Errorf("expected limit 300, got %v", limit)
		}
	})

	t.Run("returns 400 for unknown category", func(t *testing.T) {
		r := setupBudgetRouter(newTestStack(t))

		rec := doRequest(r, "PUT", "/budgets", `{"category":"Gambling","limit":"500"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudget(t *testing.T) {
	t.Run("returns 404 when unset", func(t *testing.T) {
		r := setupBudgetRouter(newTestStack(t))

		rec := doRequest(r, "GET", "/budgets/Transport", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})

	t.Run("returns budget by category", func(t *testing.T) {
		s := newTestStack(t)
		r := setupBudgetRouter(s)

		doRequest(r, "PUT", "/budgets", `{"category":"Food","limit":"500"}`)

		rec := doRequest(r, "GET", "/budgets/Food", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["category"] != "Food" {
			t.Errorf("expected Food, got %v", budget["category"])
		}
	})
}
