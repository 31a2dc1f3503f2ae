package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"pocketledger/internal/uuid"
)

func setupExpenseRouter(s *stack) *gin.Engine {
	handler := NewExpenseHandler(s.ledger)
	r := gin.New()
	r.POST("/expenses", handler.CreateExpense)
	r.GET("/expenses", handler.GetExpenses)
	r.DELETE("/expenses/:id", handler.DeleteExpense)
	r.POST("/expenses/restore", handler.RestoreExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		r := setupExpenseRouter(newTestStack(t))

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"12.50","category":"Food","description":"Lunch","date":"2024-03-01","paymentMethod":"Cash"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		expense := parseJSON(t, rec)["expense"].(map[string]interface{})
		if expense["category"] != "Food" {
			t.Errorf("expected Food, got %v", expense["category"])
		}
		if expense["date"] != "2024-03-01" {
			t.Errorf("expected 2024-03-01, got %v", expense["date"])
		}
	})

	t.Run("returns 400 for unknown category", func(t *testing.T) {
		r := setupExpenseRouter(newTestStack(t))

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"12.50","category":"Gambling","paymentMethod":"Cash"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 for malformed date", func(t *testing.T) {
		r := setupExpenseRouter(newTestStack(t))

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"12.50","category":"Food","date":"03/01/2024","paymentMethod":"Cash"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("paginates", func(t *testing.T) {
		s := newTestStack(t)
		r := setupExpenseRouter(s)

		for i := 0; i < 25; i++ {
			rec := doRequest(r, "POST", "/expenses",
				`{"amount":"5","category":"Transport","paymentMethod":"Card"}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("seed expense failed: %d", rec.Code)
			}
		}

		rec := doRequest(r, "GET", "/expenses?page=2&page_size=20", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 5 {
			t.Errorf("expected 5 items on page 2, got %d", len(data))
		}
		if result["total_items"].(float64) != 25 {
			t.Errorf("expected 25 total, got %v", result["total_items"])
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns removed record for undo", func(t *testing.T) {
		s := newTestStack(t)
		r := setupExpenseRouter(s)

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"8","category":"Food","paymentMethod":"Cash"}`)
		expense := parseJSON(t, rec)["expense"].(map[string]interface{})
		id := expense["id"].(string)

		rec = doRequest(r, "DELETE", "/expenses/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		removed := parseJSON(t, rec)["removed"].(map[string]interface{})
		if removed["id"] != id {
			t.Errorf("expected removed record %s, got %v", id, removed["id"])
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		r := setupExpenseRouter(newTestStack(t))

		rec := doRequest(r, "DELETE", "/expenses/"+uuid.New(), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		r := setupExpenseRouter(newTestStack(t))

		rec := doRequest(r, "DELETE", "/expenses/no-such-id", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestExpenseHandler_RestoreExpense(t *testing.T) {
	s := newTestStack(t)
	r := setupExpenseRouter(s)

	rec := doRequest(r, "POST", "/expenses",
		`{"amount":"8","category":"Food","paymentMethod":"Cash"}`)
	expense := parseJSON(t, rec)["expense"].(map[string]interface{})
	id := expense["id"].(string)

	rec = doRequest(r, "DELETE", "/expenses/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	// Re-submit the removed record verbatim, as the undo affordance does.
	removed, err := json.Marshal(parseJSON(t, rec)["removed"])
	if err != nil {
		t.Fatalf("failed to re-encode removed record: %v", err)
	}
	rec = doRequest(r, "POST", "/expenses/restore", string(removed))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(r, "GET", "/expenses", "")
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected restored expense present, got %v", result["total_items"])
	}
}

func TestExpenseHandler_RestoreExpense_RejectsTamperedRecord(t *testing.T) {
	s := newTestStack(t)
	r := setupExpenseRouter(s)

	rec := doRequest(r, "POST", "/expenses",
		`{"amount":"8","category":"Food","paymentMethod":"Cash"}`)
	removed := parseJSON(t, rec)["expense"].(map[string]interface{})
	id := removed["id"].(string)

	rec = doRequest(r, "DELETE", "/expenses/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	// An edited undo payload must not slip past the add-path constraints.
	removed = parseJSON(t, rec)["removed"].(map[string]interface{})
	removed["amount"] = "-5"
	removed["category"] = "NotACategory"
	removed["paymentMethod"] = "Barter"
	tampered, err := json.Marshal(removed)
	if err != nil {
		t.Fatalf("failed to re-encode removed record: %v", err)
	}

	rec = doRequest(r, "POST", "/expenses/restore", string(tampered))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")

	rec = doRequest(r, "GET", "/expenses", "")
	if got := parseJSON(t, rec)["total_items"].(float64); got != 0 {
		t.Errorf("expected rejected record to stay out, got %v items", got)
	}
}
