// Package assistant validates and executes the tool calls the conversational
// assistant may invoke. Arguments arrive as loosely-typed JSON objects from
// an external model; they are coerced into the same typed commands used by
// direct user actions before they touch the ledger, and rejected with a
// typed validation error otherwise. The natural-language parsing itself is
// external to this core.
package assistant

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/ledger"
	"pocketledger/internal/models"
)

// Tool names the assistant is allowed to invoke.
const (
	ToolAddExpense        = "add_expense"
	ToolAddIncome         = "add_income"
	ToolDeleteTransaction = "delete_transaction"
)

// AddExpenseCommand is the typed form of an add_expense tool call.
type AddExpenseCommand struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Description   string          `json:"description"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
}

// AddIncomeCommand is the typed form of an add_income tool call.
type AddIncomeCommand struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Source        string          `json:"source" validate:"required"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Recurrence    string          `json:"recurrence"`
	TenantContact string          `json:"tenantContact"`
}

// DeleteTransactionCommand is the typed form of a delete_transaction tool
// call. The assistant is instructed to invoke it only after explicit user
// confirmation; that instruction is not enforced here.
type DeleteTransactionCommand struct {
	ID   string `json:"id" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=expense income"`
}

// Dispatcher executes validated tool commands against the ledger.
type Dispatcher struct {
	ledger   *ledger.Store
	validate *validator.Validate
}

// NewDispatcher creates a dispatcher over the ledger store.
func NewDispatcher(ledgerStore *ledger.Store) *Dispatcher {
	return &Dispatcher{
		ledger:   ledgerStore,
		validate: validator.New(),
	}
}

// Execute coerces the loose arguments into the named command, validates
// them, and runs the command. Unknown tools fail with INVALID_INPUT.
func (d *Dispatcher) Execute(tool string, args map[string]any) (any, error) {
	switch tool {
	case ToolAddExpense:
		cmd, err := decodeArgs[AddExpenseCommand](d, args)
		if err != nil {
			return nil, err
		}
		return d.addExpense(cmd)
	case ToolAddIncome:
		cmd, err := decodeArgs[AddIncomeCommand](d, args)
		if err != nil {
			return nil, err
		}
		return d.addIncome(cmd)
	case ToolDeleteTransaction:
		cmd, err := decodeArgs[DeleteTransactionCommand](d, args)
		if err != nil {
			return nil, err
		}
		return d.deleteTransaction(cmd)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown assistant tool: "+tool)
	}
}

func (d *Dispatcher) addExpense(cmd AddExpenseCommand) (*models.Expense, error) {
	date, err := parseOptionalDate(cmd.Date)
	if err != nil {
		return nil, err
	}
	return d.ledger.AddExpense(ledger.AddExpenseInput{
		Amount:        cmd.Amount,
		Category:      models.ExpenseCategory(cmd.Category),
		Description:   cmd.Description,
		Date:          date,
		PaymentMethod: models.PaymentMethod(cmd.PaymentMethod),
	})
}

func (d *Dispatcher) addIncome(cmd AddIncomeCommand) (*models.Income, error) {
	date, err := parseOptionalDate(cmd.Date)
	if err != nil {
		return nil, err
	}
	return d.ledger.AddIncome(ledger.AddIncomeInput{
		Amount:        cmd.Amount,
		Category:      models.IncomeCategory(cmd.Category),
		Source:        cmd.Source,
		Date:          date,
		Recurrence:    models.Recurrence(cmd.Recurrence),
		TenantContact: cmd.TenantContact,
	})
}

func (d *Dispatcher) deleteTransaction(cmd DeleteTransactionCommand) (any, error) {
	switch cmd.Kind {
	case "expense":
		return d.ledger.DeleteExpense(cmd.ID)
	case "income":
		return d.ledger.DeleteIncome(cmd.ID)
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction kind: "+cmd.Kind)
}

// decodeArgs coerces loose tool arguments into the typed command and runs
// struct validation. Any shape or type mismatch fails with INVALID_INPUT.
func decodeArgs[T any](d *Dispatcher, args map[string]any) (T, error) {
	var cmd T
	raw, err := json.Marshal(args)
	if err != nil {
		return cmd, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return cmd, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	if err := d.validate.Struct(cmd); err != nil {
		return cmd, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return cmd, nil
}

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
