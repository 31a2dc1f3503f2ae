package models

import "github.com/shopspring/decimal"

// Budget is a spending limit for one expense category. At most one budget
// exists per category; setting a budget replaces any prior entry.
type Budget struct {
	Category ExpenseCategory `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}
