// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pocketledger/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return models.ExpenseCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("income_category", func(fl validator.FieldLevel) bool {
		return models.IncomeCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return models.PaymentMethod(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("recurrence", func(fl validator.FieldLevel) bool {
		return models.Recurrence(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "light" || s == "dark"
	})
}
