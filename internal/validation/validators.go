package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/benvon/date-night/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Report fields by their JSON names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := Validate.RegisterValidation("budget_category", validateBudgetCategory); err != nil {
		panic(fmt.Sprintf("failed to register budget_category validator: %v", err))
	}
}

// validateBudgetCategory accepts any casing of a known budget category
func validateBudgetCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseBudget(fl.Field().String())
	return ok
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// SanitizeOptional sanitizes an optional text field. Blank values become nil.
func SanitizeOptional(text *string) *string {
	if text == nil {
		return nil
	}
	s := SanitizeText(*text)
	if s == "" {
		return nil
	}
	return &s
}

// ValidateBudgetCategory parses a budget category string value
func ValidateBudgetCategory(value string) (models.BudgetCategory, error) {
	category, ok := models.ParseBudget(value)
	if !ok {
		return "", fmt.Errorf("invalid budget_category: %s (must be %s)", value, models.ValidBudgetList)
	}
	return category, nil
}

// Describe turns validator errors into a single readable message
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "budget_category":
		return fmt.Sprintf("%s must be %s", field, models.ValidBudgetList)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
