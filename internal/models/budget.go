package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BudgetCategory partitions date night ideas by cost
type BudgetCategory string

const (
	BudgetFree      BudgetCategory = "Free"
	BudgetCheap     BudgetCategory = "Cheap"
	BudgetModerate  BudgetCategory = "Moderate"
	BudgetExpensive BudgetCategory = "Expensive"
)

// BudgetCategories lists every category in display order
var BudgetCategories = []BudgetCategory{BudgetFree, BudgetCheap, BudgetModerate, BudgetExpensive}

// ValidBudgetList is the human readable list used in user-facing messages
const ValidBudgetList = "Free, Cheap, Moderate, or Expensive"

// IsValid reports whether c is one of the fixed categories
func (c BudgetCategory) IsValid() bool {
	switch c {
	case BudgetFree, BudgetCheap, BudgetModerate, BudgetExpensive:
		return true
	default:
		return false
	}
}

func (c BudgetCategory) String() string {
	return string(c)
}

// NormalizeBudget trims the input, upper-cases its first letter and lower-cases
// the rest, so "CHEAP", "cheap" and " Cheap " all become "Cheap".
// The result is not guaranteed to be a valid category.
func NormalizeBudget(raw string) BudgetCategory {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return BudgetCategory(string(unicode.ToUpper(first)) + strings.ToLower(s[size:]))
}

// ParseBudget normalizes raw and reports whether it names a known category
func ParseBudget(raw string) (BudgetCategory, bool) {
	c := NormalizeBudget(raw)
	return c, c.IsValid()
}
