package models

import "testing"

func TestNormalizeBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want BudgetCategory
	}{
		{"lower", "cheap", BudgetCheap},
		{"upper", "CHEAP", BudgetCheap},
		{"mixed", "mOdErAtE", BudgetModerate},
		{"already normalized", "Expensive", BudgetExpensive},
		{"padded", "  free ", BudgetFree},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"unknown", "no", BudgetCategory("No")},
		{"single letter", "x", BudgetCategory("X")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeBudget(tt.raw); got != tt.want {
				t.Errorf("NormalizeBudget(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		want  BudgetCategory
		valid bool
	}{
		{"free", BudgetFree, true},
		{"CHEAP", BudgetCheap, true},
		{"Moderate", BudgetModerate, true},
		{"expensive", BudgetExpensive, true},
		{"luxury", BudgetCategory("Luxury"), false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseBudget(tt.raw)
			if got != tt.want || ok != tt.valid {
				t.Errorf("ParseBudget(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.valid)
			}
		})
	}
}

func TestBudgetCategories_AllValid(t *testing.T) {
	t.Parallel()

	if len(BudgetCategories) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(BudgetCategories))
	}
	for _, c := range BudgetCategories {
		if !c.IsValid() {
			t.Errorf("Expected %s to be valid", c)
		}
	}
}
