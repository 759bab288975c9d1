package planner

import (
	"context"

	"github.com/benvon/date-night/internal/models"
)

// Usage records which ideas each user has already been shown, per category.
// The JSON form is {"user": {"Category": ["idea", ...]}}.
type Usage map[string]map[models.BudgetCategory][]string

// UsageStore persists the full usage document
type UsageStore interface {
	Load(ctx context.Context) (Usage, error)
	Save(ctx context.Context, usage Usage) error
}

// clone returns a deep copy of u
func (u Usage) clone() Usage {
	out := make(Usage, len(u))
	for user, categories := range u {
		cats := make(map[models.BudgetCategory][]string, len(categories))
		for category, shown := range categories {
			cats[category] = append([]string{}, shown...)
		}
		out[user] = cats
	}
	return out
}

// dedupe drops repeated ideas within each user/category list, keeping first occurrences
func (u Usage) dedupe() {
	for _, categories := range u {
		for category, shown := range categories {
			seen := make(map[string]bool, len(shown))
			kept := shown[:0]
			for _, idea := range shown {
				if seen[idea] {
					continue
				}
				seen[idea] = true
				kept = append(kept, idea)
			}
			categories[category] = kept
		}
	}
}
