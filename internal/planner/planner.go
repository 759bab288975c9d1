// Package planner suggests catalog ideas to individual users without repeats
// and keeps track of what each user has already been shown.
package planner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/benvon/date-night/internal/catalog"
	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/models"
	"go.uber.org/zap"
)

// OutcomeKind classifies the result of a Suggest or Reset call
type OutcomeKind int

const (
	OutcomeSuggested OutcomeKind = iota
	OutcomeEmptyBudget
	OutcomeInvalidBudget
	OutcomeExhausted
	OutcomeNoData
	OutcomeReset
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuggested:
		return "suggested"
	case OutcomeEmptyBudget:
		return "empty_budget"
	case OutcomeInvalidBudget:
		return "invalid_budget"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeNoData:
		return "no_data"
	case OutcomeReset:
		return "reset"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the user-facing result of a planner operation. None of these
// are faults; Message is always suitable to show to the user.
type Outcome struct {
	Kind     OutcomeKind
	Message  string
	Category models.BudgetCategory
	Idea     string
}

// Planner picks unseen ideas for users. All methods are safe for concurrent use;
// each select-record-persist sequence runs under one lock.
type Planner struct {
	catalog *catalog.Catalog
	store   UsageStore
	log     *zap.Logger
	intn    func(n int) int

	mu    sync.Mutex
	usage Usage
}

// Option configures a Planner
type Option func(*Planner)

// WithLogger sets the logger used for persistence failures
func WithLogger(log *zap.Logger) Option {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRand makes selection use r instead of the global source
func WithRand(r *rand.Rand) Option {
	return func(p *Planner) {
		if r != nil {
			p.intn = r.IntN
		}
	}
}

// New creates a planner and loads the usage state from store
func New(ctx context.Context, cat *catalog.Catalog, store UsageStore, opts ...Option) (*Planner, error) {
	p := &Planner{
		catalog: cat,
		store:   store,
		log:     zap.NewNop(),
		intn:    rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}

	usage, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}
	if usage == nil {
		usage = Usage{}
	}
	usage.dedupe()
	p.usage = usage

	return p, nil
}

// Suggest returns an idea from budget that user has not seen yet and records it
func (p *Planner) Suggest(ctx context.Context, user, budget string) Outcome {
	if strings.TrimSpace(budget) == "" {
		return Outcome{
			Kind:    OutcomeEmptyBudget,
			Message: "Budget cannot be empty. Please choose " + models.ValidBudgetList,
		}
	}

	category := models.NormalizeBudget(budget)
	if !p.catalog.Has(category) {
		return Outcome{
			Kind:     OutcomeInvalidBudget,
			Category: category,
			Message:  fmt.Sprintf("Sorry, '%s' is not a valid category. Please choose %s", category, models.ValidBudgetList),
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	categories, ok := p.usage[user]
	if !ok {
		categories = make(map[models.BudgetCategory][]string)
		p.usage[user] = categories
	}
	shown := categories[category]
	if shown == nil {
		shown = []string{}
		categories[category] = shown
	}

	available := remaining(p.catalog.Ideas(category), shown)
	if len(available) == 0 {
		return Outcome{
			Kind:     OutcomeExhausted,
			Category: category,
			Message:  fmt.Sprintf("Hi %s! You've tried all ideas in the %s category. Please reset to restart the list of ideas.", user, category),
		}
	}

	idea := available[p.intn(len(available))]
	categories[category] = append(shown, idea)
	p.persist(ctx)

	return Outcome{
		Kind:     OutcomeSuggested,
		Category: category,
		Idea:     idea,
		Message:  fmt.Sprintf("Hi %s! Your %s date night idea is: %s", user, category, idea),
	}
}

// Reset clears what user has been shown, for one category or, when budget is
// blank, for all of them
func (p *Planner) Reset(ctx context.Context, user, budget string) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	categories, ok := p.usage[user]
	if !ok {
		return Outcome{Kind: OutcomeNoData, Message: "No data to reset for this user."}
	}

	if strings.TrimSpace(budget) == "" {
		p.usage[user] = make(map[models.BudgetCategory][]string)
		p.persist(ctx)
		return Outcome{Kind: OutcomeReset, Message: "All categories reset for " + user}
	}

	category := models.NormalizeBudget(budget)
	if !p.catalog.Has(category) {
		return Outcome{
			Kind:     OutcomeInvalidBudget,
			Category: category,
			Message:  fmt.Sprintf("Sorry, '%s' is not a valid category. Please enter %s", category, models.ValidBudgetList),
		}
	}

	categories[category] = []string{}
	p.persist(ctx)
	return Outcome{
		Kind:     OutcomeReset,
		Category: category,
		Message:  fmt.Sprintf("%s category reset for %s.", category, user),
	}
}

// Shown returns a copy of the ideas user has seen in category
func (p *Planner) Shown(user string, category models.BudgetCategory) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.usage[user][category]...)
}

// Snapshot returns a deep copy of the current usage state
func (p *Planner) Snapshot() Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usage.clone()
}

// Flush writes the current usage state to the store and reports any failure
func (p *Planner) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(ctx, p.usage); err != nil {
		return fmt.Errorf("failed to flush usage: %w", err)
	}
	return nil
}

// persist saves the usage state. Failures are logged and the in-memory
// state stays authoritative; the stored copy catches up on the next
// successful save or Flush. Caller must hold p.mu.
func (p *Planner) persist(ctx context.Context) {
	if err := p.store.Save(ctx, p.usage); err != nil {
		p.log.Error("failed_to_persist_usage",
			zap.String("error", logpkg.SanitizeError(err)),
			zap.Int("users", len(p.usage)),
		)
	}
}

// remaining returns the catalog entries not present in shown
func remaining(ideas, shown []string) []string {
	used := make(map[string]bool, len(shown))
	for _, idea := range shown {
		used[idea] = true
	}
	out := ideas[:0]
	for _, idea := range ideas {
		if !used[idea] {
			out = append(out, idea)
		}
	}
	return out
}
