// Package catalog holds the fixed set of date night ideas per budget category.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/benvon/date-night/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is an immutable mapping from budget category to ideas.
// It is safe for concurrent use.
type Catalog struct {
	ideas map[models.BudgetCategory][]string
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// FromPath loads the catalog at path, or the built-in one when path is empty
func FromPath(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes a YAML document of the form `Category: [idea, ...]`.
// Category keys are normalized; unknown categories are rejected and
// duplicate or blank ideas are dropped.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{ideas: make(map[models.BudgetCategory][]string, len(models.BudgetCategories))}
	for key, entries := range raw {
		category, ok := models.ParseBudget(key)
		if !ok {
			return nil, fmt.Errorf("invalid catalog category %q (must be %s)", key, models.ValidBudgetList)
		}
		seen := make(map[string]bool, len(c.ideas[category])+len(entries))
		for _, existing := range c.ideas[category] {
			seen[existing] = true
		}
		for _, entry := range entries {
			entry = strings.TrimSpace(entry)
			if entry == "" || seen[entry] {
				continue
			}
			seen[entry] = true
			c.ideas[category] = append(c.ideas[category], entry)
		}
	}
	return c, nil
}

// New builds a catalog from an in-memory mapping. Entries are copied.
func New(ideas map[models.BudgetCategory][]string) *Catalog {
	c := &Catalog{ideas: make(map[models.BudgetCategory][]string, len(ideas))}
	for category, entries := range ideas {
		c.ideas[category] = append([]string(nil), entries...)
	}
	return c
}

// Has reports whether category is part of the catalog
func (c *Catalog) Has(category models.BudgetCategory) bool {
	_, ok := c.ideas[category]
	return ok
}

// Ideas returns a copy of the ideas for category
func (c *Catalog) Ideas(category models.BudgetCategory) []string {
	return append([]string(nil), c.ideas[category]...)
}

// Categories returns the catalog's categories in display order
func (c *Catalog) Categories() []models.BudgetCategory {
	var out []models.BudgetCategory
	for _, category := range models.BudgetCategories {
		if c.Has(category) {
			out = append(out, category)
		}
	}
	return out
}

// Len returns the total number of ideas across all categories
func (c *Catalog) Len() int {
	n := 0
	for _, entries := range c.ideas {
		n += len(entries)
	}
	return n
}
