// Package catalog holds the immutable reason catalog and the queries run
// against it: filtering, random selection and counts.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// All is the sentinel category selecting every category in catalog order.
const All = "All"

// Category is a named, ordered group of reasons.
type Category struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Reasons []string `json:"reasons"`
}

// Counts reports the total and per-category reason counts.
type Counts struct {
	Total       int
	PerCategory map[string]int
	Order       []string
}

// Catalog is the read-only set of categories loaded at startup.
// It is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	categories []Category
	index      map[string]int
	owner      map[string]string
	total      int
}

// New builds a catalog from categories in the given order.
// Each category's count is taken from its reasons.
func New(categories []Category) *Catalog {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
		owner:      make(map[string]string),
	}
	for _, cat := range categories {
		c.add(Category{Name: cat.Name, Count: len(cat.Reasons), Reasons: cat.Reasons})
	}
	return c
}

func (c *Catalog) add(cat Category) {
	if _, dup := c.index[cat.Name]; dup {
		return
	}
	cat.Reasons = slices.Clone(cat.Reasons)
	c.index[cat.Name] = len(c.categories)
	c.categories = append(c.categories, cat)
	c.total += cat.Count
	for _, r := range cat.Reasons {
		if _, ok := c.owner[r]; !ok {
			c.owner[r] = cat.Name
		}
	}
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Category returns a copy of the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	cat := c.categories[i]
	cat.Reasons = slices.Clone(cat.Reasons)
	return cat, true
}

// Has reports whether name is a category of the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Total returns the catalog's total reason count.
func (c *Catalog) Total() int {
	return c.total
}

// CategoryOf returns the first category containing reason.
func (c *Catalog) CategoryOf(reason string) (string, bool) {
	name, ok := c.owner[reason]
	return name, ok
}

// Filter returns the reasons of category (or of every category for All)
// whose lowercase form contains the trimmed, lowercased query.
// An empty query keeps every reason. Source order is preserved and an
// unknown category yields an empty result.
func (c *Catalog) Filter(query, category string) []string {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]string, 0)
	c.each(category, func(reason string) {
		if needle == "" || strings.Contains(strings.ToLower(reason), needle) {
			out = append(out, reason)
		}
	})
	return out
}

// PickRandom returns one reason drawn uniformly from category's reasons,
// or from the flattened list of every reason for All. Larger categories
// are proportionally more likely under All. The boolean is false when
// there is nothing to pick from.
func (c *Catalog) PickRandom(category string, rng Rand) (string, bool) {
	if rng == nil {
		rng = GlobalRand
	}

	if category != All {
		i, ok := c.index[category]
		if !ok || len(c.categories[i].Reasons) == 0 {
			return "", false
		}
		reasons := c.categories[i].Reasons
		return reasons[rng.IntN(len(reasons))], true
	}

	n := 0
	for _, cat := range c.categories {
		n += len(cat.Reasons)
	}
	if n == 0 {
		return "", false
	}

	pick := rng.IntN(n)
	for _, cat := range c.categories {
		if pick < len(cat.Reasons) {
			return cat.Reasons[pick], true
		}
		pick -= len(cat.Reasons)
	}
	return "", false
}

// Counts returns the total and each category's count.
func (c *Catalog) Counts() Counts {
	counts := Counts{
		Total:       c.total,
		PerCategory: make(map[string]int, len(c.categories)),
		Order:       c.Categories(),
	}
	for _, cat := range c.categories {
		counts.PerCategory[cat.Name] = cat.Count
	}
	return counts
}

// NormalizeCategory maps an empty or unknown category name to All.
func NormalizeCategory(c *Catalog, name string) string {
	if name == "" || name == All || !c.Has(name) {
		return All
	}
	return name
}

func (c *Catalog) each(category string, fn func(string)) {
	if category == All {
		for _, cat := range c.categories {
			for _, r := range cat.Reasons {
				fn(r)
			}
		}
		return
	}

	i, ok := c.index[category]
	if !ok {
		return
	}
	for _, r := range c.categories[i].Reasons {
		fn(r)
	}
}

// Summary describes the visible result set, e.g. `Showing 2 reasons in Work matching "no"`.
func Summary(n int, category, query string) string {
	s := fmt.Sprintf("Showing %d reason", n)
	if n != 1 {
		s += "s"
	}
	if category != "" && category != All {
		s += " in " + category
	}
	if query != "" {
		s += ` matching "` + query + `"`
	}
	return s
}
