// Package query is the pure projection over the record set: a filter
// predicate composed with a stable multi-variant sort. It never mutates its
// inputs and never fails, so it is safe to re-run on every keystroke.
package query

import (
	"sort"
	"strings"

	"stockroom/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// comparators maps each sort field to its ordering. Text fields collate
// locale-aware; numeric fields compare numerically; lastUpdated compares by
// instant, not by its serialized form.
var comparators = map[domain.SortField]func(c *collate.Collator, a, b domain.Item) int{
	domain.SortByName: func(c *collate.Collator, a, b domain.Item) int {
		return c.CompareString(a.Name, b.Name)
	},
	domain.SortByCategory: func(c *collate.Collator, a, b domain.Item) int {
		return c.CompareString(a.Category, b.Category)
	},
	domain.SortByQuantity: func(_ *collate.Collator, a, b domain.Item) int {
		switch {
		case a.Quantity < b.Quantity:
			return -1
		case a.Quantity > b.Quantity:
			return 1
		}
		return 0
	},
	domain.SortByPrice: func(_ *collate.Collator, a, b domain.Item) int {
		return a.Price.Cmp(b.Price)
	},
	domain.SortByLastUpdated: func(_ *collate.Collator, a, b domain.Item) int {
		switch {
		case a.LastUpdated.Before(b.LastUpdated):
			return -1
		case a.LastUpdated.After(b.LastUpdated):
			return 1
		}
		return 0
	},
}

// Pipeline evaluates filter states against record sets for one display
// locale.
type Pipeline struct {
	tag language.Tag
}

// New creates a pipeline collating text for the given locale.
func New(tag language.Tag) *Pipeline {
	return &Pipeline{tag: tag}
}

// Apply returns the records passing the filter, stably ordered by the
// filter's sort settings. Malformed sortBy or sortOrder fall back to name
// ascending rather than failing; a view misconfiguration must never take the
// data down with it.
func (p *Pipeline) Apply(items []domain.Item, f domain.FilterState) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	search := strings.ToLower(f.Search)
	for _, it := range items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Category), search) {
			continue
		}
		out = append(out, it)
	}

	cmp, ok := comparators[f.SortBy]
	dir := 1
	if !ok {
		// Unknown field falls back to the full default, direction included.
		cmp = comparators[domain.SortByName]
	} else if f.SortOrder == domain.SortOrderDesc {
		dir = -1
	}

	// Collators carry internal buffers, so build one per evaluation rather
	// than sharing.
	col := collate.New(p.tag)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(col, out[i], out[j])*dir < 0
	})

	return out
}

// Categories derives the distinct set of category labels, locale-aware
// sorted for stable display. It is recomputed from the record set on every
// call and never stored.
func (p *Pipeline) Categories(items []domain.Item) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}

	collate.New(p.tag).SortStrings(out)
	return out
}
