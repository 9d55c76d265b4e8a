package query

import (
	"testing"
	"time"

	"stockroom/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func item(name, category string, quantity int, price string) domain.Item {
	return domain.Item{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func equalNames(got []domain.Item, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Name != want[i] {
			return false
		}
	}
	return true
}

func TestApplyCategoryAndSearchAreConjunctive(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("Bolt", "Hardware", 10, "0.5"),
		item("Nut", "Hardware", 50, "0.1"),
		item("Notebook", "Stationery", 5, "2"),
	}

	got := p.Apply(items, domain.FilterState{
		Category:  "Hardware",
		Search:    "bo",
		SortBy:    domain.SortByName,
		SortOrder: domain.SortOrderAsc,
	})

	// "Notebook" matches the search but not the category; "Nut" matches the
	// category but not the search.
	if !equalNames(got, "Bolt") {
		t.Fatalf("got %v, want [Bolt]", names(got))
	}
}

func TestApplySearchIsCaseInsensitiveOverNameAndCategory(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("Bolt", "Hardware", 10, "0.5"),
		item("Pencil", "Stationery", 5, "0.3"),
		item("Wrench", "HARDWARE", 2, "12"),
	}

	got := p.Apply(items, domain.FilterState{
		Search:    "ABC",
		SortBy:    domain.SortByName,
		SortOrder: domain.SortOrderAsc,
	})
	if len(got) != 0 {
		t.Fatalf("search ABC should match nothing, got %v", names(got))
	}

	got = p.Apply(items, domain.FilterState{
		Search:    "hardWARE",
		SortBy:    domain.SortByName,
		SortOrder: domain.SortOrderAsc,
	})
	if !equalNames(got, "Bolt", "Wrench") {
		t.Fatalf("got %v, want [Bolt Wrench]", names(got))
	}
}

func TestApplyQuantitySortIsStable(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("C", "x", 5, "1"),
		item("A", "x", 5, "1"),
		item("B", "x", 3, "1"),
	}

	got := p.Apply(items, domain.FilterState{
		SortBy:    domain.SortByQuantity,
		SortOrder: domain.SortOrderAsc,
	})

	// Ties on quantity keep original relative order: C before A.
	if !equalNames(got, "B", "C", "A") {
		t.Fatalf("got %v, want [B C A]", names(got))
	}
}

func TestApplyPriceDescendingScenario(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("Bolt", "Hardware", 10, "0.5"),
		item("Nut", "Hardware", 50, "0.1"),
	}

	got := p.Apply(items, domain.FilterState{
		SortBy:    domain.SortByPrice,
		SortOrder: domain.SortOrderDesc,
	})
	if !equalNames(got, "Bolt", "Nut") {
		t.Fatalf("got %v, want [Bolt Nut]", names(got))
	}
}

func TestApplyLastUpdatedComparesByInstant(t *testing.T) {
	p := New(language.English)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := item("Older", "x", 1, "1")
	older.LastUpdated = base
	// Same instant rendered in a different zone sorts equal, not by string.
	sameInstant := item("SameInstant", "x", 1, "1")
	sameInstant.LastUpdated = base.In(time.FixedZone("UTC+2", 2*3600))
	newer := item("Newer", "x", 1, "1")
	newer.LastUpdated = base.Add(time.Hour)

	got := p.Apply([]domain.Item{newer, older, sameInstant}, domain.FilterState{
		SortBy:    domain.SortByLastUpdated,
		SortOrder: domain.SortOrderAsc,
	})
	if !equalNames(got, "Older", "SameInstant", "Newer") {
		t.Fatalf("got %v, want [Older SameInstant Newer]", names(got))
	}
}

func TestApplyMalformedSortFallsBackToNameAscending(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("Nut", "x", 1, "1"),
		item("Bolt", "x", 1, "1"),
	}

	got := p.Apply(items, domain.FilterState{
		SortBy:    domain.SortField("bogus"),
		SortOrder: domain.SortOrder("sideways"),
	})
	if !equalNames(got, "Bolt", "Nut") {
		t.Fatalf("got %v, want [Bolt Nut]", names(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	p := New(language.English)
	items := []domain.Item{
		item("C", "x", 3, "1"),
		item("A", "x", 1, "1"),
		item("B", "x", 2, "1"),
	}

	p.Apply(items, domain.FilterState{SortBy: domain.SortByName, SortOrder: domain.SortOrderAsc})

	if !equalNames(items, "C", "A", "B") {
		t.Fatalf("input mutated: %v", names(items))
	}
}

func TestCategoriesDistinctAndSorted(t *testing.T) {
	p := New(language.English)

	got := p.Categories([]domain.Item{
		item("a", "Stationery", 1, "1"),
		item("b", "Hardware", 1, "1"),
		item("c", "Hardware", 1, "1"),
		item("d", "Apparel", 1, "1"),
	})

	want := []string{"Apparel", "Hardware", "Stationery"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestCategoriesEmptyInput(t *testing.T) {
	p := New(language.English)
	if got := p.Categories(nil); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

// Property: ascending order by quantity is non-decreasing for arbitrary
// record sets, and the projection never changes the record count beyond the
// predicate.
func TestProperty_QuantityAscendingIsNonDecreasing(t *testing.T) {
	p := New(language.English)
	properties := gopter.NewProperties(nil)

	properties.Property("sorted view is non-decreasing by quantity", prop.ForAll(
		func(quantities []int) bool {
			items := make([]domain.Item, len(quantities))
			for i, q := range quantities {
				items[i] = item("item", "cat", q, "1")
			}

			got := p.Apply(items, domain.FilterState{
				SortBy:    domain.SortByQuantity,
				SortOrder: domain.SortOrderAsc,
			})
			if len(got) != len(items) {
				return false
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Quantity > got[i].Quantity {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
