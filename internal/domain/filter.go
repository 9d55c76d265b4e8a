package domain

// SortField identifies the item field a view is ordered by.
type SortField string

const (
	SortByName        SortField = "name"
	SortByCategory    SortField = "category"
	SortByQuantity    SortField = "quantity"
	SortByPrice       SortField = "price"
	SortByLastUpdated SortField = "lastUpdated"
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// FilterState is the ephemeral, UI-held view configuration. It is never
// persisted; the query pipeline treats it as read-only input.
type FilterState struct {
	Category  string
	Search    string
	SortBy    SortField
	SortOrder SortOrder
}

// DefaultFilterState is the view configuration a fresh session starts with,
// and the fallback for malformed sort settings.
func DefaultFilterState() FilterState {
	return FilterState{
		SortBy:    SortByName,
		SortOrder: SortOrderAsc,
	}
}

// FilterChange is a partial update to a FilterState; nil fields keep the
// current value.
type FilterChange struct {
	Category  *string
	Search    *string
	SortBy    *SortField
	SortOrder *SortOrder
}

// Apply returns a copy of f with the non-nil fields of c applied.
func (c FilterChange) Apply(f FilterState) FilterState {
	if c.Category != nil {
		f.Category = *c.Category
	}
	if c.Search != nil {
		f.Search = *c.Search
	}
	if c.SortBy != nil {
		f.SortBy = *c.SortBy
	}
	if c.SortOrder != nil {
		f.SortOrder = *c.SortOrder
	}
	return f
}
