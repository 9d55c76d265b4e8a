package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrValidation   = errors.New("validation failed")
)

// Item represents one inventory record. ID and LastUpdated are owned by the
// record store; callers supply only the editable fields.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated time.Time       `json:"last_updated"`
}

// ItemFields carries the caller-editable fields of an item, without the
// store-owned identity and timestamp.
type ItemFields struct {
	Name     string
	Category string
	Quantity int
	Price    decimal.Decimal
}

// Validate checks the structural invariants of the data model. Form-level
// rules live in the presentation layer; this only rejects values no record
// is ever allowed to hold.
func (f ItemFields) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if f.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if f.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
