package repository

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/storage"

	"github.com/google/uuid"
)

// ItemRepository is the record store for inventory items. It is the
// exclusive owner of record identity and timestamps; callers supply only the
// editable fields.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, fields domain.ItemFields) (*domain.Item, error)
	Replace(ctx context.Context, item domain.Item) (*domain.Item, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Reload(ctx context.Context) error
}

type itemRepository struct {
	medium storage.Medium[domain.Item]
	items  []domain.Item
	loaded bool
}

// NewItemRepository creates an item record store over the given durable
// medium. The medium is read lazily on first use and after Reload, and
// written back after every successful mutation.
func NewItemRepository(medium storage.Medium[domain.Item]) ItemRepository {
	return &itemRepository{medium: medium}
}

func (r *itemRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	items, err := r.medium.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	r.items = items
	r.loaded = true
	return nil
}

// List returns all live records. Order is unspecified; ordering is the query
// pipeline's job.
func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Create allocates a fresh id, stamps the timestamp, persists, and returns
// the full record.
func (r *itemRepository) Create(ctx context.Context, fields domain.ItemFields) (*domain.Item, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	item := domain.Item{
		ID:          uuid.New(),
		Name:        fields.Name,
		Category:    fields.Category,
		Quantity:    fields.Quantity,
		Price:       fields.Price,
		LastUpdated: time.Now().UTC(),
	}

	next := append(append([]domain.Item{}, r.items...), item)
	if err := r.medium.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist created item: %w", err)
	}
	r.items = next

	return &item, nil
}

// Replace overwrites all editable fields of the record with the given id and
// stamps a fresh timestamp, ignoring any timestamp the caller passed.
func (r *itemRepository) Replace(ctx context.Context, item domain.Item) (*domain.Item, error) {
	fields := domain.ItemFields{
		Name:     item.Name,
		Category: item.Category,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return nil, domain.ErrItemNotFound
	}

	// The stamp must be strictly after the previous write even when the
	// clock has not advanced between them.
	now := time.Now().UTC()
	if prev := r.items[idx].LastUpdated; !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	item.LastUpdated = now

	next := make([]domain.Item, len(r.items))
	copy(next, r.items)
	next[idx] = item

	if err := r.medium.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist replaced item: %w", err)
	}
	r.items = next

	return &item, nil
}

// Remove deletes the record permanently. A second remove of the same id is
// an explicit error so callers can tell "already gone" from success.
func (r *itemRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrItemNotFound
	}

	next := make([]domain.Item, 0, len(r.items)-1)
	next = append(next, r.items[:idx]...)
	next = append(next, r.items[idx+1:]...)

	if err := r.medium.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist removal: %w", err)
	}
	r.items = next

	return nil
}

// Reload discards the cache so the next read picks up external changes to
// the durable medium.
func (r *itemRepository) Reload(ctx context.Context) error {
	r.loaded = false
	r.items = nil
	return r.ensureLoaded(ctx)
}

func (r *itemRepository) indexOf(id uuid.UUID) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
