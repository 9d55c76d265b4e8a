package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stockroom/internal/domain"
	"stockroom/internal/query"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoPendingDelete = errors.New("no delete pending confirmation")

// InventoryService coordinates UI intents against the item record store and
// keeps the in-memory list reconciled with it. The store stays the single
// source of truth; the in-memory list only mirrors successful writes.
type InventoryService interface {
	Items(ctx context.Context) ([]domain.Item, error)
	View(ctx context.Context) ([]domain.Item, error)
	Categories(ctx context.Context) ([]string, error)
	Filters() domain.FilterState
	ChangeFilters(change domain.FilterChange)
	AddItem(ctx context.Context, fields domain.ItemFields) (*domain.Item, error)
	EditItem(ctx context.Context, item domain.Item) (*domain.Item, error)
	RequestDelete(id uuid.UUID)
	PendingDelete() (uuid.UUID, bool)
	ConfirmDelete(ctx context.Context) error
	CancelDelete()
}

// deleteConfirm is the delete confirmation state machine:
// idle -> pending(id) on request, pending -> idle on confirm or cancel.
// A tagged variant keeps "confirmation open without an id" unrepresentable.
type deleteConfirm interface {
	isDeleteConfirm()
}

type confirmIdle struct{}

type confirmPending struct {
	id uuid.UUID
}

func (confirmIdle) isDeleteConfirm()    {}
func (confirmPending) isDeleteConfirm() {}

type inventoryService struct {
	repo     repository.ItemRepository
	pipeline *query.Pipeline
	logger   *zap.Logger

	mu      sync.Mutex
	items   []domain.Item
	loaded  bool
	filters domain.FilterState
	confirm deleteConfirm
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(repo repository.ItemRepository, pipeline *query.Pipeline, logger *zap.Logger) InventoryService {
	return &inventoryService{
		repo:     repo,
		pipeline: pipeline,
		logger:   logger,
		filters:  domain.DefaultFilterState(),
		confirm:  confirmIdle{},
	}
}

func (s *inventoryService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	s.items = items
	s.loaded = true
	return nil
}

// Items returns the current in-memory record list, unordered.
func (s *inventoryService) Items(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// View returns the filtered, sorted projection under the current filter
// state.
func (s *inventoryService) View(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.pipeline.Apply(s.items, s.filters), nil
}

// Categories returns the distinct category labels of the current records.
func (s *inventoryService) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.pipeline.Categories(s.items), nil
}

// Filters returns the current filter state.
func (s *inventoryService) Filters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// ChangeFilters applies a partial filter update. Display-only; no store
// interaction.
func (s *inventoryService) ChangeFilters(change domain.FilterChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = change.Apply(s.filters)
}

// AddItem creates a record and appends it to the in-memory list. Duplicate
// names are permitted; only the id is a unique key.
func (s *inventoryService) AddItem(ctx context.Context, fields domain.ItemFields) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.items = append(s.items, *item)

	s.logger.Info("item added",
		zap.String("id", item.ID.String()),
		zap.String("name", item.Name),
	)
	return item, nil
}

// EditItem replaces the record with the matching id. The store force-stamps
// the timestamp; whatever the caller passed in LastUpdated is ignored.
func (s *inventoryService) EditItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, item)
	if err != nil {
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = *updated
			break
		}
	}

	s.logger.Info("item updated", zap.String("id", updated.ID.String()))
	return updated, nil
}

// RequestDelete records a pending confirmation without touching the store.
// A request while one is already pending replaces it; last request wins.
func (s *inventoryService) RequestDelete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = confirmPending{id: id}
}

// PendingDelete reports the id awaiting confirmation, if any.
func (s *inventoryService) PendingDelete() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pending, ok := s.confirm.(confirmPending); ok {
		return pending.id, true
	}
	return uuid.Nil, false
}

// ConfirmDelete performs the pending removal and returns the machine to
// idle. The store error, if any, is propagated, never swallowed.
func (s *inventoryService) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.confirm.(confirmPending)
	if !ok {
		return ErrNoPendingDelete
	}
	s.confirm = confirmIdle{}

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, pending.id); err != nil {
		return err
	}
	for i := range s.items {
		if s.items[i].ID == pending.id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}

	s.logger.Info("item deleted", zap.String("id", pending.id.String()))
	return nil
}

// CancelDelete drops the pending confirmation with no side effect.
func (s *inventoryService) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = confirmIdle{}
}
