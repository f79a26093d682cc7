package cart

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"storefront-api/internal/models"
	"storefront-api/pkg/storage"
)

// Store is the stateful shell around the reducer. It owns the current
// Model, persists the item list after every successful transition, and
// fans the new Model out to subscribers. Constructed explicitly and passed
// by reference; there is no package-level singleton.
type Store struct {
	mu      sync.RWMutex
	model   Model
	store   storage.CartStorage
	log     *zap.SugaredLogger
	subs    map[int]func(Model)
	nextSub int
}

func NewStore(st storage.CartStorage, log *zap.SugaredLogger) *Store {
	return &Store{
		store: st,
		log:   log,
		subs:  make(map[int]func(Model)),
	}
}

// Load rehydrates the cart from storage. Anything short of a valid item
// list (missing key, unreadable backend, malformed JSON, failed
// validation) leaves the cart empty; corrupt values are purged so the
// next startup reads clean.
func (s *Store) Load(ctx context.Context) {
	data, err := s.store.Read(ctx)
	if err == storage.ErrNotFound {
		return
	}
	if err != nil {
		s.log.Warnw("cart storage read failed, starting empty", "error", err)
		return
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warnw("persisted cart is not valid JSON, discarding", "error", err)
		s.purge(ctx)
		return
	}
	if verr := models.ValidateCartItems(items); verr != nil {
		s.log.Warnw("persisted cart failed validation, discarding",
			"issues", verr.Issues)
		s.purge(ctx)
		return
	}

	s.mu.Lock()
	s.model = Model{Items: items}
	s.mu.Unlock()
	s.log.Infow("cart restored", "items", len(items))
}

// Dispatch runs one message through the reducer. On success the new model
// is persisted (best-effort) and subscribers are notified.
func (s *Store) Dispatch(ctx context.Context, msg Message) error {
	s.mu.Lock()
	next, err := Reduce(s.model, msg)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.model = next
	subs := make([]func(Model), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.persist(ctx, next)
	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// AddItem validates and admits a product snapshot. The returned error is
// the structured validation failure; cart state is untouched on rejection.
func (s *Store) AddItem(ctx context.Context, p models.Product) error {
	return s.Dispatch(ctx, AddProduct{Product: p})
}

func (s *Store) RemoveItem(ctx context.Context, productID string) {
	_ = s.Dispatch(ctx, RemoveItem{ProductID: productID})
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	_ = s.Dispatch(ctx, SetQuantity{ProductID: productID, Quantity: quantity})
}

func (s *Store) IncrementItem(ctx context.Context, productID string) {
	_ = s.Dispatch(ctx, IncrementItem{ProductID: productID})
}

func (s *Store) DecrementItem(ctx context.Context, productID string) {
	_ = s.Dispatch(ctx, DecrementItem{ProductID: productID})
}

func (s *Store) ClearCart(ctx context.Context) {
	_ = s.Dispatch(ctx, ClearCart{})
}

// Model returns a copy of the current cart state.
func (s *Store) Model() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Model{Items: cloneItems(s.model.Items)}
}

// Subscribe registers a callback invoked with the new Model after each
// successful transition. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Model)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drops all subscribers. Storage is owned by the caller and closed
// separately.
func (s *Store) Close() {
	s.mu.Lock()
	s.subs = make(map[int]func(Model))
	s.mu.Unlock()
}

func (s *Store) persist(ctx context.Context, m Model) {
	data, err := json.Marshal(m.Items)
	if err != nil {
		s.log.Errorw("failed to serialize cart", "error", err)
		return
	}
	if err := s.store.Write(ctx, data); err != nil {
		s.log.Warnw("cart storage write failed", "error", err)
	}
}

func (s *Store) purge(ctx context.Context) {
	if err := s.store.Purge(ctx); err != nil {
		s.log.Warnw("failed to purge corrupt cart value", "error", err)
	}
}
