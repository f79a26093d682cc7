// Package catalog owns the product list fetched from the catalog endpoint
// and the filter/sort pipeline over it. Fetch failures never escape: the
// catalog falls back to empty and exposes a human-readable error message.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"go.uber.org/zap"

	"storefront-api/internal/models"
)

// Store holds the catalog state: the fetched products, the active filter
// and sort, a loading flag for the in-flight fetch, and the last fetch
// error message (empty when healthy).
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	filter   models.ProductFilter
	sortKey  models.ProductSort
	loading  bool
	errMsg   string

	url    string
	client *http.Client
	log    *zap.SugaredLogger

	subs    map[int]func()
	nextSub int
}

func NewStore(url string, client *http.Client, log *zap.SugaredLogger) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		filter:  models.DefaultFilter(),
		sortKey: models.DefaultSort,
		url:     url,
		client:  client,
		log:     log,
		subs:    make(map[int]func()),
	}
}

// FetchProducts loads the catalog from the configured endpoint with
// all-or-nothing validation: if the request, the JSON decode, or any single
// product fails, the whole catalog becomes empty and the error message is
// set. It never returns an error; callers observe Err() instead.
func (s *Store) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = "" // clear any earlier error optimistically
	s.mu.Unlock()
	s.notify()

	products, err := s.fetch(ctx)
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.products = nil
		s.errMsg = "failed to load products"
		s.mu.Unlock()
		s.log.Warnw("catalog fetch failed", "url", s.url, "error", err)
		s.notify()
		return
	}
	s.products = products
	s.mu.Unlock()
	s.log.Infow("catalog loaded", "products", len(products))
	s.notify()
}

func (s *Store) fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if verr := models.ValidateProducts(products); verr != nil {
		return nil, verr
	}
	return products, nil
}

// SetFilter validates and installs a new filter, replacing the previous
// one wholesale.
func (s *Store) SetFilter(f models.ProductFilter) error {
	if verr := models.ValidateFilter(f); verr != nil {
		return verr
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetSort validates and installs a new ordering.
func (s *Store) SetSort(key models.ProductSort) error {
	if verr := models.ValidateSort(key); verr != nil {
		return verr
	}
	s.mu.Lock()
	s.sortKey = key
	s.mu.Unlock()
	s.notify()
	return nil
}

// ResetFilter restores the default filter (no search, category "all", no
// stock restriction) and the default name-ascending sort.
func (s *Store) ResetFilter() {
	s.mu.Lock()
	s.filter = models.DefaultFilter()
	s.sortKey = models.DefaultSort
	s.mu.Unlock()
	s.notify()
}

// FilteredProducts applies the active filter, then the active sort, in
// that order. The stored product list is never mutated.
func (s *Store) FilteredProducts() []models.Product {
	s.mu.RLock()
	products, filter, key := s.products, s.filter, s.sortKey
	s.mu.RUnlock()
	return Sort(Filter(products, filter), key)
}

// Categories returns the distinct categories present in the loaded
// catalog, sorted for stable output.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[models.Category]bool)
	var out []models.Category
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) ProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Filter() models.ProductFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Store) SortKey() models.ProductSort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortKey
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err is the last fetch error message, empty when the last fetch
// succeeded or none has run yet.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Subscribe registers a callback fired after every state change. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
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

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}
