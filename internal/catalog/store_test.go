package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-api/internal/models"
)

func catalogServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const validCatalogJSON = `[
	{"id":"p-1","name":"Zed","description":"Last by name.","price":1000,
	 "category":"books","image":"https://example.com/1.jpg","stock":3,"rating":4.5},
	{"id":"p-2","name":"Ann","description":"First by name.","price":5000,
	 "category":"electronics","image":"https://example.com/2.jpg","stock":0}
]`

func newFetchedStore(t *testing.T, body string, status int) *Store {
	t.Helper()
	srv := catalogServer(t, body, status)
	s := NewStore(srv.URL, srv.Client(), zap.NewNop().Sugar())
	s.FetchProducts(context.Background())
	return s
}

func TestFetchProducts(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
	require.Len(t, s.Products(), 2)

	p, ok := s.ProductByID("p-2")
	require.True(t, ok)
	assert.Equal(t, "Ann", p.Name)

	_, ok = s.ProductByID("ghost")
	assert.False(t, ok)
}

func TestFetchAllOrNothing(t *testing.T) {
	// Second element has a negative price; the whole catalog is rejected.
	bad := `[
		{"id":"p-1","name":"Ok","description":"Fine.","price":1000,
		 "category":"books","image":"https://example.com/1.jpg","stock":3},
		{"id":"p-2","name":"Broken","description":"Bad price.","price":-5,
		 "category":"books","image":"https://example.com/2.jpg","stock":1}
	]`
	s := newFetchedStore(t, bad, http.StatusOK)

	assert.Empty(t, s.Products())
	assert.NotEmpty(t, s.Err())
	assert.False(t, s.Loading())
}

func TestFetchServerError(t *testing.T) {
	s := newFetchedStore(t, `{"error":"boom"}`, http.StatusInternalServerError)
	assert.Empty(t, s.Products())
	assert.NotEmpty(t, s.Err())
}

func TestFetchMalformedBody(t *testing.T) {
	s := newFetchedStore(t, `{"not":"an array"}`, http.StatusOK)
	assert.Empty(t, s.Products())
	assert.NotEmpty(t, s.Err())
}

func TestFetchClearsPreviousError(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validCatalogJSON))
	}))
	t.Cleanup(srv.Close)

	s := NewStore(srv.URL, srv.Client(), zap.NewNop().Sugar())
	s.FetchProducts(context.Background())
	require.NotEmpty(t, s.Err())

	healthy = true
	s.FetchProducts(context.Background())
	assert.Empty(t, s.Err())
	assert.Len(t, s.Products(), 2)
}

func TestSetFilterReplacesWholesale(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	require.NoError(t, s.SetFilter(models.ProductFilter{Search: "zed", Category: "books"}))
	require.NoError(t, s.SetFilter(models.ProductFilter{Category: "electronics"}))

	// The second filter fully replaced the first; no search survives.
	f := s.Filter()
	assert.Empty(t, f.Search)
	assert.Equal(t, "electronics", f.Category)
}

func TestSetFilterRejectsInvalid(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	err := s.SetFilter(models.ProductFilter{
		PriceRange: &models.PriceRange{Min: 500, Max: 100},
	})
	require.Error(t, err)
	assert.Equal(t, models.DefaultFilter(), s.Filter())
}

func TestSetSort(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	require.NoError(t, s.SetSort(models.SortPriceDesc))
	assert.Equal(t, models.SortPriceDesc, s.SortKey())

	require.Error(t, s.SetSort("stock-asc"))
	assert.Equal(t, models.SortPriceDesc, s.SortKey())
}

func TestResetFilter(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)
	require.NoError(t, s.SetFilter(models.ProductFilter{Search: "zed", InStock: true}))
	require.NoError(t, s.SetSort(models.SortPriceDesc))

	s.ResetFilter()
	assert.Equal(t, models.DefaultFilter(), s.Filter())
	assert.Equal(t, models.DefaultSort, s.SortKey())
}

func TestFilteredProducts(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	// Default: everything, name ascending.
	got := s.FilteredProducts()
	require.Len(t, got, 2)
	assert.Equal(t, "Ann", got[0].Name)
	assert.Equal(t, "Zed", got[1].Name)

	require.NoError(t, s.SetFilter(models.ProductFilter{InStock: true}))
	got = s.FilteredProducts()
	require.Len(t, got, 1)
	assert.Equal(t, "Zed", got[0].Name)
}

func TestCategories(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)
	assert.Equal(t,
		[]models.Category{models.CategoryBooks, models.CategoryElectronics},
		s.Categories())
}

func TestStoreSubscribe(t *testing.T) {
	s := newFetchedStore(t, validCatalogJSON, http.StatusOK)

	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	require.NoError(t, s.SetSort(models.SortPriceAsc))
	s.ResetFilter()
	assert.Equal(t, 2, calls)

	unsub()
	s.ResetFilter()
	assert.Equal(t, 2, calls)
}
