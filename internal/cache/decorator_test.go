package cache_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop_api/internal/cache"
	"printshop_api/internal/core/models"
)

// fakeAdapter считает обращения к "сети".
type fakeAdapter struct {
	mu        sync.Mutex
	calls     map[string]int
	product   *models.UnifiedProduct
	inventory []models.InventoryLevel
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		calls: make(map[string]int),
		product: &models.UnifiedProduct{
			SKU:      "SM-PC54",
			Name:     "Core Cotton Tee",
			Supplier: models.SupplierSanMar,
		},
		inventory: []models.InventoryLevel{{SKU: "SM-PC54-BLK-LG", Qty: 120}},
	}
}

func (f *fakeAdapter) called(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

func (f *fakeAdapter) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeAdapter) Supplier() models.Supplier { return models.SupplierSanMar }

func (f *fakeAdapter) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	f.called("GetProduct")
	if styleCode != "PC54" {
		return nil, nil
	}
	return f.product, nil
}

func (f *fakeAdapter) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	f.called("GetAllProducts")
	return []*models.UnifiedProduct{f.product}, nil
}

func (f *fakeAdapter) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	f.called("SearchProducts")
	return []*models.UnifiedProduct{f.product}, nil
}

func (f *fakeAdapter) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	f.called("GetInventory")
	return f.inventory, nil
}

func (f *fakeAdapter) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	f.called("GetPricing")
	return &models.Pricing{BasePrice: 4.5}, nil
}

func (f *fakeAdapter) Ping(ctx context.Context) error {
	f.called("Ping")
	return nil
}

func TestKeyDeterministic(t *testing.T) {
	first := cache.Key(cache.CategoryProductDetail, models.SupplierSanMar, "GetProduct", "PC54")
	second := cache.Key(cache.CategoryProductDetail, models.SupplierSanMar, "GetProduct", "PC54")
	assert.Equal(t, first, second)
	assert.Equal(t, "product-detail:sanmar:GetProduct:PC54", first)

	other := cache.Key(cache.CategoryProductDetail, models.SupplierSanMar, "GetProduct", "K110P")
	assert.NotEqual(t, first, other)
}

func TestCachedAdapterRoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	svc := cache.NewService(store, io.Discard)
	inner := newFakeAdapter()
	adapter := cache.NewCachedAdapter(inner, svc)
	ctx := context.Background()

	// Первый вызов — промах, сеть дёргается ровно один раз.
	got, err := adapter.GetProduct(ctx, "PC54")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SM-PC54", got.SKU)
	assert.Equal(t, 1, inner.callCount("GetProduct"))

	// Повтор с теми же аргументами — попадание, сеть не трогаем.
	got, err = adapter.GetProduct(ctx, "PC54")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, inner.callCount("GetProduct"))

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	// По истечении TTL карточки — снова промах.
	now = now.Add(3 * time.Hour)
	_, err = adapter.GetProduct(ctx, "PC54")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.callCount("GetProduct"))
}

func TestCachedAdapterNotFoundCached(t *testing.T) {
	svc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	inner := newFakeAdapter()
	adapter := cache.NewCachedAdapter(inner, svc)
	ctx := context.Background()

	got, err := adapter.GetProduct(ctx, "MISSING")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Отрицательный результат тоже закэширован.
	got, err = adapter.GetProduct(ctx, "MISSING")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, inner.callCount("GetProduct"))
}

func TestCachedAdapterDisabledCache(t *testing.T) {
	svc := cache.NewService(nil, io.Discard)
	inner := newFakeAdapter()
	adapter := cache.NewCachedAdapter(inner, svc)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := adapter.GetProduct(ctx, "PC54")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "SM-PC54", got.SKU)
	}
	// Без кэша каждый вызов идёт в сеть, но результат корректен и без паник.
	assert.Equal(t, 2, inner.callCount("GetProduct"))
	assert.Equal(t, int64(2), svc.Stats().Misses)
}

func TestCachedAdapterBypass(t *testing.T) {
	svc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	inner := newFakeAdapter()
	adapter := cache.NewCachedAdapter(inner, svc, cache.Bypass("GetInventory"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := adapter.GetInventory(ctx, "PC54")
		require.NoError(t, err)
	}
	// always fresh: каждый вызов насквозь.
	assert.Equal(t, 3, inner.callCount("GetInventory"))

	// Остальные методы кэшируются как обычно.
	adapter.GetPricing(ctx, "PC54")
	adapter.GetPricing(ctx, "PC54")
	assert.Equal(t, 1, inner.callCount("GetPricing"))
}

func TestInvalidateAfter(t *testing.T) {
	svc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	ctx := context.Background()

	svc.Set(ctx, "product-list:sanmar:GetAllProducts", "stale", time.Hour)

	err := cache.InvalidateAfter(ctx, svc, "product-list:sanmar:*", func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	var out string
	assert.False(t, svc.Get(ctx, "product-list:sanmar:GetAllProducts", &out))
}

func TestInvalidateAfterKeepsCacheOnFailure(t *testing.T) {
	svc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	ctx := context.Background()

	svc.Set(ctx, "product-list:sanmar:GetAllProducts", "fresh", time.Hour)

	wantErr := assert.AnError
	err := cache.InvalidateAfter(ctx, svc, "product-list:sanmar:*", func(context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	var out string
	assert.True(t, svc.Get(ctx, "product-list:sanmar:GetAllProducts", &out))
}

func TestSingleFlightCoalesces(t *testing.T) {
	svc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	inner := newFakeAdapter()
	adapter := cache.NewCachedAdapter(inner, svc, cache.WithSingleFlight())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := adapter.GetProduct(ctx, "PC54")
			assert.NoError(t, err)
			assert.NotNil(t, got)
		}()
	}
	wg.Wait()

	// Конкурентные одинаковые промахи слиты в меньшее число сетевых вызовов.
	assert.Less(t, inner.callCount("GetProduct"), 8)
}
