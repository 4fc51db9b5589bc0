package catalog_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop_api/internal/cache"
	"printshop_api/internal/catalog"
	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/clients"
)

// stubAdapter отдаёт заранее заготовленные ответы и считает вызовы.
type stubAdapter struct {
	supplier  models.Supplier
	product   *models.UnifiedProduct
	list      []*models.UnifiedProduct
	inventory []models.InventoryLevel
	pricing   *models.Pricing
	fail      error

	calls     int
	lastStyle string
}

func (s *stubAdapter) Supplier() models.Supplier { return s.supplier }

func (s *stubAdapter) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	s.calls++
	s.lastStyle = styleCode
	if s.fail != nil {
		return nil, s.fail
	}
	if s.product == nil || styleCode != s.product.Metadata.SupplierProductID {
		return nil, nil
	}
	return s.product, nil
}

func (s *stubAdapter) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	if s.list != nil {
		return s.list, nil
	}
	if s.product == nil {
		return nil, nil
	}
	return []*models.UnifiedProduct{s.product}, nil
}

func (s *stubAdapter) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	if s.product == nil {
		return []*models.UnifiedProduct{}, nil
	}
	return []*models.UnifiedProduct{s.product}, nil
}

func (s *stubAdapter) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	s.calls++
	s.lastStyle = styleCode
	if s.fail != nil {
		return nil, s.fail
	}
	return s.inventory, nil
}

func (s *stubAdapter) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.pricing, nil
}

func (s *stubAdapter) Ping(ctx context.Context) error { return s.fail }

func sanmarStub() *stubAdapter {
	return &stubAdapter{
		supplier: models.SupplierSanMar,
		product: &models.UnifiedProduct{
			SKU:      "SM-PC54",
			Name:     "Port & Company Core Cotton Tee",
			Supplier: models.SupplierSanMar,
			Variants: []models.Variant{
				{SKU: "SM-PC54-BLK-LG", Color: models.Color{Name: "Black"}, Size: "L", InventoryQty: 120},
				{SKU: "SM-PC54-NVY-LG", Color: models.Color{Name: "Navy"}, Size: "L", InventoryQty: 80},
				{SKU: "SM-PC54-WHT-LG", Color: models.Color{Name: "White"}, Size: "L", InventoryQty: 55},
			},
			Pricing: models.Pricing{
				BasePrice: 3.8,
				PriceBreaks: []models.PriceBreak{
					{Quantity: 1, UnitPrice: 3.8},
					{Quantity: 72, UnitPrice: 3.2},
				},
			},
			Metadata: models.Metadata{SupplierProductID: "PC54"},
		},
		inventory: []models.InventoryLevel{
			{SKU: "SM-PC54-BLK-LG", Warehouse: "Dallas", Qty: 120},
			{SKU: "SM-PC54-NVY-LG", Warehouse: "Seattle", Qty: 80},
		},
		pricing: &models.Pricing{
			BasePrice:   3.8,
			PriceBreaks: []models.PriceBreak{{Quantity: 1, UnitPrice: 3.8}, {Quantity: 72, UnitPrice: 3.2}},
		},
	}
}

func newService(t *testing.T, adapters ...*stubAdapter) *catalog.ProductService {
	t.Helper()
	cacheSvc := cache.NewService(cache.NewMemoryStore(), io.Discard)
	require.True(t, cacheSvc.Enabled())

	svc := catalog.NewProductService(cacheSvc, io.Discard)
	for _, a := range adapters {
		svc.Register(a)
	}
	return svc
}

func TestGetProductRoutesByPrefix(t *testing.T) {
	stub := sanmarStub()
	svc := newService(t, stub)

	product, err := svc.GetProduct(context.Background(), "SM-PC54")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "SM-PC54", product.SKU)
	assert.Equal(t, "PC54", stub.lastStyle)
	assert.Equal(t, "PC54", product.Metadata.SupplierProductID)
	assert.Len(t, product.Variants, 3)
	assert.Equal(t, 3.8, product.Pricing.BasePrice)
}

func TestGetProductHeuristicFallback(t *testing.T) {
	stub := sanmarStub()
	svc := newService(t, stub)

	// Без префикса буквенно-цифровой код уходит эвристикой в SanMar.
	product, err := svc.GetProduct(context.Background(), "pc54")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "PC54", stub.lastStyle)
}

func TestGetProductMalformedSKU(t *testing.T) {
	stub := sanmarStub()
	svc := newService(t, stub)

	product, err := svc.GetProduct(context.Background(), "??")
	require.Error(t, err)
	assert.Nil(t, product)

	var verr *clients.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sku", verr.Field)
	assert.Zero(t, stub.calls, "malformed sku must not reach the network")
}

func TestGetProductUnconfiguredSupplier(t *testing.T) {
	svc := newService(t, sanmarStub())

	// AC- префикс, но AS Colour не зарегистрирован.
	product, err := svc.GetProduct(context.Background(), "AC-5001")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProductSecondCallServedFromCache(t *testing.T) {
	stub := sanmarStub()
	svc := newService(t, stub)

	_, err := svc.GetProduct(context.Background(), "SM-PC54")
	require.NoError(t, err)
	_, err = svc.GetProduct(context.Background(), "SM-PC54")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	stats := svc.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCheckStockAggregates(t *testing.T) {
	svc := newService(t, sanmarStub())

	result := svc.CheckStock(context.Background(), "SM-PC54")
	assert.True(t, result.Available)
	assert.Equal(t, 200, result.TotalQty)
	assert.Len(t, result.Inventory, 2)
}

func TestCheckStockDegradesToZeroResult(t *testing.T) {
	failing := &stubAdapter{supplier: models.SupplierSanMar, fail: errors.New("api down")}
	svc := newService(t, failing)

	result := svc.CheckStock(context.Background(), "SM-PC54")
	assert.False(t, result.Available)
	assert.Zero(t, result.TotalQty)
	assert.Empty(t, result.Inventory)

	// Неподключённый поставщик деградирует так же.
	result = svc.CheckStock(context.Background(), "SS-39528")
	assert.False(t, result.Available)
	assert.Empty(t, result.Inventory)
}

func TestGetPricingDegradesToZeroResult(t *testing.T) {
	svc := newService(t, sanmarStub())

	result := svc.GetPricing(context.Background(), "SM-PC54")
	assert.Equal(t, 3.8, result.BasePrice)
	assert.Len(t, result.PriceBreaks, 2)

	// Поставщик без адаптера — нулевой результат без ошибки.
	result = svc.GetPricing(context.Background(), "AC-5001")
	assert.Zero(t, result.BasePrice)
	assert.Empty(t, result.PriceBreaks)
}

func TestSearchMergesAndToleratesFailures(t *testing.T) {
	ok := sanmarStub()
	broken := &stubAdapter{supplier: models.SupplierSSActivewear, fail: errors.New("timeout")}
	svc := newService(t, ok, broken)

	results, err := svc.SearchProducts(context.Background(), "tee")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SM-PC54", results[0].SKU)
}

func TestSearchNoSuppliersConfigured(t *testing.T) {
	svc := newService(t)

	results, err := svc.SearchProducts(context.Background(), "tee")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGetColorsAvailable(t *testing.T) {
	svc := newService(t, sanmarStub())

	colors, err := svc.GetColorsAvailable(context.Background(), "SM-PC54")
	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "Navy", "White"}, colors)

	colors, err = svc.GetColorsAvailable(context.Background(), "SM-K110P")
	require.NoError(t, err)
	assert.Empty(t, colors)
}

func TestAvailableSuppliersCanonicalOrder(t *testing.T) {
	svc := newService(t,
		sanmarStub(),
		&stubAdapter{supplier: models.SupplierASColour},
	)

	assert.Equal(t,
		[]models.Supplier{models.SupplierASColour, models.SupplierSanMar},
		svc.AvailableSuppliers(),
	)
}

func TestHealthCheck(t *testing.T) {
	healthy := sanmarStub()
	sick := &stubAdapter{supplier: models.SupplierASColour, fail: errors.New("503")}
	svc := newService(t, healthy, sick)

	health := svc.HealthCheck(context.Background())
	assert.True(t, health[models.SupplierSanMar])
	assert.False(t, health[models.SupplierASColour])
}
