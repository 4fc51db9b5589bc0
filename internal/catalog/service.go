package catalog

import (
	"context"
	"fmt"
	"io"

	"printshop_api/internal/cache"
	"printshop_api/internal/core/models"
	"printshop_api/internal/core/services"
	"printshop_api/internal/suppliers/clients"
	"printshop_api/pkg/logger"
	"printshop_api/pkg/sku"
)

// ProductService — единая точка входа по каталогу: маршрутизирует SKU к
// адаптеру поставщика и скрывает от вызывающего, какие поставщики
// сконфигурированы. Незнакомый поставщик или отказ склада деградируют в
// пустые результаты, а не в ошибку.
type ProductService struct {
	adapters map[models.Supplier]services.SupplierAdapter
	cache    *cache.Service
	log      logger.Logger
}

func NewProductService(cacheSvc *cache.Service, writer io.Writer) *ProductService {
	return &ProductService{
		adapters: make(map[models.Supplier]services.SupplierAdapter),
		cache:    cacheSvc,
		log:      logger.NewLogger(writer, "[CATALOG]"),
	}
}

// Register оборачивает адаптер кэширующим декоратором и включает его в
// маршрутизацию. Повторная регистрация поставщика замещает адаптер.
func (s *ProductService) Register(adapter services.SupplierAdapter, opts ...cache.AdapterOption) {
	s.adapters[adapter.Supplier()] = cache.NewCachedAdapter(adapter, s.cache, opts...)
}

// Adapter отдаёт зарегистрированный (кэширующий) адаптер поставщика.
func (s *ProductService) Adapter(supplier models.Supplier) (services.SupplierAdapter, bool) {
	adapter, ok := s.adapters[supplier]
	return adapter, ok
}

// AvailableSuppliers перечисляет сконфигурированных поставщиков в
// каноническом порядке.
func (s *ProductService) AvailableSuppliers() []models.Supplier {
	var available []models.Supplier
	for _, supplier := range models.AllSuppliers() {
		if _, ok := s.adapters[supplier]; ok {
			available = append(available, supplier)
		}
	}
	return available
}

// GetProduct маршрутизирует SKU и возвращает унифицированный товар.
// Синтаксически кривой SKU — *ValidationError до любого сетевого вызова;
// отсутствующий товар и неподключённый поставщик — (nil, nil).
func (s *ProductService) GetProduct(ctx context.Context, rawSKU string) (*models.UnifiedProduct, error) {
	if !sku.IsValidSKU(rawSKU) {
		return nil, &clients.ValidationError{Field: "sku", Reason: fmt.Sprintf("malformed sku %q", rawSKU)}
	}

	supplier := services.DetectSupplier(rawSKU)
	adapter, ok := s.adapters[supplier]
	if !ok {
		s.log.Log("supplier %s not configured, sku %s unresolved", supplier, rawSKU)
		return nil, nil
	}

	styleCode := services.ExtractStyleCode(rawSKU, supplier)
	return adapter.GetProduct(ctx, styleCode)
}

// SearchProducts опрашивает всех сконфигурированных поставщиков и сливает
// результаты. Отказ одного поставщика логируется и не валит поиск целиком.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	results := make([]*models.UnifiedProduct, 0)
	for _, supplier := range models.AllSuppliers() {
		adapter, ok := s.adapters[supplier]
		if !ok {
			continue
		}
		found, err := adapter.SearchProducts(ctx, term)
		if err != nil {
			s.log.Log("search failed for %s: %v", supplier, err)
			continue
		}
		results = append(results, found...)
	}
	return results, nil
}

// CheckStock возвращает складские остатки по SKU. Любой отказ на пути —
// неподключённый поставщик, ошибка API — деградирует в пустой результат
// с Available=false: наличие это справка, а не контракт.
func (s *ProductService) CheckStock(ctx context.Context, rawSKU string) models.StockResult {
	empty := models.StockResult{Inventory: []models.InventoryLevel{}}

	supplier := services.DetectSupplier(rawSKU)
	adapter, ok := s.adapters[supplier]
	if !ok {
		s.log.Log("stock check skipped: supplier %s not configured", supplier)
		return empty
	}

	levels, err := adapter.GetInventory(ctx, services.ExtractStyleCode(rawSKU, supplier))
	if err != nil {
		s.log.Log("stock check failed for %s: %v", rawSKU, err)
		return empty
	}
	if len(levels) == 0 {
		return empty
	}

	total := 0
	for _, level := range levels {
		total += level.Qty
	}
	return models.StockResult{
		Inventory: levels,
		Available: total > 0,
		TotalQty:  total,
	}
}

// GetPricing возвращает цены по SKU, деградируя в нулевой результат
// по тем же правилам, что и CheckStock.
func (s *ProductService) GetPricing(ctx context.Context, rawSKU string) models.PricingResult {
	empty := models.PricingResult{PriceBreaks: []models.PriceBreak{}}

	supplier := services.DetectSupplier(rawSKU)
	adapter, ok := s.adapters[supplier]
	if !ok {
		s.log.Log("pricing skipped: supplier %s not configured", supplier)
		return empty
	}

	pricing, err := adapter.GetPricing(ctx, services.ExtractStyleCode(rawSKU, supplier))
	if err != nil {
		s.log.Log("pricing failed for %s: %v", rawSKU, err)
		return empty
	}
	if pricing == nil {
		return empty
	}

	breaks := pricing.PriceBreaks
	if breaks == nil {
		breaks = []models.PriceBreak{}
	}
	return models.PricingResult{BasePrice: pricing.BasePrice, PriceBreaks: breaks}
}

// GetColorsAvailable возвращает цвета стиля в порядке появления вариантов.
func (s *ProductService) GetColorsAvailable(ctx context.Context, rawSKU string) ([]string, error) {
	product, err := s.GetProduct(ctx, rawSKU)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return []string{}, nil
	}
	return product.ColorsAvailable(), nil
}

// HealthCheck пингует каждого сконфигурированного поставщика.
func (s *ProductService) HealthCheck(ctx context.Context) map[models.Supplier]bool {
	health := make(map[models.Supplier]bool, len(s.adapters))
	for supplier, adapter := range s.adapters {
		err := adapter.Ping(ctx)
		if err != nil {
			s.log.Log("health check failed for %s: %v", supplier, err)
		}
		health[supplier] = err == nil
	}
	return health
}

// CacheStats отдаёт снапшот счётчиков кэша; без кэша — нулевой снапшот.
func (s *ProductService) CacheStats() models.CacheStats {
	if s.cache == nil {
		return models.CacheStats{}
	}
	return s.cache.Stats()
}
