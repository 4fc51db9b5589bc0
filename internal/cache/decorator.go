package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"printshop_api/internal/core/models"
	"printshop_api/internal/core/services"
	"printshop_api/metrics"
)

// Key строит детерминированный ключ кэша: категория-префикс, поставщик,
// имя метода и сериализованные аргументы.
func Key(category Category, supplier models.Supplier, method string, args ...interface{}) string {
	parts := []string{string(category), string(supplier), method}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			parts = append(parts, v)
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				parts = append(parts, fmt.Sprintf("%v", v))
				continue
			}
			parts = append(parts, string(raw))
		}
	}
	return strings.Join(parts, ":")
}

// Through — сквозное чтение: попадание возвращает закэшированное значение,
// промах зовёт fetch и сохраняет результат под TTL. Ошибки fetch наружу,
// ошибки кэша — никогда.
func Through[T any](ctx context.Context, svc *Service, category Category, key string, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if svc != nil && svc.Get(ctx, key, &cached) {
		metrics.RecordCacheHit(string(category))
		return cached, nil
	}
	metrics.RecordCacheMiss(string(category))

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}
	if svc != nil {
		svc.Set(ctx, key, value, svc.ttl.For(category))
	}
	return value, nil
}

// InvalidateAfter — обёртка мутирующего вызова: после его успеха снимает
// ключи по шаблону. Неуспех мутации кэш не трогает.
func InvalidateAfter(ctx context.Context, svc *Service, pattern string, mutate func(context.Context) error) error {
	if err := mutate(ctx); err != nil {
		return err
	}
	if svc != nil {
		svc.DeletePattern(ctx, pattern)
	}
	return nil
}

// CachedAdapter — декоратор адаптера поставщика: применяет политику кэша
// вокруг каждого метода, не требуя от адаптера знать о кэшировании.
// Состав собирается на этапе конструирования, без рефлексии.
type CachedAdapter struct {
	inner   services.SupplierAdapter
	svc     *Service
	bypass  map[string]bool
	flights *singleflight.Group
}

type AdapterOption func(*CachedAdapter)

// Bypass отключает кэш для перечисленных методов ("GetProduct",
// "GetInventory"...): вызовы идут всегда насквозь, always fresh.
func Bypass(methods ...string) AdapterOption {
	return func(a *CachedAdapter) {
		for _, m := range methods {
			a.bypass[m] = true
		}
	}
}

// WithSingleFlight включает слияние конкурентных одинаковых промахов в один
// сетевой вызов. Опциональное улучшение: базовое поведение — оба запроса
// идут в сеть и оба заполняют кэш, это принятая неэффективность.
func WithSingleFlight() AdapterOption {
	return func(a *CachedAdapter) {
		a.flights = new(singleflight.Group)
	}
}

func NewCachedAdapter(inner services.SupplierAdapter, svc *Service, opts ...AdapterOption) *CachedAdapter {
	a := &CachedAdapter{
		inner:  inner,
		svc:    svc,
		bypass: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *CachedAdapter) Supplier() models.Supplier { return a.inner.Supplier() }

func (a *CachedAdapter) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	if a.bypass["GetProduct"] {
		return a.inner.GetProduct(ctx, styleCode)
	}
	key := Key(CategoryProductDetail, a.Supplier(), "GetProduct", styleCode)
	return throughFlight(ctx, a, CategoryProductDetail, key, func(ctx context.Context) (*models.UnifiedProduct, error) {
		return a.inner.GetProduct(ctx, styleCode)
	})
}

func (a *CachedAdapter) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	if a.bypass["GetAllProducts"] {
		return a.inner.GetAllProducts(ctx)
	}
	key := Key(CategoryProductList, a.Supplier(), "GetAllProducts")
	return throughFlight(ctx, a, CategoryProductList, key, func(ctx context.Context) ([]*models.UnifiedProduct, error) {
		return a.inner.GetAllProducts(ctx)
	})
}

func (a *CachedAdapter) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	if a.bypass["SearchProducts"] {
		return a.inner.SearchProducts(ctx, term)
	}
	key := Key(CategoryProductList, a.Supplier(), "SearchProducts", term)
	return throughFlight(ctx, a, CategoryProductList, key, func(ctx context.Context) ([]*models.UnifiedProduct, error) {
		return a.inner.SearchProducts(ctx, term)
	})
}

func (a *CachedAdapter) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	if a.bypass["GetInventory"] {
		return a.inner.GetInventory(ctx, styleCode)
	}
	key := Key(CategoryInventory, a.Supplier(), "GetInventory", styleCode)
	return throughFlight(ctx, a, CategoryInventory, key, func(ctx context.Context) ([]models.InventoryLevel, error) {
		return a.inner.GetInventory(ctx, styleCode)
	})
}

func (a *CachedAdapter) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	if a.bypass["GetPricing"] {
		return a.inner.GetPricing(ctx, styleCode)
	}
	key := Key(CategoryPrice, a.Supplier(), "GetPricing", styleCode)
	return throughFlight(ctx, a, CategoryPrice, key, func(ctx context.Context) (*models.Pricing, error) {
		return a.inner.GetPricing(ctx, styleCode)
	})
}

// Ping кэшировать бессмысленно: проверка доступности всегда живая.
func (a *CachedAdapter) Ping(ctx context.Context) error {
	return a.inner.Ping(ctx)
}

// throughFlight добавляет к Through слияние конкурентных промахов,
// когда оно включено.
func throughFlight[T any](ctx context.Context, a *CachedAdapter, category Category, key string, fetch func(context.Context) (T, error)) (T, error) {
	if a.flights == nil {
		return Through(ctx, a.svc, category, key, fetch)
	}

	result, err, _ := a.flights.Do(key, func() (interface{}, error) {
		return Through(ctx, a.svc, category, key, fetch)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
