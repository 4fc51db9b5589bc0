package services

import (
	"context"

	"printshop_api/internal/core/models"
)

// SupplierAdapter определяет единый контракт адаптера поставщика.
// Аутентификацию, пагинацию, лимиты запросов и ретраи адаптер прячет внутри.
type SupplierAdapter interface {
	// Supplier возвращает, чей диалект API инкапсулирует адаптер.
	Supplier() models.Supplier

	// GetProduct возвращает товар по нативному коду стиля.
	// Отсутствие товара — это (nil, nil), а не ошибка: вызывающий должен
	// отличать "нет такого" от транзиентного отказа.
	GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error)

	// GetAllProducts постранично выгружает каталог поставщика.
	GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error)

	// SearchProducts ищет по каталогу; у поставщиков без нативного поиска —
	// выгрузка списка с фильтрацией на нашей стороне.
	SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error)

	// GetInventory возвращает остатки по вариантам стиля.
	// Отсутствие стиля — пустой срез и nil-ошибка.
	GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error)

	// GetPricing возвращает ценовые ступени стиля; (nil, nil) если стиля нет.
	GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error)

	// Ping — дешёвая проверка доступности API поставщика.
	Ping(ctx context.Context) error
}
