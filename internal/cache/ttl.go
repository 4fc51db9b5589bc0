package cache

import "time"

// Category — класс кэшируемых данных со своим TTL, отражающим волатильность:
// остатки короче всего, прайс дольше, карточка товара дольше всех.
type Category string

const (
	CategoryInventory     Category = "inventory"
	CategoryPrice         Category = "price"
	CategoryProductDetail Category = "product-detail"
	CategoryProductList   Category = "product-list"
)

// TTLConfig — длительности по категориям. Значения приходят из конфигурации,
// не из констант в коде.
type TTLConfig struct {
	Inventory     time.Duration
	Price         time.Duration
	ProductDetail time.Duration
	ProductList   time.Duration
}

// DefaultTTLConfig: inventory 15m < price 30m < product list 1h < detail 2h.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Inventory:     15 * time.Minute,
		Price:         30 * time.Minute,
		ProductDetail: 2 * time.Hour,
		ProductList:   time.Hour,
	}
}

// For возвращает TTL категории, подставляя дефолт на месте нулевого значения.
func (c TTLConfig) For(category Category) time.Duration {
	defaults := DefaultTTLConfig()
	pick := func(configured, fallback time.Duration) time.Duration {
		if configured > 0 {
			return configured
		}
		return fallback
	}

	switch category {
	case CategoryInventory:
		return pick(c.Inventory, defaults.Inventory)
	case CategoryPrice:
		return pick(c.Price, defaults.Price)
	case CategoryProductList:
		return pick(c.ProductList, defaults.ProductList)
	default:
		return pick(c.ProductDetail, defaults.ProductDetail)
	}
}
