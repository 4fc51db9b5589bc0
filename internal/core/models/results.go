package models

// InventoryLevel — остаток по конкретному варианту на складе поставщика.
type InventoryLevel struct {
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse,omitempty"`
	Qty       int    `json:"qty"`
}

// StockResult — агрегированный результат проверки наличия.
// При недоступном или ненастроенном поставщике возвращается нулевой
// результат, а не ошибка: проверка стока не должна ронять расчёт котировки.
type StockResult struct {
	Inventory []InventoryLevel `json:"inventory"`
	Available bool             `json:"available"`
	TotalQty  int              `json:"totalQty"`
}

// PricingResult — цены товара; деградирует так же, как StockResult.
type PricingResult struct {
	BasePrice   float64      `json:"basePrice"`
	PriceBreaks []PriceBreak `json:"priceBreaks"`
}

// CacheStats — счётчики кэша на процесс. Производные поля считаются
// в момент снятия снапшота.
type CacheStats struct {
	Hits                 int64   `json:"hits"`
	Misses               int64   `json:"misses"`
	APICallsAvoided      int64   `json:"apiCallsAvoided"`
	HitRate              float64 `json:"hitRate"`
	EstimatedCostSavings float64 `json:"estimatedCostSavings"`
}
