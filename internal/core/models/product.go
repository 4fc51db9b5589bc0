package models

import "time"

// UnifiedProduct — канонический товар, не зависящий от поставщика.
// Инвариант: SKU детерминированно выводится из поставщика и его нативного
// кода стиля, повторная выгрузка того же товара даёт тот же SKU.
type UnifiedProduct struct {
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand"`
	Category       string            `json:"category"`
	Supplier       Supplier          `json:"supplier"`
	Description    string            `json:"description"`
	Variants       []Variant         `json:"variants"`
	Pricing        Pricing           `json:"pricing"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Metadata       Metadata          `json:"metadata"`
}

// Variant — одна комбинация цвет×размер.
// Инвариант: внутри одного товара SKU вариантов уникальны.
type Variant struct {
	SKU          string `json:"sku"`
	Color        Color  `json:"color"`
	Size         string `json:"size"`
	InventoryQty int    `json:"inventoryQty"`
	Warehouse    string `json:"warehouse,omitempty"`
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

type Pricing struct {
	BasePrice   float64      `json:"basePrice"`
	PriceBreaks []PriceBreak `json:"priceBreaks,omitempty"`
}

// PriceBreak — ценовая ступень от минимального количества Quantity.
// Ступени упорядочены по возрастанию Quantity; цена за единицу не должна
// расти с количеством (нарушения помечаются, но не отбрасываются).
type PriceBreak struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	CasePrice float64 `json:"casePrice,omitempty"`
}

type Metadata struct {
	SupplierProductID string    `json:"supplierProductId"`
	LastSyncedAt      time.Time `json:"lastSyncedAt"`
}

// ColorsAvailable возвращает уникальные имена цветов по вариантам,
// сохраняя порядок первого появления.
func (p *UnifiedProduct) ColorsAvailable() []string {
	seen := make(map[string]struct{}, len(p.Variants))
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Color.Name == "" {
			continue
		}
		if _, ok := seen[v.Color.Name]; ok {
			continue
		}
		seen[v.Color.Name] = struct{}{}
		colors = append(colors, v.Color.Name)
	}
	return colors
}

// SizesAvailable — уникальные размеры по вариантам в порядке появления.
func (p *UnifiedProduct) SizesAvailable() []string {
	seen := make(map[string]struct{}, len(p.Variants))
	sizes := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Size == "" {
			continue
		}
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		sizes = append(sizes, v.Size)
	}
	return sizes
}
