package transform

import (
	"sort"

	"printshop_api/internal/core/models"
	"printshop_api/pkg/logger"
)

// NormalizePriceBreaks сортирует ступени по возрастанию количества и
// схлопывает дубликаты порогов. Нарушение монотонности скидки (цена за
// единицу растёт с количеством) помечается в логе, но данные сохраняются:
// отбрасывать товар целиком из-за одной кривой ступени — потеря синка.
// Возвращает также basePrice — цену ступени с минимальным количеством.
func NormalizePriceBreaks(log logger.Logger, supplierProductID string, breaks []models.PriceBreak) ([]models.PriceBreak, float64) {
	if len(breaks) == 0 {
		return nil, 0
	}

	sorted := make([]models.PriceBreak, 0, len(breaks))
	seen := make(map[int]struct{}, len(breaks))
	for _, b := range breaks {
		if _, ok := seen[b.Quantity]; ok {
			continue
		}
		seen[b.Quantity] = struct{}{}
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Quantity < sorted[j].Quantity })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].UnitPrice > sorted[i-1].UnitPrice {
			log.Log("price breaks for %s violate volume discount monotonicity: qty %d at %.2f > qty %d at %.2f",
				supplierProductID, sorted[i].Quantity, sorted[i].UnitPrice,
				sorted[i-1].Quantity, sorted[i-1].UnitPrice)
		}
	}

	return sorted, sorted[0].UnitPrice
}

// MergeVariants устраняет дубликаты цвет×размер, суммируя остатки:
// SKU вариантов внутри товара обязаны быть уникальны.
func MergeVariants(variants []models.Variant) []models.Variant {
	merged := make([]models.Variant, 0, len(variants))
	index := make(map[string]int, len(variants))
	for _, v := range variants {
		if pos, ok := index[v.SKU]; ok {
			merged[pos].InventoryQty += v.InventoryQty
			continue
		}
		index[v.SKU] = len(merged)
		merged = append(merged, v)
	}
	return merged
}
