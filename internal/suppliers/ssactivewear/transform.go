package ssactivewear

import (
	"strconv"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
	"printshop_api/pkg/sku"
)

const skuPrefix = "SS-"

// toUnified нормализует стиль S&S в каноническую модель. Строки skus идут
// по складам, поэтому варианты схлопываются по цвет×размер с суммированием
// остатков. pricing best effort: nil допустим.
func toUnified(log logger.Logger, raw *rawStyle, pricing []rawPriceRow) *models.UnifiedProduct {
	styleID := strconv.Itoa(raw.StyleID)
	baseSKU := skuPrefix + styleID

	variants := make([]models.Variant, 0, len(raw.Skus))
	for _, row := range raw.Skus {
		variants = append(variants, models.Variant{
			SKU:          sku.GenerateInternalSKU(baseSKU, row.ColorName, row.SizeName, ""),
			Color:        models.Color{Name: sku.NormalizeColor(row.ColorName), Hex: row.Color1},
			Size:         sku.NormalizeSize(row.SizeName),
			InventoryQty: row.Qty,
			Warehouse:    row.WarehouseAbbr,
		})
	}

	images := raw.Images
	if len(images) == 0 && raw.StyleImage != "" {
		images = []string{raw.StyleImage}
	}

	product := &models.UnifiedProduct{
		SKU:         baseSKU,
		Name:        raw.StyleName,
		Brand:       raw.BrandName,
		Category:    raw.CategoryName,
		Supplier:    models.SupplierSSActivewear,
		Description: raw.Description,
		Variants:    transform.MergeVariants(variants),
		Images:      images,
		Specifications: map[string]string{
			"fabric": raw.FabricContent,
			"weight": raw.PieceWeight,
		},
		Metadata: models.Metadata{
			SupplierProductID: styleID,
			LastSyncedAt:      time.Now().UTC(),
		},
	}

	if len(pricing) > 0 {
		breaks := make([]models.PriceBreak, 0, len(pricing))
		for _, row := range pricing {
			breaks = append(breaks, models.PriceBreak{
				Quantity:  row.Quantity,
				UnitPrice: row.Price,
				CasePrice: row.CasePrice,
			})
		}
		sorted, basePrice := transform.NormalizePriceBreaks(log, styleID, breaks)
		product.Pricing = models.Pricing{BasePrice: basePrice, PriceBreaks: sorted}
	}

	return product
}
