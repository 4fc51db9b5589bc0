package sanmar

import (
	"strings"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
	"printshop_api/pkg/sku"
)

const skuPrefix = "SM-"

func toUnified(log logger.Logger, raw *rawProduct) *models.UnifiedProduct {
	styleCode := strings.ToUpper(strings.TrimSpace(raw.Sku))
	baseSKU := skuPrefix + styleCode

	variants := make([]models.Variant, 0, len(raw.Variants))
	for _, v := range raw.Variants {
		variants = append(variants, models.Variant{
			SKU:          sku.GenerateInternalSKU(baseSKU, v.Color, v.Size, ""),
			Color:        models.Color{Name: sku.NormalizeColor(v.Color), Hex: v.ColorHex},
			Size:         sku.NormalizeSize(v.Size),
			InventoryQty: v.Qty,
			Warehouse:    v.Warehouse,
		})
	}

	breaks := make([]models.PriceBreak, 0, len(raw.Pricing.PriceBreaks))
	for _, tier := range raw.Pricing.PriceBreaks {
		breaks = append(breaks, models.PriceBreak{
			Quantity:  tier.Quantity,
			UnitPrice: tier.UnitPrice,
			CasePrice: tier.CasePrice,
		})
	}
	sorted, basePrice := transform.NormalizePriceBreaks(log, styleCode, breaks)
	if basePrice == 0 {
		basePrice = raw.Pricing.BasePrice
	}

	specs := map[string]string{}
	if raw.Fabric != "" {
		specs["fabric"] = raw.Fabric
	}
	if raw.Weight != "" {
		specs["weight"] = raw.Weight
	}

	return &models.UnifiedProduct{
		SKU:            baseSKU,
		Name:           raw.Name,
		Brand:          raw.Brand,
		Category:       raw.Category,
		Supplier:       models.SupplierSanMar,
		Description:    raw.Description,
		Variants:       transform.MergeVariants(variants),
		Pricing:        models.Pricing{BasePrice: basePrice, PriceBreaks: sorted},
		Images:         raw.Images,
		Specifications: specs,
		Metadata: models.Metadata{
			SupplierProductID: styleCode,
			LastSyncedAt:      time.Now().UTC(),
		},
	}
}
