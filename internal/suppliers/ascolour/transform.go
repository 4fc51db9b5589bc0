package ascolour

import (
	"strconv"
	"strings"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
	"printshop_api/pkg/sku"
)

// skuPrefix делает канонический SKU глобально уникальным и маршрутизируемым
// обратно к поставщику.
const skuPrefix = "AC-"

// toUnified нормализует сырой товар AS Colour в каноническую модель.
// pricing может быть nil: прайс-эндпоинт требует bearer-токена и его отказ
// не должен ронять трансформацию — поле просто опускается.
func toUnified(log logger.Logger, raw *rawProduct, pricing *pricingResponse) *models.UnifiedProduct {
	styleCode := strings.ToUpper(strings.TrimSpace(raw.StyleCode))
	baseSKU := skuPrefix + styleCode

	hexByColor := make(map[string]string, len(raw.Colours))
	for _, c := range raw.Colours {
		hexByColor[sku.NormalizeColor(c.Name)] = c.Hex
	}

	variants := make([]models.Variant, 0, len(raw.Items))
	for _, item := range raw.Items {
		color := sku.NormalizeColor(item.Colour)
		variants = append(variants, models.Variant{
			SKU: sku.GenerateInternalSKU(baseSKU, item.Colour, item.Size, ""),
			Color: models.Color{
				Name: color,
				Hex:  hexByColor[color],
			},
			Size: sku.NormalizeSize(item.Size),
		})
	}
	// Каталог без item-строк: разворачиваем цвет×размер из сводных списков.
	if len(variants) == 0 {
		for _, c := range raw.Colours {
			for _, s := range raw.Sizes {
				variants = append(variants, models.Variant{
					SKU:   sku.GenerateInternalSKU(baseSKU, c.Name, s, ""),
					Color: models.Color{Name: sku.NormalizeColor(c.Name), Hex: c.Hex},
					Size:  sku.NormalizeSize(s),
				})
			}
		}
	}

	product := &models.UnifiedProduct{
		SKU:         baseSKU,
		Name:        raw.StyleName,
		Brand:       "AS Colour",
		Category:    raw.ProductType,
		Supplier:    models.SupplierASColour,
		Description: raw.Description,
		Variants:    transform.MergeVariants(variants),
		Images:      raw.Images,
		Specifications: map[string]string{
			"fabric": raw.Composition,
			"weight": raw.FabricWeight,
			"fit":    raw.Fit,
		},
		Metadata: models.Metadata{
			SupplierProductID: styleCode,
			LastSyncedAt:      time.Now().UTC(),
		},
	}
	if raw.WebID != 0 {
		product.Specifications["webId"] = strconv.Itoa(raw.WebID)
	}

	if pricing != nil {
		breaks := make([]models.PriceBreak, 0, len(pricing.Data.Tiers))
		for _, tier := range pricing.Data.Tiers {
			breaks = append(breaks, models.PriceBreak{
				Quantity:  tier.Quantity,
				UnitPrice: tier.Price,
				CasePrice: tier.CasePrice,
			})
		}
		sorted, basePrice := transform.NormalizePriceBreaks(log, styleCode, breaks)
		if basePrice == 0 {
			basePrice = pricing.Data.Wholesale
		}
		product.Pricing = models.Pricing{BasePrice: basePrice, PriceBreaks: sorted}
	}

	return product
}
