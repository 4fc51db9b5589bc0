package services

import (
	"regexp"
	"strings"

	"printshop_api/internal/core/models"
)

var (
	shortNumericPattern = regexp.MustCompile(`^\d{4,5}$`)
	longNumericPattern  = regexp.MustCompile(`^\d{6,}$`)
	alphaNumericPattern = regexp.MustCompile(`^[A-Z]{1,4}\d+[A-Z]?$`)
)

var supplierPrefixes = map[string]models.Supplier{
	"AC-": models.SupplierASColour,
	"SS-": models.SupplierSSActivewear,
	"SM-": models.SupplierSanMar,
}

// DetectSupplier классифицирует SKU по лексической форме:
// явные префиксы AC-/SS-/SM- (без учёта регистра), затем эвристика —
// 4-5 цифр это короткие коды стилей AS Colour, 6+ цифр — длинные numeric
// styleID S&S, буквы+цифры — коды SanMar (PC54, K110P).
//
// Эвристика — фолбэк по умолчанию. Вызывающий, который уже знает
// поставщика, должен обходить детектор целиком.
func DetectSupplier(sku string) models.Supplier {
	upper := strings.ToUpper(strings.TrimSpace(sku))

	for prefix, supplier := range supplierPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return supplier
		}
	}

	switch {
	case shortNumericPattern.MatchString(upper):
		return models.SupplierASColour
	case longNumericPattern.MatchString(upper):
		return models.SupplierSSActivewear
	case alphaNumericPattern.MatchString(upper):
		return models.SupplierSanMar
	}

	return models.SupplierSanMar
}

// ExtractStyleCode снимает префикс поставщика (если есть) и приводит код
// к верхнему регистру: все три поставщика трактуют коды стилей
// регистронезависимо.
func ExtractStyleCode(sku string, supplier models.Supplier) string {
	upper := strings.ToUpper(strings.TrimSpace(sku))
	for prefix, owner := range supplierPrefixes {
		if owner == supplier && strings.HasPrefix(upper, prefix) {
			return strings.TrimPrefix(upper, prefix)
		}
	}
	return upper
}
