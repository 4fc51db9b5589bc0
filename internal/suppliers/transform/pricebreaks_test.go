package transform_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
)

func quantities(breaks []models.PriceBreak) []int {
	out := make([]int, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, b.Quantity)
	}
	return out
}

func TestNormalizePriceBreaks(t *testing.T) {
	log := logger.NewNopLogger()

	sorted, base := transform.NormalizePriceBreaks(log, "5001", []models.PriceBreak{
		{Quantity: 100, UnitPrice: 5.5},
		{Quantity: 1, UnitPrice: 8.0},
		{Quantity: 25, UnitPrice: 6.75},
		{Quantity: 25, UnitPrice: 9.99},
	})

	assert.Equal(t, 8.0, base)
	assert.Equal(t, []int{1, 25, 100}, quantities(sorted))
	assert.Equal(t, 6.75, sorted[1].UnitPrice, "first occurrence of a duplicated tier wins")
}

func TestNormalizePriceBreaksEmpty(t *testing.T) {
	sorted, base := transform.NormalizePriceBreaks(logger.NewNopLogger(), "5001", nil)
	assert.Nil(t, sorted)
	assert.Zero(t, base)
}

func TestNormalizePriceBreaksLogsMonotonicityViolation(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&buf, "[TEST]")

	sorted, _ := transform.NormalizePriceBreaks(log, "39528", []models.PriceBreak{
		{Quantity: 1, UnitPrice: 4.0},
		{Quantity: 50, UnitPrice: 4.5},
	})

	// Кривая ступень остаётся в данных, но попадает в лог.
	assert.Len(t, sorted, 2)
	assert.Contains(t, buf.String(), "monotonicity")
	assert.Contains(t, buf.String(), "39528")
}

func TestMergeVariantsSumsDuplicates(t *testing.T) {
	merged := transform.MergeVariants([]models.Variant{
		{SKU: "AC-5001-BLK-SM", InventoryQty: 10},
		{SKU: "AC-5001-BLK-MD", InventoryQty: 7},
		{SKU: "AC-5001-BLK-SM", InventoryQty: 5},
	})

	assert.Len(t, merged, 2)
	assert.Equal(t, "AC-5001-BLK-SM", merged[0].SKU)
	assert.Equal(t, 15, merged[0].InventoryQty)
	assert.Equal(t, 7, merged[1].InventoryQty)
}
