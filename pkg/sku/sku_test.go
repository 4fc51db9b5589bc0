package sku_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop_api/pkg/sku"
)

func TestGenerateInternalSKU(t *testing.T) {
	t.Run("ColorAndSize", func(t *testing.T) {
		got := sku.GenerateInternalSKU("GLD-5000", "Black", "L", "")
		assert.Equal(t, "GLD-5000-BLK-LG", got)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := sku.GenerateInternalSKU("5001", "White", "2X-Large", "tee")
		second := sku.GenerateInternalSKU("5001", "White", "2X-Large", "tee")
		assert.Equal(t, first, second)
	})

	t.Run("OmitsEmptySegments", func(t *testing.T) {
		assert.Equal(t, "PC54", sku.GenerateInternalSKU("pc54", "", "", ""))
		assert.Equal(t, "PC54-NVY", sku.GenerateInternalSKU("PC54", "Navy", "", ""))
	})
}

func TestParseSKU(t *testing.T) {
	t.Run("TwoSegments", func(t *testing.T) {
		parts, err := sku.ParseSKU("PC54-NVY")
		require.NoError(t, err)
		assert.Equal(t, sku.Parts{BaseSKU: "PC54", ColorCode: "NVY"}, parts)
	})

	t.Run("ThreeSegments", func(t *testing.T) {
		parts, err := sku.ParseSKU("PC54-NVY-LG")
		require.NoError(t, err)
		assert.Equal(t, sku.Parts{BaseSKU: "PC54", ColorCode: "NVY", SizeCode: "LG"}, parts)
	})

	t.Run("HyphenatedBase", func(t *testing.T) {
		parts, err := sku.ParseSKU("GLD-5000-BLK-LG")
		require.NoError(t, err)
		assert.Equal(t, sku.Parts{BaseSKU: "GLD-5000", ColorCode: "BLK", SizeCode: "LG"}, parts)
	})

	t.Run("RoundTripIsHeuristic", func(t *testing.T) {
		// Разбор с потерями: base с одним дефисом и без размера
		// неотличим от base+color+size.
		parts, err := sku.ParseSKU("GLD-5000-BLK")
		require.NoError(t, err)
		assert.Equal(t, "GLD", parts.BaseSKU)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := sku.ParseSKU("-bad")
		assert.Error(t, err)
	})
}

func TestIsValidSKU(t *testing.T) {
	assert.True(t, sku.IsValidSKU("GLD-5000-BLK-LG"))
	assert.True(t, sku.IsValidSKU("pc_54"))
	assert.False(t, sku.IsValidSKU("ab"))
	assert.False(t, sku.IsValidSKU("-leading-hyphen"))
	assert.False(t, sku.IsValidSKU("has space"))
	assert.False(t, sku.IsValidSKU(""))
}
