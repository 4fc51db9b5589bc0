package ssactivewear

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop_api/internal/core/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:       server.URL,
		APIKey:        "key",
		AccountNumber: "acct",
		PageSize:      2,
		MaxPages:      5,
	}, io.Discard)
	require.NoError(t, err)
	return client
}

func testStyle(id int, name string) rawStyle {
	return rawStyle{
		StyleID:      id,
		StyleName:    name,
		BrandName:    "Gildan",
		CategoryName: "T-Shirts",
		Skus: []rawSku{
			{Sku: "B001", ColorName: "Black", SizeName: "S", Qty: 10, WarehouseAbbr: "IL"},
			{Sku: "B002", ColorName: "Black", SizeName: "S", Qty: 5, WarehouseAbbr: "NV"},
			{Sku: "B003", ColorName: "White", SizeName: "M", Qty: 7, WarehouseAbbr: "IL"},
		},
	}
}

func TestGetProduct(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "acct", user)
		require.Equal(t, "key", pass)

		switch r.URL.Path {
		case "/v2/products/39528":
			json.NewEncoder(w).Encode(testStyle(39528, "Heavy Cotton Tee"))
		case "/v2/products/39528/pricing":
			json.NewEncoder(w).Encode([]rawPriceRow{
				{Quantity: 72, Price: 2.95},
				{Quantity: 1, Price: 3.5},
				{Quantity: 36, Price: 3.1},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	product, err := client.GetProduct(context.Background(), "39528")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "SS-39528", product.SKU)
	assert.Equal(t, models.SupplierSSActivewear, product.Supplier)
	assert.Equal(t, "39528", product.Metadata.SupplierProductID)

	// Складские строки схлопнуты по цвет×размер, остатки просуммированы.
	require.Len(t, product.Variants, 2)
	assert.Equal(t, "SS-39528-BLK-SM", product.Variants[0].SKU)
	assert.Equal(t, 15, product.Variants[0].InventoryQty)

	// Ступени упорядочены, basePrice — цена минимального количества.
	require.Len(t, product.Pricing.PriceBreaks, 3)
	assert.Equal(t, 1, product.Pricing.PriceBreaks[0].Quantity)
	assert.Equal(t, 3.5, product.Pricing.BasePrice)
}

func TestGetProductNotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	product, err := client.GetProduct(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProductSurvivesPricingFailure(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/products/39528" {
			json.NewEncoder(w).Encode(testStyle(39528, "Heavy Cotton Tee"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	product, err := client.GetProduct(context.Background(), "39528")
	require.NoError(t, err)
	require.NotNil(t, product)
	// Прайс не ответил — поле опущено, трансформация не падает.
	assert.Zero(t, product.Pricing.BasePrice)
	assert.Empty(t, product.Pricing.PriceBreaks)
}

func TestGetAllProductsPagination(t *testing.T) {
	var pagesServed []int
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		require.Equal(t, "2", r.URL.Query().Get("perPage"))
		pagesServed = append(pagesServed, page)

		switch page {
		case 1:
			json.NewEncoder(w).Encode([]rawStyle{testStyle(1, "A"), testStyle(2, "B")})
		case 2:
			// Короткая страница завершает обход.
			json.NewEncoder(w).Encode([]rawStyle{testStyle(3, "C")})
		default:
			t.Fatalf("unexpected page %d", page)
		}
	})

	all, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, []int{1, 2}, pagesServed)
}

func TestGetAllProductsMaxPagesCap(t *testing.T) {
	var served int
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		served++
		// Всегда полная страница: без потолка обход не закончился бы.
		json.NewEncoder(w).Encode([]rawStyle{testStyle(served * 10, "X"), testStyle(served*10+1, "Y")})
	})

	all, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, served)
	assert.Len(t, all, 10)
}

func TestSearchProducts(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/products/search", r.URL.Path)
		require.Equal(t, "cotton", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]rawStyle{testStyle(39528, "Heavy Cotton Tee")})
	})

	results, err := client.SearchProducts(context.Background(), "cotton")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "SS-39528", results[0].SKU)
}

func TestGetInventory(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/products/39528/inventory", r.URL.Path)
		json.NewEncoder(w).Encode([]rawInventoryRow{
			{Sku: "B001", WarehouseAbbr: "IL", Qty: 10},
			{Sku: "B001", WarehouseAbbr: "NV", Qty: 4},
		})
	})

	levels, err := client.GetInventory(context.Background(), "39528")
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "IL", levels[0].Warehouse)
	assert.Equal(t, 10, levels[0].Qty)
}
