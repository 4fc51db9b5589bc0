package sanmar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/clients"
	"printshop_api/pkg/logger"
)

const (
	defaultBaseURL  = "https://api.sanmar.com"
	defaultPageSize = 200
	defaultMaxPages = 200
	defaultRPM      = 90
)

type Config struct {
	BaseURL           string
	APIKey            string
	RequestsPerMinute int
	PageSize          int
	MaxPages          int
}

// Client — адаптер SanMar: статичный ключ подписки, товар приходит
// одной выдачей вместе с вариантами и ценами.
type Client struct {
	base     *clients.BaseClient
	log      logger.Logger
	pageSize int
	maxPages int
}

func New(cfg Config, writer io.Writer) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &clients.ValidationError{Field: "sanmar.api_key", Reason: "is required"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultRPM
	}

	return &Client{
		base: clients.NewBaseClient(
			models.SupplierSanMar, cfg.BaseURL, writer, "[SANMAR]",
			clients.WithAuth(clients.NewSubscriptionKeyAuth(cfg.APIKey)),
			clients.WithLimiter(clients.NewWindowLimiter(cfg.RequestsPerMinute, time.Minute)),
		),
		log:      logger.NewLogger(writer, "[SANMAR]"),
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}, nil
}

func (c *Client) Supplier() models.Supplier { return models.SupplierSanMar }

func (c *Client) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	var raw rawProduct
	err := c.base.GetJSON(ctx, "/v1/catalog/products/"+url.PathEscape(styleCode), nil, &raw)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sanmar get product %s: %w", styleCode, err)
	}
	return toUnified(c.log, &raw), nil
}

func (c *Client) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	var all []*models.UnifiedProduct

	for page := 1; page <= c.maxPages; page++ {
		query := url.Values{}
		query.Set("pageNumber", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(c.pageSize))

		var resp productListResponse
		if err := c.base.GetJSON(ctx, "/v1/catalog/products", query, &resp); err != nil {
			return nil, fmt.Errorf("sanmar list page %d: %w", page, err)
		}

		for i := range resp.Products {
			all = append(all, toUnified(c.log, &resp.Products[i]))
		}
		if len(resp.Products) < c.pageSize {
			break
		}
	}
	return all, nil
}

func (c *Client) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	all, err := c.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var matched []*models.UnifiedProduct
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (c *Client) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	var rows []rawInventoryRow
	err := c.base.GetJSON(ctx, "/v1/inventory/styles/"+url.PathEscape(styleCode), nil, &rows)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sanmar inventory %s: %w", styleCode, err)
	}

	levels := make([]models.InventoryLevel, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, models.InventoryLevel{
			SKU:       row.Sku,
			Warehouse: row.Warehouse,
			Qty:       row.Qty,
		})
	}
	return levels, nil
}

// Ping запрашивает одну страницу каталога: проверяет сеть и ключ подписки.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("pageNumber", "1")
	query.Set("pageSize", "1")
	var resp productListResponse
	return c.base.GetJSON(ctx, "/v1/catalog/products", query, &resp)
}

func (c *Client) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	product, err := c.GetProduct(ctx, styleCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	pricing := product.Pricing
	return &pricing, nil
}
