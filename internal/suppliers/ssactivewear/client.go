package ssactivewear

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/clients"
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
)

const (
	defaultBaseURL  = "https://api.ssactivewear.com"
	defaultPageSize = 100
	defaultMaxPages = 100
	defaultRPM      = 120
)

type Config struct {
	BaseURL           string
	APIKey            string
	AccountNumber     string
	RequestsPerMinute int
	PageSize          int
	MaxPages          int
}

// Client — адаптер S&S Activewear: basic auth из номера аккаунта и ключа,
// нативный поиск, постраничная выгрузка.
type Client struct {
	base     *clients.BaseClient
	log      logger.Logger
	pageSize int
	maxPages int
}

func New(cfg Config, writer io.Writer) (*Client, error) {
	if cfg.APIKey == "" || cfg.AccountNumber == "" {
		return nil, &clients.ValidationError{Field: "ssactivewear credentials", Reason: "api key and account number are required"}
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
			models.SupplierSSActivewear, cfg.BaseURL, writer, "[S&S]",
			clients.WithAuth(clients.NewBasicAuth(cfg.AccountNumber, cfg.APIKey)),
			clients.WithLimiter(clients.NewWindowLimiter(cfg.RequestsPerMinute, time.Minute)),
		),
		log:      logger.NewLogger(writer, "[S&S]"),
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}, nil
}

func (c *Client) Supplier() models.Supplier { return models.SupplierSSActivewear }

func (c *Client) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	var raw rawStyle
	err := c.base.GetJSON(ctx, "/v2/products/"+url.PathEscape(styleCode), nil, &raw)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ssactivewear get product %s: %w", styleCode, err)
	}

	pricing, err := c.fetchPricing(ctx, styleCode)
	if err != nil {
		c.log.Log("pricing unavailable for %s: %v", styleCode, err)
		pricing = nil
	}

	return toUnified(c.log, &raw, pricing), nil
}

func (c *Client) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	var all []*models.UnifiedProduct

	for page := 1; page <= c.maxPages; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("perPage", strconv.Itoa(c.pageSize))

		var styles []rawStyle
		if err := c.base.GetJSON(ctx, "/v2/products", query, &styles); err != nil {
			return nil, fmt.Errorf("ssactivewear list page %d: %w", page, err)
		}

		for i := range styles {
			all = append(all, toUnified(c.log, &styles[i], nil))
		}
		if len(styles) < c.pageSize {
			break
		}
	}
	return all, nil
}

func (c *Client) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	query := url.Values{}
	query.Set("q", term)

	var styles []rawStyle
	if err := c.base.GetJSON(ctx, "/v2/products/search", query, &styles); err != nil {
		return nil, fmt.Errorf("ssactivewear search %q: %w", term, err)
	}

	results := make([]*models.UnifiedProduct, 0, len(styles))
	for i := range styles {
		results = append(results, toUnified(c.log, &styles[i], nil))
	}
	return results, nil
}

func (c *Client) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	var rows []rawInventoryRow
	err := c.base.GetJSON(ctx, "/v2/products/"+url.PathEscape(styleCode)+"/inventory", nil, &rows)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ssactivewear inventory %s: %w", styleCode, err)
	}

	levels := make([]models.InventoryLevel, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, models.InventoryLevel{
			SKU:       row.Sku,
			Warehouse: row.WarehouseAbbr,
			Qty:       row.Qty,
		})
	}
	return levels, nil
}

func (c *Client) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	rows, err := c.fetchPricing(ctx, styleCode)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ssactivewear pricing %s: %w", styleCode, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	breaks := make([]models.PriceBreak, 0, len(rows))
	for _, row := range rows {
		breaks = append(breaks, models.PriceBreak{
			Quantity:  row.Quantity,
			UnitPrice: row.Price,
			CasePrice: row.CasePrice,
		})
	}
	sorted, basePrice := transform.NormalizePriceBreaks(c.log, styleCode, breaks)
	return &models.Pricing{BasePrice: basePrice, PriceBreaks: sorted}, nil
}

// Ping запрашивает одну страницу каталога: проверяет сеть и basic auth.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("perPage", "1")
	var styles []rawStyle
	return c.base.GetJSON(ctx, "/v2/products", query, &styles)
}

func (c *Client) fetchPricing(ctx context.Context, styleCode string) ([]rawPriceRow, error) {
	var rows []rawPriceRow
	if err := c.base.GetJSON(ctx, "/v2/products/"+url.PathEscape(styleCode)+"/pricing", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
