package ascolour

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
	"printshop_api/internal/suppliers/transform"
	"printshop_api/pkg/logger"
)

const (
	defaultBaseURL  = "https://api.ascolour.com"
	defaultPageSize = 100
	defaultMaxPages = 50
	defaultRPM      = 60
)

type Config struct {
	BaseURL           string
	APIKey            string
	Email             string
	Password          string
	RequestsPerMinute int
	PageSize          int
	MaxPages          int
}

// Client — адаптер AS Colour: Subscription-Key на каталожные вызовы,
// bearer-токен из отдельного логина на прайс.
type Client struct {
	base     *clients.BaseClient
	log      logger.Logger
	pageSize int
	maxPages int
}

func New(cfg Config, writer io.Writer) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &clients.ValidationError{Field: "ascolour.api_key", Reason: "is required"}
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

	log := logger.NewLogger(writer, "[ASC]")
	auth := clients.NewBearerLoginAuth(
		models.SupplierASColour,
		cfg.APIKey, cfg.Email, cfg.Password,
		cfg.BaseURL+"/v1/api/authentication",
		log,
	)

	return &Client{
		base: clients.NewBaseClient(
			models.SupplierASColour, cfg.BaseURL, writer, "[ASC]",
			clients.WithAuth(auth),
			clients.WithLimiter(clients.NewWindowLimiter(cfg.RequestsPerMinute, time.Minute)),
		),
		log:      log,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}, nil
}

func (c *Client) Supplier() models.Supplier { return models.SupplierASColour }

func (c *Client) GetProduct(ctx context.Context, styleCode string) (*models.UnifiedProduct, error) {
	var resp productResponse
	err := c.base.GetJSON(ctx, "/v1/catalog/products/"+url.PathEscape(styleCode), nil, &resp)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ascolour get product %s: %w", styleCode, err)
	}

	// Прайс — best effort: без учётных данных или при отказе эндпоинта
	// товар уходит без цен, а не ошибкой.
	pricing, err := c.fetchPricing(ctx, styleCode)
	if err != nil {
		c.log.Log("pricing unavailable for %s: %v", styleCode, err)
		pricing = nil
	}

	return toUnified(c.log, &resp.Data, pricing), nil
}

func (c *Client) GetAllProducts(ctx context.Context) ([]*models.UnifiedProduct, error) {
	var all []*models.UnifiedProduct

	// Жёсткий потолок страниц: пагинация не должна крутиться бесконечно
	// против сломанного API.
	for page := 1; page <= c.maxPages; page++ {
		query := url.Values{}
		query.Set("pageNumber", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(c.pageSize))

		var resp productListResponse
		if err := c.base.GetJSON(ctx, "/v1/catalog/products", query, &resp); err != nil {
			return nil, fmt.Errorf("ascolour list page %d: %w", page, err)
		}

		for i := range resp.Data {
			all = append(all, toUnified(c.log, &resp.Data[i], nil))
		}
		if len(resp.Data) < c.pageSize {
			break
		}
	}
	return all, nil
}

// SearchProducts: нативного поиска у AS Colour нет, фильтруем выгрузку.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]*models.UnifiedProduct, error) {
	all, err := c.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var matched []*models.UnifiedProduct
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) ||
			strings.Contains(strings.ToLower(p.Metadata.SupplierProductID), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (c *Client) GetInventory(ctx context.Context, styleCode string) ([]models.InventoryLevel, error) {
	var resp inventoryResponse
	err := c.base.GetJSON(ctx, "/v1/inventory/styles/"+url.PathEscape(styleCode), nil, &resp)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ascolour inventory %s: %w", styleCode, err)
	}

	levels := make([]models.InventoryLevel, 0, len(resp.Data))
	for _, item := range resp.Data {
		levels = append(levels, models.InventoryLevel{
			SKU:       item.SKU,
			Warehouse: item.Warehouse,
			Qty:       item.Quantity,
		})
	}
	return levels, nil
}

func (c *Client) GetPricing(ctx context.Context, styleCode string) (*models.Pricing, error) {
	resp, err := c.fetchPricing(ctx, styleCode)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ascolour pricing %s: %w", styleCode, err)
	}

	breaks := make([]models.PriceBreak, 0, len(resp.Data.Tiers))
	for _, tier := range resp.Data.Tiers {
		breaks = append(breaks, models.PriceBreak{
			Quantity:  tier.Quantity,
			UnitPrice: tier.Price,
			CasePrice: tier.CasePrice,
		})
	}
	sorted, basePrice := transform.NormalizePriceBreaks(c.log, styleCode, breaks)
	if basePrice == 0 {
		basePrice = resp.Data.Wholesale
	}
	return &models.Pricing{BasePrice: basePrice, PriceBreaks: sorted}, nil
}

// Ping дёргает каталог с минимальной страницей: этого достаточно,
// чтобы проверить и сеть, и Subscription-Key.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("pageNumber", "1")
	query.Set("pageSize", "1")
	var resp productListResponse
	return c.base.GetJSON(ctx, "/v1/catalog/products", query, &resp)
}

func (c *Client) fetchPricing(ctx context.Context, styleCode string) (*pricingResponse, error) {
	var resp pricingResponse
	if err := c.base.GetJSON(ctx, "/v1/pricing/styles/"+url.PathEscape(styleCode), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
