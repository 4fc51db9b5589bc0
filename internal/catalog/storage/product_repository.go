package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"printshop_api/internal/core/models"
	"printshop_api/pkg/logger"
)

// ProductRepository хранит унифицированный каталог в постгресе.
// Полный товар лежит json-документом, рядом — колонки для выборок и
// консьюмерские поля usage_count/is_curated, которые синхронизация
// никогда не перетирает.
type ProductRepository struct {
	db  *sql.DB
	log logger.Logger
}

func NewProductRepository(db *sql.DB, writer io.Writer) *ProductRepository {
	return &ProductRepository{
		db:  db,
		log: logger.NewLogger(writer, "[REPO]"),
	}
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS catalog_products (
			sku            TEXT PRIMARY KEY,
			supplier       TEXT NOT NULL,
			name           TEXT NOT NULL DEFAULT '',
			brand          TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL DEFAULT '',
			base_price     NUMERIC(12, 4) NOT NULL DEFAULT 0,
			payload        JSONB NOT NULL,
			usage_count    INTEGER NOT NULL DEFAULT 0,
			is_curated     BOOLEAN NOT NULL DEFAULT FALSE,
			last_synced_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_catalog_products_supplier
			ON catalog_products (supplier);
		CREATE INDEX IF NOT EXISTS idx_catalog_products_usage
			ON catalog_products (usage_count DESC);
		`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure catalog schema: %w", err)
	}
	return nil
}

// Upsert вставляет или обновляет товар по SKU. Синхронизационные колонки
// перезаписываются, usage_count и is_curated остаются как есть.
func (r *ProductRepository) Upsert(ctx context.Context, product *models.UnifiedProduct) error {
	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", product.SKU, err)
	}

	query := `
		INSERT INTO catalog_products
			(sku, supplier, name, brand, category, base_price, payload, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sku) DO UPDATE SET
			supplier       = EXCLUDED.supplier,
			name           = EXCLUDED.name,
			brand          = EXCLUDED.brand,
			category       = EXCLUDED.category,
			base_price     = EXCLUDED.base_price,
			payload        = EXCLUDED.payload,
			last_synced_at = EXCLUDED.last_synced_at;
		`

	_, err = r.db.ExecContext(ctx, query,
		product.SKU,
		string(product.Supplier),
		product.Name,
		product.Brand,
		product.Category,
		product.Pricing.BasePrice,
		payload,
		product.Metadata.LastSyncedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", product.SKU, err)
	}
	return nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.UnifiedProduct, error) {
	query := `SELECT payload FROM catalog_products WHERE sku = $1;`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, sku).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", sku, err)
	}

	var product models.UnifiedProduct
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", sku, err)
	}
	return &product, nil
}

// Top возвращает самые используемые товары.
func (r *ProductRepository) Top(ctx context.Context, limit int) ([]*models.UnifiedProduct, error) {
	query := `
		SELECT payload
		FROM catalog_products
		ORDER BY usage_count DESC, sku
		LIMIT $1;
		`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var products []*models.UnifiedProduct
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var product models.UnifiedProduct
		if err := json.Unmarshal(payload, &product); err != nil {
			r.log.Log("skipping corrupt payload: %v", err)
			continue
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

// IncrementUsage отмечает обращение к товару.
func (r *ProductRepository) IncrementUsage(ctx context.Context, sku string) error {
	query := `UPDATE catalog_products SET usage_count = usage_count + 1 WHERE sku = $1;`
	if _, err := r.db.ExecContext(ctx, query, sku); err != nil {
		return fmt.Errorf("increment usage of %s: %w", sku, err)
	}
	return nil
}

func (r *ProductRepository) MarkCurated(ctx context.Context, sku string, curated bool) error {
	query := `UPDATE catalog_products SET is_curated = $2 WHERE sku = $1;`

	result, err := r.db.ExecContext(ctx, query, sku, curated)
	if err != nil {
		return fmt.Errorf("mark curated %s: %w", sku, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %s not found", sku)
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_products;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CountBySupplier — размер каталога в разрезе поставщиков.
func (r *ProductRepository) CountBySupplier(ctx context.Context) (map[models.Supplier]int, error) {
	query := `SELECT supplier, COUNT(*) FROM catalog_products GROUP BY supplier;`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by supplier: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Supplier]int)
	for rows.Next() {
		var supplier string
		var count int
		if err := rows.Scan(&supplier, &count); err != nil {
			return nil, err
		}
		counts[models.Supplier(supplier)] = count
	}
	return counts, rows.Err()
}
