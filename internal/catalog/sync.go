package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"printshop_api/internal/cache"
	"printshop_api/internal/core/models"
	"printshop_api/pkg/logger"
)

// ProductStore — место назначения синхронизации. Реализуется постгресовым
// репозиторием каталога.
type ProductStore interface {
	Upsert(ctx context.Context, product *models.UnifiedProduct) error
	Count(ctx context.Context) (int, error)
}

// SyncReport — итог прогона синхронизации одного поставщика.
type SyncReport struct {
	Supplier models.Supplier `json:"supplier"`
	Total    int             `json:"total"`
	Upserted int             `json:"upserted"`
	Failed   int             `json:"failed"`
	Duration time.Duration   `json:"duration"`
}

// SyncService выгружает каталоги поставщиков в локальное хранилище.
// Ошибки отдельных товаров не прерывают прогон; после успешного прогона
// списочный кэш поставщика инвалидируется.
type SyncService struct {
	products *ProductService
	store    ProductStore
	cache    *cache.Service
	log      logger.Logger
}

func NewSyncService(products *ProductService, store ProductStore, cacheSvc *cache.Service, writer io.Writer) *SyncService {
	return &SyncService{
		products: products,
		store:    store,
		cache:    cacheSvc,
		log:      logger.NewLogger(writer, "[SYNC]"),
	}
}

// SyncSupplier выгружает весь каталог одного поставщика и апсертит его
// в хранилище. Возвращает отчёт даже при частичных сбоях; ошибкой
// завершается только полный провал выгрузки.
func (s *SyncService) SyncSupplier(ctx context.Context, supplier models.Supplier) (*SyncReport, error) {
	adapter, ok := s.products.Adapter(supplier)
	if !ok {
		return nil, fmt.Errorf("supplier %s is not configured", supplier)
	}

	report := &SyncReport{Supplier: supplier}
	started := time.Now()

	pattern := string(cache.CategoryProductList) + ":" + string(supplier) + ":*"
	err := cache.InvalidateAfter(ctx, s.cache, pattern, func(ctx context.Context) error {
		list, err := adapter.GetAllProducts(ctx)
		if err != nil {
			return fmt.Errorf("fetch catalog of %s: %w", supplier, err)
		}

		report.Total = len(list)
		for _, product := range list {
			product.Metadata.LastSyncedAt = time.Now().UTC()
			if err := s.store.Upsert(ctx, product); err != nil {
				report.Failed++
				s.log.Log("upsert %s failed: %v", product.SKU, err)
				continue
			}
			report.Upserted++
		}
		return nil
	})
	report.Duration = time.Since(started)
	if err != nil {
		return nil, err
	}

	s.log.Log("synced %s: %d upserted, %d failed of %d in %s",
		supplier, report.Upserted, report.Failed, report.Total, report.Duration.Round(time.Millisecond))
	return report, nil
}

// SyncAll прогоняет синхронизацию по всем сконфигурированным поставщикам.
// Провал одного поставщика не останавливает остальных.
func (s *SyncService) SyncAll(ctx context.Context) []*SyncReport {
	var reports []*SyncReport
	for _, supplier := range s.products.AvailableSuppliers() {
		report, err := s.SyncSupplier(ctx, supplier)
		if err != nil {
			s.log.Log("sync of %s failed: %v", supplier, err)
			reports = append(reports, &SyncReport{Supplier: supplier, Failed: 1})
			continue
		}
		reports = append(reports, report)
	}
	return reports
}
