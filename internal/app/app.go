package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"

	"printshop_api/config"
	"printshop_api/internal/cache"
	"printshop_api/internal/catalog"
	"printshop_api/internal/catalog/storage"
	"printshop_api/internal/core/models"
	"printshop_api/internal/suppliers/ascolour"
	"printshop_api/internal/suppliers/sanmar"
	"printshop_api/internal/suppliers/ssactivewear"
	"printshop_api/pkg/dbconnect/postgres"
	"printshop_api/pkg/logger"
)

// Server собирает каталожный сервис из конфигурации и гоняет команды CLI.
type Server struct {
	writer io.Writer
	log    logger.Logger
}

func NewServer(writer io.Writer) *Server {
	return &Server{
		writer: writer,
		log:    logger.NewLogger(writer, "[APP]"),
	}
}

func (s *Server) Run(args []string) error {
	// .env опционален: в контейнере окружение приходит снаружи.
	_ = godotenv.Load()

	flags := flag.NewFlagSet("printshop", flag.ContinueOnError)
	configPath := flags.StringP("config", "c", "config/values/config.yaml", "path to yaml config")
	supplierName := flags.StringP("supplier", "s", "", "limit command to one supplier")
	metricsAddr := flags.String("metrics-addr", "", "expose prometheus metrics on this address during sync")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		s.log.Log("config %s not readable (%v), falling back to environment", *configPath, err)
		cfg = config.DefaultConfig()
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: printshop [flags] sync|status|lookup <sku>|search <term>|stock <sku>")
	}

	ctx := context.Background()
	products, cacheSvc := s.buildCatalog(cfg)

	switch rest[0] {
	case "sync":
		return s.runSync(ctx, cfg, products, cacheSvc, *supplierName, *metricsAddr)
	case "status":
		return s.runStatus(ctx, cfg, products)
	case "lookup":
		if len(rest) < 2 {
			return fmt.Errorf("usage: printshop lookup <sku>")
		}
		return s.runLookup(ctx, cfg, products, rest[1])
	case "search":
		if len(rest) < 2 {
			return fmt.Errorf("usage: printshop search <term>")
		}
		return s.runSearch(ctx, products, rest[1])
	case "stock":
		if len(rest) < 2 {
			return fmt.Errorf("usage: printshop stock <sku>")
		}
		return printJSON(s.writer, products.CheckStock(ctx, rest[1]))
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

// buildCatalog поднимает кэш и регистрирует адаптеры поставщиков,
// у которых есть учётные данные. Отсутствие редиса или части ключей —
// деградация, не отказ.
func (s *Server) buildCatalog(cfg *config.AppConfig) (*catalog.ProductService, *cache.Service) {
	var store cache.Store
	if cfg.Cache.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		store = cache.NewRedisStore(client)
	}

	var opts []cache.ServiceOption
	if cfg.Cache.CostPerCall > 0 {
		opts = append(opts, cache.WithCostPerCall(cfg.Cache.CostPerCall))
	}
	opts = append(opts, cache.WithTTLConfig(cache.TTLConfig{
		Inventory:     cfg.Cache.TTL.Inventory.Std(),
		Price:         cfg.Cache.TTL.Price.Std(),
		ProductDetail: cfg.Cache.TTL.ProductDetail.Std(),
		ProductList:   cfg.Cache.TTL.ProductList.Std(),
	}))
	cacheSvc := cache.NewService(store, s.writer, opts...)

	products := catalog.NewProductService(cacheSvc, s.writer)

	if sup := cfg.Suppliers.ASColour; sup.Configured() {
		client, err := ascolour.New(ascolour.Config{
			BaseURL:           sup.BaseURL,
			APIKey:            sup.APIKey,
			Email:             sup.Email,
			Password:          sup.Password,
			RequestsPerMinute: sup.RequestsPerMinute,
			PageSize:          sup.PageSize,
			MaxPages:          sup.MaxPages,
		}, s.writer)
		if err != nil {
			s.log.Log("ascolour adapter skipped: %v", err)
		} else {
			products.Register(client)
		}
	}
	if sup := cfg.Suppliers.SSActivewear; sup.Configured() {
		client, err := ssactivewear.New(ssactivewear.Config{
			BaseURL:           sup.BaseURL,
			APIKey:            sup.APIKey,
			AccountNumber:     sup.AccountNumber,
			RequestsPerMinute: sup.RequestsPerMinute,
			PageSize:          sup.PageSize,
			MaxPages:          sup.MaxPages,
		}, s.writer)
		if err != nil {
			s.log.Log("ssactivewear adapter skipped: %v", err)
		} else {
			products.Register(client)
		}
	}
	if sup := cfg.Suppliers.SanMar; sup.Configured() {
		client, err := sanmar.New(sanmar.Config{
			BaseURL:           sup.BaseURL,
			APIKey:            sup.APIKey,
			RequestsPerMinute: sup.RequestsPerMinute,
			PageSize:          sup.PageSize,
			MaxPages:          sup.MaxPages,
		}, s.writer)
		if err != nil {
			s.log.Log("sanmar adapter skipped: %v", err)
		} else {
			products.Register(client)
		}
	}

	if len(products.AvailableSuppliers()) == 0 {
		s.log.Log("no suppliers configured, catalog will answer with empty results")
	}
	return products, cacheSvc
}

func (s *Server) openRepository(ctx context.Context, cfg *config.AppConfig) (*storage.ProductRepository, error) {
	connector := postgres.NewPgConnector(cfg.Postgres)
	db, err := connector.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	repo := storage.NewProductRepository(db, s.writer)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (s *Server) runSync(ctx context.Context, cfg *config.AppConfig, products *catalog.ProductService, cacheSvc *cache.Service, supplierName, metricsAddr string) error {
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				s.log.Log("metrics listener stopped: %v", err)
			}
		}()
	}

	repo, err := s.openRepository(ctx, cfg)
	if err != nil {
		return err
	}

	sync := catalog.NewSyncService(products, repo, cacheSvc, s.writer)
	if supplierName != "" {
		report, err := sync.SyncSupplier(ctx, models.ParseSupplier(supplierName))
		if err != nil {
			return err
		}
		return printJSON(s.writer, report)
	}
	return printJSON(s.writer, sync.SyncAll(ctx))
}

func (s *Server) runStatus(ctx context.Context, cfg *config.AppConfig, products *catalog.ProductService) error {
	status := struct {
		Suppliers []models.Supplier        `json:"suppliers"`
		Health    map[models.Supplier]bool `json:"health"`
		Cache     models.CacheStats        `json:"cache"`
		Catalog   map[models.Supplier]int  `json:"catalog,omitempty"`
	}{
		Suppliers: products.AvailableSuppliers(),
		Cache:     products.CacheStats(),
	}

	healthCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	status.Health = products.HealthCheck(healthCtx)

	if repo, err := s.openRepository(ctx, cfg); err != nil {
		s.log.Log("catalog storage unavailable: %v", err)
	} else if counts, err := repo.CountBySupplier(ctx); err == nil {
		status.Catalog = counts
	}

	return printJSON(s.writer, status)
}

func (s *Server) runLookup(ctx context.Context, cfg *config.AppConfig, products *catalog.ProductService, sku string) error {
	product, err := products.GetProduct(ctx, sku)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %s not found", sku)
	}

	// Учёт обращений живёт в хранилище; без постгреса lookup всё равно работает.
	if repo, err := s.openRepository(ctx, cfg); err == nil {
		if err := repo.IncrementUsage(ctx, product.SKU); err != nil {
			s.log.Log("usage counter not updated for %s: %v", product.SKU, err)
		}
	}

	return printJSON(s.writer, product)
}

func (s *Server) runSearch(ctx context.Context, products *catalog.ProductService, term string) error {
	results, err := products.SearchProducts(ctx, term)
	if err != nil {
		return err
	}
	return printJSON(s.writer, results)
}

func printJSON(writer io.Writer, value interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
