package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SupplierConfig struct {
	BaseURL           string `yaml:"base_url"`
	APIKey            string `yaml:"api_key"`
	Email             string `yaml:"email"`
	Password          string `yaml:"password"`
	AccountNumber     string `yaml:"account_number"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	PageSize          int    `yaml:"page_size"`
	MaxPages          int    `yaml:"max_pages"`
}

// Configured: поставщик без ключа пропускается при сборке приложения,
// а не валит его.
func (s SupplierConfig) Configured() bool {
	return s.APIKey != ""
}

type SuppliersConfig struct {
	ASColour     SupplierConfig `yaml:"ascolour"`
	SSActivewear SupplierConfig `yaml:"ssactivewear"`
	SanMar       SupplierConfig `yaml:"sanmar"`
}

// Duration заворачивает time.Duration: yaml.v3 сам по себе строку "15m"
// в Duration не разбирает.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type TTLConfig struct {
	Inventory     Duration `yaml:"inventory"`
	Price         Duration `yaml:"price"`
	ProductDetail Duration `yaml:"product_detail"`
	ProductList   Duration `yaml:"product_list"`
}

type CacheConfig struct {
	Addr        string    `yaml:"addr"`
	Password    string    `yaml:"password"`
	DB          int       `yaml:"db"`
	CostPerCall float64   `yaml:"cost_per_call"`
	TTL         TTLConfig `yaml:"ttl"`
}

type AppConfig struct {
	Suppliers SuppliersConfig `yaml:"suppliers"`
	Cache     CacheConfig     `yaml:"cache"`
	Postgres  PostgresConfig  `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

// DefaultConfig — конфигурация целиком из окружения, когда yaml-файла нет.
func DefaultConfig() *AppConfig {
	config := &AppConfig{Postgres: *GetPostgresConfig()}
	config.applyEnv()
	return config
}

// applyEnv перекрывает секреты значениями из окружения: ключи держат в
// .env, а не в yaml рядом с кодом.
func (c *AppConfig) applyEnv() {
	c.Suppliers.ASColour.APIKey = getEnv("ASCOLOUR_API_KEY", c.Suppliers.ASColour.APIKey)
	c.Suppliers.ASColour.Email = getEnv("ASCOLOUR_EMAIL", c.Suppliers.ASColour.Email)
	c.Suppliers.ASColour.Password = getEnv("ASCOLOUR_PASSWORD", c.Suppliers.ASColour.Password)
	c.Suppliers.SSActivewear.APIKey = getEnv("SS_API_KEY", c.Suppliers.SSActivewear.APIKey)
	c.Suppliers.SSActivewear.AccountNumber = getEnv("SS_ACCOUNT_NUMBER", c.Suppliers.SSActivewear.AccountNumber)
	c.Suppliers.SanMar.APIKey = getEnv("SANMAR_API_KEY", c.Suppliers.SanMar.APIKey)
	c.Cache.Addr = getEnv("REDIS_ADDR", c.Cache.Addr)
	c.Cache.Password = getEnv("REDIS_PASSWORD", c.Cache.Password)
}
