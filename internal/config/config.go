package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config/local.yaml"

type HTTPServer struct {
	Addr              string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// RateConfig bounds checkout attempts per buyer inside a sliding window.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"60s"`
	// RequestsPerSecond and Burst feed the in-process token bucket in front of the API.
	RequestsPerSecond float64 `yaml:"REQUESTS_PER_SECOND" env:"REQUESTS_PER_SECOND" env-default:"10"`
	Burst             int     `yaml:"BURST" env:"RATE_BURST" env-default:"20"`
}

type Stripe struct {
	APIKey        string        `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	WebhookSecret string        `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
	Currency      string        `yaml:"STRIPE_CURRENCY" env:"STRIPE_CURRENCY" env-default:"rub"`
	SuccessURL    string        `yaml:"STRIPE_SUCCESS_URL" env:"STRIPE_SUCCESS_URL" env-default:"http://localhost:3000/checkout/success"`
	CancelURL     string        `yaml:"STRIPE_CANCEL_URL" env:"STRIPE_CANCEL_URL" env-default:"http://localhost:3000/checkout/cancel"`
	Timeout       time.Duration `yaml:"STRIPE_TIMEOUT" env:"STRIPE_TIMEOUT" env-default:"10s"`
}

type SendGrid struct {
	APIKey      string        `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail   string        `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@example.com"`
	FromName    string        `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
	AdminEmails []string      `yaml:"ADMIN_EMAILS" env:"SENDGRID_ADMIN_EMAILS" env-separator:","`
	Timeout     time.Duration `yaml:"TIMEOUT" env:"SENDGRID_TIMEOUT" env-default:"10s"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
	// ViewHashKey keys the BLAKE2b digest used to de-duplicate product views by IP.
	ViewHashKey string `yaml:"VIEW_HASH_KEY" env:"VIEW_HASH_KEY" env-default:"storefront-view-counter"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-api"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Catalog struct {
	PageSize        int `yaml:"page_size" env:"CATALOG_PAGE_SIZE" env-default:"12"`
	HomeCollections int `yaml:"home_collections" env:"CATALOG_HOME_COLLECTIONS" env-default:"3"`
}

type Cart struct {
	// BulkAtomic applies a bulk add in one transaction. When false every line is
	// committed on its own and earlier lines survive a later failure.
	BulkAtomic bool `yaml:"bulk_atomic" env:"CART_BULK_ATOMIC" env-default:"true"`
}

type Checkout struct {
	OrderNumberAttempts   int `yaml:"order_number_attempts" env:"CHECKOUT_ORDER_NUMBER_ATTEMPTS" env-default:"5"`
	NotificationQueueSize int `yaml:"notification_queue_size" env:"CHECKOUT_NOTIFICATION_QUEUE_SIZE" env-default:"100"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Stripe       Stripe       `yaml:"stripe"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Security     Security     `yaml:"security"`
	Otel         Otel         `yaml:"otel"`
	Cache        CacheConfig  `yaml:"cache"`
	Catalog      Catalog      `yaml:"catalog"`
	Cart         Cart         `yaml:"cart"`
	Checkout     Checkout     `yaml:"checkout"`
}

// MustLoad resolves the config path from CONFIG_PATH, the -config flag or the
// default location and exits the process when the file cannot be read.
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the yaml config file")
		flag.Parse()

		configPath = *flags
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not load config: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
