package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type RedisConnect struct {
	Host     string        `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string        `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string        `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
	Timeout  time.Duration `yaml:"REDIS_TIMEOUT" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// Tables holds the numeric table ids of the hosted record store.
type Tables struct {
	Users              int64 `yaml:"users" env:"TABLE_USERS" env-required:"true"`
	Products           int64 `yaml:"products" env:"TABLE_PRODUCTS" env-required:"true"`
	Addresses          int64 `yaml:"addresses" env:"TABLE_ADDRESSES" env-required:"true"`
	Vouchers           int64 `yaml:"vouchers" env:"TABLE_VOUCHERS" env-required:"true"`
	Orders             int64 `yaml:"orders" env:"TABLE_ORDERS" env-required:"true"`
	OrderItems         int64 `yaml:"order_items" env:"TABLE_ORDER_ITEMS" env-required:"true"`
	OrderStatusHistory int64 `yaml:"order_status_history" env:"TABLE_ORDER_STATUS_HISTORY" env-required:"true"`
}

type TableStore struct {
	BaseURL        string        `yaml:"base_url" env:"TABLE_STORE_URL" env-required:"true"`
	Token          string        `yaml:"token" env:"TABLE_STORE_TOKEN" env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TABLE_STORE_TIMEOUT" env-default:"10s"`
	PageSize       int           `yaml:"page_size" env:"TABLE_STORE_PAGE_SIZE" env-default:"100"`
	Tables         Tables        `yaml:"tables"`
}

type Assistant struct {
	Endpoint string        `yaml:"endpoint" env:"ASSISTANT_ENDPOINT" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	APIKey   string        `yaml:"api_key" env:"ASSISTANT_API_KEY"`
	Model    string        `yaml:"model" env:"ASSISTANT_MODEL" env-default:"gemini-1.5-flash"`
	Timeout  time.Duration `yaml:"timeout" env:"ASSISTANT_TIMEOUT" env-default:"30s"`
}

type Checkout struct {
	ShippingFee       int64         `yaml:"shipping_fee" env:"CHECKOUT_SHIPPING_FEE" env-default:"15000"`
	OrderNumberPrefix string        `yaml:"order_number_prefix" env:"CHECKOUT_ORDER_PREFIX" env-default:"ORD"`
	SubmitTimeout     time.Duration `yaml:"submit_timeout" env:"CHECKOUT_SUBMIT_TIMEOUT" env-default:"30s"`
}

type Cart struct {
	KeyPrefix    string        `yaml:"key_prefix" env:"CART_KEY_PREFIX" env-default:"cart"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"CART_WRITE_TIMEOUT" env-default:"5s"`
	IdleTTL      time.Duration `yaml:"idle_ttl" env:"CART_IDLE_TTL" env-default:"30m"`
}

// LoginRateLimit caps failed and successful sign-in attempts per email in a
// sliding window.
type LoginRateLimit struct {
	MaxAttempts int64         `yaml:"max_attempts" env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"window_size" env:"LOGIN_WINDOW_SIZE" env-default:"1m"`
}

// Staff guards the order status endpoint. An empty key disables it.
type Staff struct {
	APIKey string `yaml:"api_key" env:"STAFF_API_KEY"`
}

type Telemetry struct {
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"storefront-checkout"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect   `yaml:"redis"`
	TableStore   TableStore     `yaml:"table_store"`
	Assistant    Assistant      `yaml:"assistant"`
	Checkout     Checkout       `yaml:"checkout"`
	Cart         Cart           `yaml:"cart"`
	RateLimit    LoginRateLimit `yaml:"login_rate_limit"`
	Staff        Staff          `yaml:"staff"`
	Telemetry    Telemetry      `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

// ShippingFeeAmount returns the flat shipping fee as a decimal amount.
func (c *Checkout) ShippingFeeAmount() decimal.Decimal {
	return decimal.NewFromInt(c.ShippingFee)
}
