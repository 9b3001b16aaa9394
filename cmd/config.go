package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string `yaml:"http_port"`
	Storage  string `yaml:"storage"`

	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	KafkaBrokers          []string `yaml:"kafka_brokers"`
	KafkaOrderEventsTopic string   `yaml:"kafka_order_events_topic"`

	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`

	LogLevel       string `yaml:"log_level"`
	LogEncoding    string `yaml:"log_encoding"`
	LogDevelopment bool   `yaml:"log_development"`

	TracingExporter string `yaml:"tracing_exporter"`
	OTLPEndpoint    string `yaml:"otlp_endpoint"`

	InvoiceReconcileSchedule string `yaml:"invoice_reconcile_schedule"`
	EmailOnStatusChange      bool   `yaml:"email_on_status_change"`
}

// DefaultConfig is what an empty environment yields.
func DefaultConfig() Config {
	return Config{
		HTTPPort:                 "8080",
		Storage:                  StoragePostgres,
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "postgres",
		DBName:                   "fulfillment",
		DBSslMode:                "disable",
		KafkaOrderEventsTopic:    "order-events",
		SMTPPort:                 587,
		LogLevel:                 "info",
		LogEncoding:              "json",
		TracingExporter:          "none",
		InvoiceReconcileSchedule: "0 * * * * *",
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_FILE, then the environment. A .env file in the working directory
// is loaded into the environment first when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HTTP_PORT":                  &c.HTTPPort,
		"STORAGE":                    &c.Storage,
		"DB_HOST":                    &c.DBHost,
		"DB_PORT":                    &c.DBPort,
		"DB_USER":                    &c.DBUser,
		"DB_PASSWORD":                &c.DBPassword,
		"DB_NAME":                    &c.DBName,
		"DB_SSLMODE":                 &c.DBSslMode,
		"REDIS_ADDR":                 &c.RedisAddr,
		"REDIS_PASSWORD":             &c.RedisPassword,
		"KAFKA_ORDER_EVENTS_TOPIC":   &c.KafkaOrderEventsTopic,
		"SMTP_HOST":                  &c.SMTPHost,
		"SMTP_USER":                  &c.SMTPUser,
		"SMTP_PASSWORD":              &c.SMTPPassword,
		"SMTP_FROM":                  &c.SMTPFrom,
		"LOG_LEVEL":                  &c.LogLevel,
		"LOG_ENCODING":               &c.LogEncoding,
		"TRACING_EXPORTER":           &c.TracingExporter,
		"OTLP_ENDPOINT":              &c.OTLPEndpoint,
		"INVOICE_RECONCILE_SCHEDULE": &c.InvoiceReconcileSchedule,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"REDIS_DB":  &c.RedisDB,
		"SMTP_PORT": &c.SMTPPort,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"LOG_DEVELOPMENT":        &c.LogDevelopment,
		"EMAIL_ON_STATUS_CHANGE": &c.EmailOnStatusChange,
	}
	for key, dst := range bools {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the values that have a closed set of options.
func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errors.New("HTTP_PORT is required"))
	}
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		errList = append(errList, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errList = append(errList, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	return errors.Join(errList...)
}

// DSN is the libpq connection string shared by gorm and sqlx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
