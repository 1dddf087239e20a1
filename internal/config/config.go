package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	JWT       JWTConfig       `yaml:"jwt"`
	Draft     DraftConfig     `yaml:"draft"`
	Payment   PaymentConfig   `yaml:"payment"`
	Notify    NotifyConfig    `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC health listener settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	HealthPort int    `yaml:"health_port"` // gRPC health service, 0 disables it
	PublicURL  string `yaml:"public_url"`  // Frontend origin used to build gateway return URLs
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains the draft store connection
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig contains booking event publishing settings, no brokers disables publishing
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Buffer  int      `yaml:"buffer"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// DraftConfig controls the staged booking store
type DraftConfig struct {
	Backend    string `yaml:"backend"` // "redis" or "memory"
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// TTL returns how long a staged draft survives without a callback
func (d DraftConfig) TTL() time.Duration {
	return time.Duration(d.TTLMinutes) * time.Minute
}

// PaymentConfig contains gateway credentials and endpoints
type PaymentConfig struct {
	Esewa  EsewaConfig  `yaml:"esewa"`
	Khalti KhaltiConfig `yaml:"khalti"`
}

type EsewaConfig struct {
	ProductCode string `yaml:"product_code"`
	SecretKey   string `yaml:"secret_key"`
	FormURL     string `yaml:"form_url"`
	SuccessURL  string `yaml:"success_url"`
	FailureURL  string `yaml:"failure_url"`
}

type KhaltiConfig struct {
	SecretKey      string `yaml:"secret_key"`
	BaseURL        string `yaml:"base_url"`
	ReturnURL      string `yaml:"return_url"`
	WebsiteURL     string `yaml:"website_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// NotifyConfig contains vendor notification channels, empty values disable a channel
type NotifyConfig struct {
	SendGridAPIKey      string     `yaml:"sendgrid_api_key"`
	FromEmail           string     `yaml:"from_email"`
	FromName            string     `yaml:"from_name"`
	FirebaseCredentials string     `yaml:"firebase_credentials_file"`
	SMTP                SMTPConfig `yaml:"smtp"` // used when no SendGrid key is set
}

// SMTPConfig contains email relay settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ActivateStartedRentals  string `yaml:"activate_started_rentals"`
	CompleteFinishedRentals string `yaml:"complete_finished_rentals"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Kafka
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Kafka.Brokers = splitCSV(val)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Payment gateways
	if val := os.Getenv("ESEWA_SECRET_KEY"); val != "" {
		c.Payment.Esewa.SecretKey = val
	}
	if val := os.Getenv("ESEWA_PRODUCT_CODE"); val != "" {
		c.Payment.Esewa.ProductCode = val
	}
	if val := os.Getenv("KHALTI_SECRET_KEY"); val != "" {
		c.Payment.Khalti.SecretKey = val
	}

	// Notifications
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Notify.SendGridAPIKey = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Notify.FirebaseCredentials = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Notify.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Notify.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Notify.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Notify.SMTP.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.HealthPort < 0 || c.Server.HealthPort > 65535 {
		return fmt.Errorf("invalid health port: %d", c.Server.HealthPort)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Draft store
	if c.Draft.Backend == "" {
		c.Draft.Backend = "redis"
	}
	if c.Draft.Backend != "redis" && c.Draft.Backend != "memory" {
		return fmt.Errorf("unsupported draft backend: %s", c.Draft.Backend)
	}
	if c.Draft.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required for the redis draft backend")
	}
	if c.Draft.TTLMinutes == 0 {
		c.Draft.TTLMinutes = 120
	}

	// eSewa defaults point at the UAT environment
	if c.Payment.Esewa.SecretKey == "" {
		return fmt.Errorf("eSewa secret key is required")
	}
	if c.Payment.Esewa.ProductCode == "" {
		c.Payment.Esewa.ProductCode = "EPAYTEST"
	}
	if c.Payment.Esewa.FormURL == "" {
		c.Payment.Esewa.FormURL = "https://rc-epay.esewa.com.np/api/epay/main/v2/form"
	}
	if c.Payment.Esewa.SuccessURL == "" {
		c.Payment.Esewa.SuccessURL = strings.TrimRight(c.Server.PublicURL, "/") + "/payment/esewa/success"
	}
	if c.Payment.Esewa.FailureURL == "" {
		c.Payment.Esewa.FailureURL = strings.TrimRight(c.Server.PublicURL, "/") + "/payment/esewa/failure"
	}

	if c.Payment.Khalti.SecretKey == "" {
		return fmt.Errorf("Khalti secret key is required")
	}
	if c.Payment.Khalti.BaseURL == "" {
		c.Payment.Khalti.BaseURL = "https://dev.khalti.com/api/v2"
	}
	if c.Payment.Khalti.ReturnURL == "" {
		c.Payment.Khalti.ReturnURL = strings.TrimRight(c.Server.PublicURL, "/") + "/payment/khalti/return"
	}
	if c.Payment.Khalti.WebsiteURL == "" {
		c.Payment.Khalti.WebsiteURL = c.Server.PublicURL
	}
	if c.Payment.Khalti.TimeoutSeconds == 0 {
		c.Payment.Khalti.TimeoutSeconds = 15
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "rental.booking.events"
	}
	if c.Kafka.Buffer == 0 {
		c.Kafka.Buffer = 256
	}

	if c.Notify.FromName == "" {
		c.Notify.FromName = "WheelHub"
	}
	if c.Notify.SMTP.Host != "" && c.Notify.SMTP.Port == 0 {
		c.Notify.SMTP.Port = 587
	}

	// Scheduler defaults
	if c.Scheduler.ActivateStartedRentals == "" {
		c.Scheduler.ActivateStartedRentals = "0 5 0 * * *" // 00:05 UTC
	}
	if c.Scheduler.CompleteFinishedRentals == "" {
		c.Scheduler.CompleteFinishedRentals = "0 15 0 * * *" // 00:15 UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetHealthAddress returns the gRPC health server address
func (c *Config) GetHealthAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HealthPort)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
