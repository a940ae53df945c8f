package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"session"`

	Cashfree struct {
		AppID         string `yaml:"app_id"`
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
		BaseURL       string `yaml:"base_url"` // https://api.cashfree.com/pg or sandbox
	} `yaml:"cashfree"`

	PayPal struct {
		ClientID string `yaml:"client_id"`
		Secret   string `yaml:"secret"`
		BaseURL  string `yaml:"base_url"` // https://api-m.paypal.com or sandbox
	} `yaml:"paypal"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		AdminEmail   string `yaml:"admin_email"`
	} `yaml:"email"`

	Exchange struct {
		APIBaseURL string `yaml:"api_base_url"`
		TTLHours   int    `yaml:"ttl_hours"`
	} `yaml:"exchange"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case the
// whole configuration comes from environment variables (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Session.Secret = os.Getenv("SESSION_SECRET")
	cfg.Session.TTLMinutes = 60 * 24

	cfg.Cashfree.AppID = os.Getenv("CASHFREE_APP_ID")
	cfg.Cashfree.SecretKey = os.Getenv("CASHFREE_SECRET_KEY")
	cfg.Cashfree.WebhookSecret = os.Getenv("CASHFREE_WEBHOOK_SECRET")
	cfg.Cashfree.BaseURL = os.Getenv("CASHFREE_BASE_URL")
	cfg.PayPal.ClientID = os.Getenv("PAYPAL_CLIENT_ID")
	cfg.PayPal.Secret = os.Getenv("PAYPAL_SECRET")
	cfg.PayPal.BaseURL = os.Getenv("PAYPAL_BASE_URL")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")
	cfg.Email.AdminEmail = os.Getenv("ADMIN_ALERT_EMAIL")

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "lb_session"
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 60 * 24
	}
	if cfg.Cashfree.BaseURL == "" {
		cfg.Cashfree.BaseURL = "https://api.cashfree.com/pg"
	}
	if cfg.PayPal.BaseURL == "" {
		cfg.PayPal.BaseURL = "https://api-m.paypal.com"
	}
	if cfg.Exchange.APIBaseURL == "" {
		cfg.Exchange.APIBaseURL = "https://open.er-api.com/v6"
	}
	if cfg.Exchange.TTLHours == 0 {
		cfg.Exchange.TTLHours = 24
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
