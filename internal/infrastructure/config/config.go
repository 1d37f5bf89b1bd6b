package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Store  StoreConfig
	JWT    JWTConfig
	Admin  AdminConfig
	SMTP   SMTPConfig
	HTTP   HTTPConfig
	Images ImagesConfig
	Site   SiteConfig
	Log    LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// StoreConfig holds the flat-file store paths
type StoreConfig struct {
	ProductsFile string
	OrdersFile   string
}

// JWTConfig holds token settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminConfig holds the single static admin credential.
// Password may be either plain text or a bcrypt hash ($2a$/$2b$ prefix).
type AdminConfig struct {
	User     string
	Password string
}

// SMTPConfig holds mail transport settings. Order notification is enabled
// only when host and user are both set.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SalesTo  string
}

// Enabled reports whether the notification transport is configured
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != ""
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	LoginRateLimit   int
	LoginRateWindow  time.Duration
	TrustedProxies   []string
}

// ImagesConfig holds image pipeline settings
type ImagesConfig struct {
	Dir        string
	MaxWidth   int
	Quality    int
	Processing bool
}

// SiteConfig holds the public site settings used for sitemap generation
type SiteConfig struct {
	BaseURL string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with MB_ prefix (e.g., MB_JWT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("MB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// booleans cannot express "unset", so their defaults live here
	v.SetDefault("images.processing", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Store: StoreConfig{
			ProductsFile: v.GetString("store.products_file"),
			OrdersFile:   v.GetString("store.orders_file"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Admin: AdminConfig{
			User:     v.GetString("admin.user"),
			Password: v.GetString("admin.password"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
			SalesTo:  v.GetString("smtp.sales_to"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			LoginRateLimit:   v.GetInt("http.login_rate_limit"),
			LoginRateWindow:  v.GetDuration("http.login_rate_window"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Images: ImagesConfig{
			Dir:        v.GetString("images.dir"),
			MaxWidth:   v.GetInt("images.max_width"),
			Quality:    v.GetInt("images.quality"),
			Processing: v.GetBool("images.processing"),
		},
		Site: SiteConfig{
			BaseURL: v.GetString("site.base_url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.Store.ProductsFile == "" {
		cfg.Store.ProductsFile = "data/productos.json"
	}
	if cfg.Store.OrdersFile == "" {
		cfg.Store.OrdersFile = "data/pedidos.json"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "secret_key"
	}
	if cfg.JWT.Expiration == 0 {
		cfg.JWT.Expiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "storefront"
	}
	if cfg.Admin.User == "" {
		cfg.Admin.User = "admin"
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "password"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.SalesTo == "" {
		cfg.SMTP.SalesTo = "ventas@mbsolutionscr.com"
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		// Images arrive base64-encoded inside JSON bodies
		cfg.HTTP.MaxBodySize = 10 << 20
	}
	if cfg.HTTP.LoginRateLimit == 0 {
		cfg.HTTP.LoginRateLimit = 10
	}
	if cfg.HTTP.LoginRateWindow == 0 {
		cfg.HTTP.LoginRateWindow = 15 * time.Minute
	}
	if cfg.Images.Dir == "" {
		cfg.Images.Dir = "data/images"
	}
	if cfg.Images.MaxWidth == 0 {
		cfg.Images.MaxWidth = 800
	}
	if cfg.Images.Quality == 0 {
		cfg.Images.Quality = 80
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "http://localhost:" + cfg.App.Port
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.App.Env == "production" && c.JWT.Secret == "secret_key" {
		return fmt.Errorf("jwt.secret must be changed from the default in production")
	}
	if _, err := url.Parse(c.Site.BaseURL); err != nil {
		return fmt.Errorf("site.base_url is not a valid URL: %w", err)
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return fmt.Errorf("images.quality must be between 1 and 100")
	}
	return nil
}
