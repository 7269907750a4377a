package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Значения по умолчанию для админки (если ADMIN_USER / ADMIN_PASS не заданы)
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "change-this-password"

	DefaultMaxUploadSize int64 = 5 * 1024 * 1024 // 5MB
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`

		// Прокси, которым доверяем X-Forwarded-For. Пусто - IP берётся из соединения.
		TrustedProxies []string `yaml:"trusted_proxies"`
	} `yaml:"server"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	// Уведомления о новых заявках
	Notify struct {
		Email     string `yaml:"email"`      // получатель
		QueueSize int    `yaml:"queue_size"` // ёмкость очереди отправки
	} `yaml:"notify"`

	// Получатель сообщений из контактной формы (/send-email)
	Contact struct {
		Receiver string `yaml:"receiver"`
	} `yaml:"contact"`

	// Единая SMTP-конфигурация для обоих почтовых путей
	Email struct {
		Service  string `yaml:"service"` // gmail, outlook, yahoo ...
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"` // 0: 465 при secure, иначе 587
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		FromName string `yaml:"from_name"`
		Secure   bool   `yaml:"secure"` // implicit TLS (465)
	} `yaml:"email"`

	Store struct {
		Type string `yaml:"type"` // json, postgres
		Path string `yaml:"path"` // For json store
		DSN  string `yaml:"dsn"`  // For postgres store
	} `yaml:"store"`

	Storage struct {
		Type     string `yaml:"type"`      // local
		BasePath string `yaml:"base_path"` // Upload directory
		BaseURL  string `yaml:"base_url"`  // Public URL base
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // Max file size in bytes
	} `yaml:"upload"`

	Web struct {
		PublicDir string `yaml:"public_dir"`
		IndexFile string `yaml:"index_file"`
	} `yaml:"web"`

	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	var cfg Config

	cfg.Server.Port = 3000
	cfg.Server.Env = "production"

	cfg.Admin.Username = DefaultAdminUser
	cfg.Admin.Password = DefaultAdminPassword

	cfg.Store.Type = "json"
	cfg.Store.Path = filepath.Join("data", "submissions.json")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "uploads"
	cfg.Storage.BaseURL = "/uploads"

	cfg.Upload.MaxSize = DefaultMaxUploadSize
	cfg.Notify.QueueSize = 64

	cfg.Web.PublicDir = "public"
	cfg.Web.IndexFile = filepath.Join("public", "index.html")

	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 3

	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 5

	return &cfg
}

// LoadConfig собирает конфигурацию один раз при старте:
// .env -> config.yaml (если есть) -> переменные окружения.
func LoadConfig() (*Config, error) {
	dotenvFile := os.Getenv("DOTENV_FILE")
	if dotenvFile == "" {
		dotenvFile = ".env"
	}
	if _, err := os.Stat(dotenvFile); err == nil {
		if err := godotenv.Load(dotenvFile); err != nil {
			return nil, fmt.Errorf("failed to load dotenv file %s: %w", dotenvFile, err)
		}
	}

	cfg := Default()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if err := loadYAML(configPath, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	envString("HOST", &cfg.Server.Host)
	envString("SERVER_ENV", &cfg.Server.Env)

	envString("ADMIN_USER", &cfg.Admin.Username)
	envString("ADMIN_PASS", &cfg.Admin.Password)

	envString("NOTIFY_EMAIL", &cfg.Notify.Email)
	if err := envInt("NOTIFY_QUEUE_SIZE", &cfg.Notify.QueueSize); err != nil {
		return err
	}
	envList("TRUSTED_PROXIES", &cfg.Server.TrustedProxies)
	envString("CONTACT_RECEIVER_EMAIL", &cfg.Contact.Receiver)

	envString("EMAIL_SERVICE", &cfg.Email.Service)
	envString("EMAIL_HOST", &cfg.Email.Host)
	envString("EMAIL_USER", &cfg.Email.Username)
	envString("EMAIL_PASS", &cfg.Email.Password)
	envString("EMAIL_FROM", &cfg.Email.From)
	envString("EMAIL_FROM_NAME", &cfg.Email.FromName)

	envString("STORE_TYPE", &cfg.Store.Type)
	envString("DATABASE_URL", &cfg.Store.DSN)
	envString("UPLOAD_DIR", &cfg.Storage.BasePath)
	envString("PUBLIC_DIR", &cfg.Web.PublicDir)
	envString("INDEX_FILE", &cfg.Web.IndexFile)
	envString("LOG_FILE", &cfg.Log.File)

	if dataDir, ok := os.LookupEnv("DATA_DIR"); ok && dataDir != "" {
		cfg.Store.Path = filepath.Join(dataDir, "submissions.json")
	}
	envString("STORE_FILE", &cfg.Store.Path)

	if err := envInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := envInt("EMAIL_PORT", &cfg.Email.Port); err != nil {
		return err
	}
	envBool("EMAIL_SECURE", &cfg.Email.Secure)
	if err := envInt64("UPLOAD_MAX_SIZE", &cfg.Upload.MaxSize); err != nil {
		return err
	}
	if err := envFloat("RATE_LIMIT_RPS", &cfg.RateLimit.RPS); err != nil {
		return err
	}
	if err := envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst); err != nil {
		return err
	}

	return nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upload.MaxSize <= 0 {
		return errors.New("upload max size must be positive")
	}
	if c.Notify.QueueSize <= 0 {
		return errors.New("notification queue size must be positive")
	}
	switch c.Store.Type {
	case "json":
		if c.Store.Path == "" {
			return errors.New("store path is required for json store")
		}
	case "postgres":
		if c.Store.DSN == "" {
			return errors.New("DATABASE_URL is required for postgres store")
		}
	default:
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}
	return nil
}

// IsDevelopment - локальная разработка (текстовые логи, debug-режим gin)
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Address возвращает host:port для http.Server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ContactReceiver - получатель контактной формы, по умолчанию NOTIFY_EMAIL
func (c *Config) ContactReceiver() string {
	if c.Contact.Receiver != "" {
		return c.Contact.Receiver
	}
	return c.Notify.Email
}

// Sender - адрес отправителя, по умолчанию SMTP-логин
func (c *Config) Sender() string {
	if c.Email.From != "" {
		return c.Email.From
	}
	return c.Email.Username
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

// envBool: true только для строки "true"
func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v == "true"
	}
}

// envList разбирает список через запятую, пустые элементы пропускаются
func envList(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
