package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Dictionary  DictionaryConfig  `mapstructure:"dictionary"`
	Translation TranslationConfig `mapstructure:"translation"`
	Google      GoogleConfig      `mapstructure:"google"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Favorites   FavoritesConfig   `mapstructure:"favorites"`
	WordOfDay   WordOfDayConfig   `mapstructure:"wotd"`
	Server      ServerConfig      `mapstructure:"server"`
	Templates   TemplatesConfig   `mapstructure:"templates"`
}

type DictionaryConfig struct {
	// Source is either a file path or an http(s) URL of the JSON word list.
	Source         string `mapstructure:"source" validate:"required,dictsource"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type TranslationConfig struct {
	Provider         string        `mapstructure:"provider" validate:"oneof=google openai"`
	BaseURL          string        `mapstructure:"base_url" validate:"required,url"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout"`
	ProbeInterval    time.Duration `mapstructure:"probe_interval"`
	BatchLimit       int           `mapstructure:"batch_limit" validate:"gte=1"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts"`
}

type GoogleConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type StorageConfig struct {
	Driver string            `mapstructure:"driver" validate:"oneof=file sqlite mysql redis memory"`
	File   FileStorageConfig `mapstructure:"file"`
	SQLite SQLiteConfig      `mapstructure:"sqlite"`
}

type FileStorageConfig struct {
	Path string `mapstructure:"path"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type RedisConfig struct {
	Addrs    []string `mapstructure:"addrs" validate:"dive,hostname_port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
}

type FavoritesConfig struct {
	MaxFavorites int `mapstructure:"max_favorites" validate:"gte=1"`
	MaxRecent    int `mapstructure:"max_recent" validate:"gte=1"`
}

type WordOfDayConfig struct {
	HistorySize int `mapstructure:"history_size" validate:"gte=1"`
}

type ServerConfig struct {
	Port            int        `mapstructure:"port"`
	CORS            CORSConfig `mapstructure:"cors"`
	StaticDirectory string     `mapstructure:"static_directory"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TemplatesConfig struct {
	PageTemplate      string `mapstructure:"page_template" validate:"omitempty,file"`
	FavoritesTemplate string `mapstructure:"favorites_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mizodict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dictionary.source", "dictionary.json")
	v.SetDefault("dictionary.cache_directory", filepath.Join("cache", "dictionary"))
	v.SetDefault("translation.provider", "google")
	v.SetDefault("translation.base_url", "http://localhost:5000/api")
	v.SetDefault("translation.probe_timeout", 3*time.Second)
	v.SetDefault("translation.probe_interval", 30*time.Second)
	v.SetDefault("translation.batch_limit", 20)
	v.SetDefault("translation.max_retry_attempts", 2)
	v.SetDefault("google.endpoint", "https://translation.googleapis.com/language/translate/v2")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file.path", filepath.Join("data", "storage.yml"))
	v.SetDefault("storage.sqlite.path", filepath.Join("data", "mizodict.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "mizodict")
	v.SetDefault("database.username", "user")
	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("favorites.max_favorites", 50)
	v.SetDefault("favorites.max_recent", 10)
	v.SetDefault("wotd.history_size", 7)
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:5000"})
	// Templates are optional; embedded templates are used when these are empty
	v.SetDefault("templates.page_template", "")
	v.SetDefault("templates.favorites_template", "")

	// Secrets come from environment variables only (not from config file)
	envBindings := map[string]string{
		"google.api_key":    "GOOGLE_API_KEY",
		"openai.api_key":    "OPENAI_API_KEY",
		"openai.model":      "OPENAI_MODEL",
		"database.password": "DB_PASSWORD",
		"redis.password":    "REDIS_PASSWORD",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration from configFile, or from the default search paths when empty.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
