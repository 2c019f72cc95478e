package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yungbote/barisense-backend/internal/pkg/logger"
)

const (
	envPrefix      = "BARISENSE"
	configName     = "barisense"
	defaultAppName = "barisense"
)

type Config struct {
	AppName     string
	Version     string
	Environment string
	Port        int

	StoreMode   string
	StorageFile string
	DatabaseDSN string
	RedisAddr   string
	RedisKey    string

	APIKey       string
	APIKeyHeader string
	APIPrefix    string
	AllowOrigins []string

	MetricsEnabled  bool
	OTelEnabled     bool
	OTelEndpoint    string
	OTelInsecure    bool
	OTelSampleRatio float64
	ShutdownSeconds int
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", defaultAppName)
	v.SetDefault("version", "dev")
	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("store_mode", string(StoreModeFile))
	v.SetDefault("storage_file", "data/storage.json")
	v.SetDefault("redis_key", "barisense:document")
	v.SetDefault("api_key_header", "X-API-Key")
	v.SetDefault("api_prefix", "/api/v1")
	v.SetDefault("allow_origins", "*")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_sample_ratio", 1.0)
	v.SetDefault("shutdown_seconds", 10)

	// The exporter endpoint keeps the standard OTel variable name.
	_ = v.BindEnv("otel_endpoint", envPrefix+"_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("otel_insecure", envPrefix+"_OTEL_INSECURE", "OTEL_EXPORTER_OTLP_INSECURE")
	return v
}

// LoadConfig reads defaults, then an optional barisense.{yaml,yml,json} from
// the working directory (or BARISENSE_CONFIG), then BARISENSE_* variables.
func LoadConfig(log *logger.Logger) (Config, error) {
	v := newViper()
	if path := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG")); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Info("Loaded config file", "path", v.ConfigFileUsed())
	}

	cfg := Config{
		AppName:         strings.TrimSpace(v.GetString("app_name")),
		Version:         strings.TrimSpace(v.GetString("version")),
		Environment:     strings.TrimSpace(v.GetString("environment")),
		Port:            v.GetInt("port"),
		StoreMode:       strings.ToLower(strings.TrimSpace(v.GetString("store_mode"))),
		StorageFile:     strings.TrimSpace(v.GetString("storage_file")),
		DatabaseDSN:     strings.TrimSpace(v.GetString("database_dsn")),
		RedisAddr:       strings.TrimSpace(v.GetString("redis_addr")),
		RedisKey:        strings.TrimSpace(v.GetString("redis_key")),
		APIKey:          strings.TrimSpace(v.GetString("api_key")),
		APIKeyHeader:    strings.TrimSpace(v.GetString("api_key_header")),
		APIPrefix:       strings.TrimSpace(v.GetString("api_prefix")),
		AllowOrigins:    splitList(v.GetStringSlice("allow_origins")),
		MetricsEnabled:  v.GetBool("metrics_enabled"),
		OTelEnabled:     v.GetBool("otel_enabled"),
		OTelEndpoint:    strings.TrimSpace(v.GetString("otel_endpoint")),
		OTelInsecure:    v.GetBool("otel_insecure"),
		OTelSampleRatio: v.GetFloat64("otel_sample_ratio"),
		ShutdownSeconds: v.GetInt("shutdown_seconds"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	log.Debug("Config loaded",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store_mode", cfg.StoreMode,
		"storage_file", cfg.StorageFile,
		"redis_addr", cfg.RedisAddr,
		"api_key", cfg.APIKey,
		"api_prefix", cfg.APIPrefix,
		"allow_origins", cfg.AllowOrigins,
		"metrics_enabled", cfg.MetricsEnabled,
		"otel_enabled", cfg.OTelEnabled,
	)
	return cfg, nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
