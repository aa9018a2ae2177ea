package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "PETADOPT"

type App struct {
	Name string `mapstructure:"name"`
}

type Server struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Storage struct {
	// Driver: memory | postgres | sqlite
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTP struct {
	// RateLimitRPS <= 0 desactiva el limitador.
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

type Config struct {
	App     App     `mapstructure:"app"`
	Server  Server  `mapstructure:"server"`
	Storage Storage `mapstructure:"storage"`
	Log     Log     `mapstructure:"log"`
	HTTP    HTTP    `mapstructure:"http"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pet-adoption")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("http.rate_limit_rps", 50)
	v.SetDefault("http.rate_limit_burst", 100)
	v.SetDefault("http.cors_allowed_origins", "*")
}

// Nombres de env heredados del deploy anterior; PETADOPT_* tiene prioridad.
var legacyEnv = map[string]string{
	"storage.dsn": "DB_DSN",
	"log.level":   "LOG_LEVEL",
	"log.format":  "LOG_FORMAT",
	"app.name":    "APP_NAME",
}

// Load lee config: defaults < archivo (opcional) < env.
// configFile vacío busca config.yaml en el directorio actual; que no exista no es error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+envKey(key), legacy); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// PORT (estilo PaaS) pisa server.addr salvo que venga PETADOPT_SERVER_ADDR.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if _, explicit := os.LookupEnv(EnvPrefix + "_SERVER_ADDR"); !explicit {
			cfg.Server.Addr = ":" + port
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "memory":
	case "postgres", "sqlite":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	return nil
}

func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
