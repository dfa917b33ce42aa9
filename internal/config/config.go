package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr           string
		AllowedOrigins string
	}
	Database struct {
		Path string
	}
	Log struct {
		Level  string
		Format string
	}
	Auth struct {
		PasswordEncoder string
		JWTSecret       string
		TokenTTLMinutes int
	}
}

// Origins splits the comma separated allow-list, dropping blanks.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load reads configuration from environment variables and optional config files.
// Variables use the FINANCAS_ prefix, e.g. FINANCAS_DATABASE_PATH.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional; existing variables win

	v := viper.New()
	v.SetEnvPrefix("FINANCAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.allowedorigins", "*")
	v.SetDefault("database.path", "data/financas.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("auth.passwordencoder", "plain")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 60)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Auth.TokenTTLMinutes < 0 {
		return Config{}, fmt.Errorf("auth token ttl must not be negative, got %d", cfg.Auth.TokenTTLMinutes)
	}

	return cfg, nil
}
