package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     int    `env:"DB_PORT,     default=5432"`
	User     string `env:"DB_USER,     default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,     default=todo_app"`
	SSLMode  string `env:"DB_SSLMODE,  default=disable"`
}

// DSN renders the postgres connection string for the database driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// IsProduction reports whether the service runs in production mode; error
// responses hide internal detail when it does.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
