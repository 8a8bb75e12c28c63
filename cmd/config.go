package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	RedisAddr   string
	LockTTL     time.Duration
	LockRetries int
	LogLevel    string
}

// LoadConfig reads the environment, after merging an optional .env file into it.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "orders")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("LOCK_TTL", 5*time.Second)
	v.SetDefault("LOCK_RETRIES", 20)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBSslMode:   v.GetString("DB_SSLMODE"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		LockTTL:     v.GetDuration("LOCK_TTL"),
		LockRetries: v.GetInt("LOCK_RETRIES"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}

	if cfg.LockTTL <= 0 {
		return Config{}, fmt.Errorf("LOCK_TTL must be positive, got %s", cfg.LockTTL)
	}
	if cfg.LockRetries < 0 {
		return Config{}, fmt.Errorf("LOCK_RETRIES must not be negative, got %d", cfg.LockRetries)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
