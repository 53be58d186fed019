package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/faideww/fish-of-the-day/internal/fish"
	"github.com/joho/godotenv"
)

const (
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

var ErrNoToken = errors.New("no DISCORD_TOKEN in environment")

type Config struct {
	DiscordToken string
	FishbaseURL  string
	StoreKind    string
	JSONPath     string
	DBPath       string
	Criteria     fish.Criteria
	FishEnabled  bool
	MaxAttempts  int
	HTTPTimeout  time.Duration
	PrimeFotd    bool
	LogLevel     string
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	storeKind := loadString("FOTD_STORE", storeJSON)
	if storeKind != storeJSON && storeKind != storeSQLite {
		return nil, fmt.Errorf("FOTD_STORE must be %q or %q, got %q", storeJSON, storeSQLite, storeKind)
	}

	var err error
	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		FishbaseURL:  loadString("FISHBASE_URL", fish.DefaultBaseURL),
		StoreKind:    storeKind,
		JSONPath:     loadString("FOTD_JSON_PATH", "fotd.json"),
		DBPath:       loadString("DB_PATH", "data/fotd.db"),
		LogLevel:     loadString("LOG_LEVEL", "info"),
	}

	bools := []struct {
		key    string
		defVal bool
		dst    *bool
	}{
		{"COMNAME_REQUIRED_FOTD", true, &cfg.Criteria.CommonNameRequiredForFotd},
		{"IMAGE_REQUIRED_FOTD", true, &cfg.Criteria.ImageRequiredForFotd},
		{"COMNAME_REQUIRED_FISH", false, &cfg.Criteria.CommonNameRequiredForRandom},
		{"IMAGE_REQUIRED_FISH", true, &cfg.Criteria.ImageRequiredForRandom},
		{"FISH_ENABLED", true, &cfg.FishEnabled},
		{"PRIME_FOTD", true, &cfg.PrimeFotd},
	}
	for _, b := range bools {
		if *b.dst, err = loadBool(b.key, b.defVal); err != nil {
			return nil, err
		}
	}

	cfg.MaxAttempts, err = loadInt("MAX_ATTEMPTS", 0)
	if err != nil {
		return nil, err
	}
	if cfg.MaxAttempts < 0 {
		return nil, fmt.Errorf("MAX_ATTEMPTS must not be negative")
	}

	timeout, err := loadInt("HTTP_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second

	return cfg, nil
}

func loadString(key, defValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defValue
}

func loadInt(key string, defValue int) (int, error) {
	value := os.Getenv(key)
	if value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	return defValue, nil
}

func loadBool(key string, defValue bool) (bool, error) {
	value := os.Getenv(key)
	if value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, err)
		}
		return b, nil
	}

	return defValue, nil
}
