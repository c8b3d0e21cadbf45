package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr           = ":8080"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultDatabaseURL    = "recipebook.db"
	defaultMediaDir       = "media"
	defaultMinCookingTime = 1
	defaultMinAmount      = 1
)

// Config carries everything the API binary needs from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	MediaDir    string

	// Validation floors for recipe input.
	MinCookingTime int
	MinAmount      int

	ShoppingListPDF PDFLayout
}

// PDFLayout controls the rendered shopping-list document. All values are
// configurable so long lists never clip against a hard-coded page bound.
type PDFLayout struct {
	Title        string
	FontFamily   string
	TitleSize    float64
	BodySize     float64
	LineHeight   float64
	TopMargin    float64
	LeftMargin   float64
	BottomMargin float64
	PageW        float64
	PageH        float64
}

// DefaultPDFLayout is an A4 portrait layout with the built-in Helvetica font.
func DefaultPDFLayout() PDFLayout {
	return PDFLayout{
		Title:        "Shopping list",
		FontFamily:   "Helvetica",
		TitleSize:    24,
		BodySize:     14,
		LineHeight:   9,
		TopMargin:    20,
		LeftMargin:   20,
		BottomMargin: 20,
		PageW:        210,
		PageH:        297,
	}
}

// Load reads configuration from the environment. A .env file is loaded first
// when present so local development does not need exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getEnv("ADDR", defaultAddr),
		DatabaseURL:     getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		MediaDir:        getEnv("MEDIA_DIR", defaultMediaDir),
		ShoppingListPDF: DefaultPDFLayout(),
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.MinCookingTime, err = parseIntEnv("MIN_COOKING_TIME", defaultMinCookingTime)
	if err != nil {
		return nil, err
	}
	cfg.MinAmount, err = parseIntEnv("MIN_INGREDIENT_AMOUNT", defaultMinAmount)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SHOPPING_LIST_TITLE"); v != "" {
		cfg.ShoppingListPDF.Title = v
	}
	if cfg.ShoppingListPDF.BodySize, err = parseFloatEnv("SHOPPING_LIST_BODY_SIZE", cfg.ShoppingListPDF.BodySize); err != nil {
		return nil, err
	}
	if cfg.ShoppingListPDF.LineHeight, err = parseFloatEnv("SHOPPING_LIST_LINE_HEIGHT", cfg.ShoppingListPDF.LineHeight); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, raw, err)
	}
	return f, nil
}
