package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string        `validate:"required,url"`
	RedirectBaseURL string        `validate:"required,url"`
	Port            string        `validate:"required"`
	PageSize        int           `validate:"gt=0,lte=60"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	ModalCloseDelay time.Duration `validate:"gte=0"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not read .env file", "error", err)
	}

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "https://www.cheapshark.com/api/1.0"
	}

	redirectBaseURL := os.Getenv("REDIRECT_BASE_URL")
	if redirectBaseURL == "" {
		redirectBaseURL = "https://www.cheapshark.com/redirect"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	pageSize := 12
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PAGE_SIZE %q: %w", v, err)
		}
		pageSize = parsed
	}

	httpTimeout := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	modalCloseDelay := 300 * time.Millisecond
	if v := os.Getenv("MODAL_CLOSE_DELAY"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MODAL_CLOSE_DELAY %q: %w", v, err)
		}
		modalCloseDelay = parsed
	}

	cfg := &Config{
		APIBaseURL:      apiBaseURL,
		RedirectBaseURL: redirectBaseURL,
		Port:            port,
		PageSize:        pageSize,
		HTTPTimeout:     httpTimeout,
		ModalCloseDelay: modalCloseDelay,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
