package config

import (
	"time"
)

type (
	Config struct {
		App                App                      `json:"app"`
		Directory          HTTPConfiguration        `json:"directory"`
		Transfer           TransferConfig           `json:"transfer"`
		Redis              Redis                    `json:"redis"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`
		NewRelicLicenseKey string                   `json:"new_relic_license_key"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name"`
		LogLevel        string        `json:"log_level"`
	}

	// HTTPConfiguration describes the Account/Transaction Directory REST collaborator.
	HTTPConfiguration struct {
		BaseURL string `json:"base_url"`
		// UserID is the directory user whose session is loaded on start.
		UserID        int           `json:"user_id"`
		RetryCount    int           `json:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout"`
	}

	TransferConfig struct {
		// VerificationDebounce is the input inactivity window before a third-party lookup.
		VerificationDebounce time.Duration `json:"verification_debounce"`
		// ResetDelay is how long the success state is shown before the wizard resets.
		ResetDelay time.Duration `json:"reset_delay"`
		// LookupCacheTTL caches successful third-party lookups, zero disables caching.
		LookupCacheTTL time.Duration `json:"lookup_cache_ttl"`
	}

	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}
)

const (
	DefaultVerificationDebounce = 600 * time.Millisecond
	DefaultResetDelay           = 3 * time.Second
)
