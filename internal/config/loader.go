package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const EnvPrefix = "GO_FP_TRANSFER"

type loaderOptions struct {
	fileName    string
	searchPaths []string
}

type LoaderOption func(*loaderOptions)

func WithConfigFileName(name string) LoaderOption {
	return func(o *loaderOptions) {
		o.fileName = name
	}
}

func WithConfigFileSearchPaths(paths ...string) LoaderOption {
	return func(o *loaderOptions) {
		o.searchPaths = append(o.searchPaths, paths...)
	}
}

// Load reads the yaml config file (when present) and the GO_FP_TRANSFER_* environment.
// Environment keys follow the json path, e.g. GO_FP_TRANSFER_DIRECTORY_BASE_URL.
func Load(opts ...LoaderOption) (cfg Config, err error) {
	lOpts := &loaderOptions{fileName: "config"}
	for _, opt := range opts {
		opt(lOpts)
	}
	if len(lOpts.searchPaths) == 0 {
		lOpts.searchPaths = []string{"/config", ".", "./config"}
	}

	v := viper.New()
	v.SetConfigName(lOpts.fileName)
	v.SetConfigType("yaml")
	for _, p := range lOpts.searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys missing from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")
	v.SetDefault("app.name", "go-fp-transfer")
	v.SetDefault("app.http_port", 8080)
	v.SetDefault("app.http_timeout", 30*time.Second)
	v.SetDefault("app.graceful_timeout", 10*time.Second)
	v.SetDefault("app.log_level", "info")

	v.SetDefault("directory.base_url", "http://localhost:5566")
	v.SetDefault("directory.user_id", 1)
	v.SetDefault("directory.retry_count", 0)
	v.SetDefault("directory.retry_wait_time", 100)
	v.SetDefault("directory.timeout", time.Duration(0))

	v.SetDefault("transfer.verification_debounce", DefaultVerificationDebounce)
	v.SetDefault("transfer.reset_delay", DefaultResetDelay)
	v.SetDefault("transfer.lookup_cache_ttl", time.Minute)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("exponential_backoff.max_retries", 5)
	v.SetDefault("exponential_backoff.max_backoff_time", 30*time.Second)
	v.SetDefault("exponential_backoff.backoff_multiplier", 1.5)

	v.SetDefault("new_relic_license_key", "")
}
