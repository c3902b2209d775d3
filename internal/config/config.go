package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samvad-hq/ems-client/pkg/httpclient"
	"github.com/spf13/viper"
)

const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the application configuration loaded from env files and environment variables.
type Config struct {
	AppName      string `mapstructure:"app_name"`
	Env          string `mapstructure:"app_env"`
	LogLevel     string `mapstructure:"log_level"`
	APIBase      string `mapstructure:"api_base"`
	OutputFormat string `mapstructure:"output_format"`
}

// Load reads configuration from configs/.env and EMS_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	v.SetEnvPrefix("ems")

	v.SetDefault("app_name", "emsctl")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_base", httpclient.DefaultBaseURL)
	v.SetDefault("output_format", OutputJSON)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBase = cleanPlaceholder(cfg.APIBase, httpclient.DefaultBaseURL)
	if err := ValidateBaseURL(cfg.APIBase); err != nil {
		return nil, err
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	if err := ValidateOutputFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateBaseURL checks that base is an absolute http(s) URL.
func ValidateBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid api_base %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base %q (must be an absolute http or https URL)", base)
	}
	return nil
}

// ValidateOutputFormat accepts json or yaml.
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output_format %q (expected json or yaml)", format)
	}
}

// cleanPlaceholder maps blank and none/null/nil values to def.
func cleanPlaceholder(val, def string) string {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "none", "null", "nil":
		return def
	}
	return strings.TrimSpace(val)
}
