// Package config provides application-wide configuration loaded from env
// vars, an optional .env file, and an optional config.yaml.
//
// Credentials are the one exception to "safe defaults everywhere": API keys
// are never defaulted and never hardcoded. A missing key is not a startup
// failure either: the provider adapter surfaces it as a ConfigurationError
// at call time, so the binary can run with only one provider configured.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matiasleandrokruk/deepscout/internal/infra/llm"
)

// Transport mode names accepted by the server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds runtime configuration for deepscout.
type Config struct {
	LogLevel  string // log.level, default "info"
	Transport string // server.transport, "stdio" (default) or "http"
	HTTPAddr  string // server.addr, default "0.0.0.0:8080", http mode only

	GeminiAPIKey      string // GEMINI_API_KEY, no default
	GeminiBaseURL     string // gemini.base_url
	PerplexityAPIKey  string // PERPLEXITY_API_KEY, no default
	PerplexityBaseURL string // perplexity.base_url

	ProfilesFile string // profiles.file, optional mode→profile override YAML
}

// Init wires viper: .env file, DEEPSCOUT_* env vars, optional config.yaml.
func Init(cfgFile string) {
	// Load .env file (ignore if not exists).
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("DEEPSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The provider keys keep their conventional names rather than a
	// DEEPSCOUT_ prefix, so existing shell setups keep working.
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")         //nolint:errcheck
	viper.BindEnv("perplexity.api_key", "PERPLEXITY_API_KEY") //nolint:errcheck

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// Load reads configuration from viper, applying defaults for missing values.
// API keys have no default on purpose.
func Load() Config {
	return Config{
		LogLevel:  stringOr("log.level", "info"),
		Transport: stringOr("server.transport", TransportStdio),
		HTTPAddr:  stringOr("server.addr", "0.0.0.0:8080"),

		GeminiAPIKey:      viper.GetString("gemini.api_key"),
		GeminiBaseURL:     stringOr("gemini.base_url", llm.DefaultGeminiBaseURL),
		PerplexityAPIKey:  viper.GetString("perplexity.api_key"),
		PerplexityBaseURL: stringOr("perplexity.base_url", llm.DefaultPerplexityBaseURL),

		ProfilesFile: viper.GetString("profiles.file"),
	}
}

// stringOr returns the viper value for key, or fallback when unset/empty.
func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
