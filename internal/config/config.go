package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the effective project settings. Precedence: environment
// defaults, then the project-level intlgen.yaml, then CLI flags applied by
// the caller.
type Config struct {
	L10nRoot       string
	OutputDir      string
	TemplateLocale string
	Workers        int
	Ignore         []string
	PollInterval   int // seconds, watch mode
	Debounce       int // milliseconds, watch mode
}

// Load resolves the configuration for a project directory. A missing .env or
// intlgen.yaml is not an error; built-in defaults apply.
func Load(projectDir string) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		L10nRoot:       getEnv("INTLGEN_L10N_ROOT", "lib/l10n"),
		OutputDir:      getEnv("INTLGEN_OUTPUT_DIR", "lib/generated"),
		TemplateLocale: getEnv("INTLGEN_TEMPLATE_LOCALE", "en"),
		Workers:        getEnvInt("INTLGEN_WORKERS", 8),
		PollInterval:   getEnvInt("INTLGEN_POLL_INTERVAL", 2),
		Debounce:       getEnvInt("INTLGEN_DEBOUNCE_MS", 500),
	}

	v := viper.New()
	v.SetConfigName("intlgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(projectDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn().Err(err).Msg("Failed to read project config file")
		}
		return cfg
	}
	log.Info().Str("file", v.ConfigFileUsed()).Msg("Loaded project config")

	if v.IsSet("l10n_root") {
		cfg.L10nRoot = v.GetString("l10n_root")
	}
	if v.IsSet("output_dir") {
		cfg.OutputDir = v.GetString("output_dir")
	}
	if v.IsSet("template_locale") {
		cfg.TemplateLocale = v.GetString("template_locale")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("ignore") {
		cfg.Ignore = v.GetStringSlice("ignore")
	}
	if v.IsSet("poll_interval") {
		cfg.PollInterval = v.GetInt("poll_interval")
	}
	if v.IsSet("debounce_ms") {
		cfg.Debounce = v.GetInt("debounce_ms")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
