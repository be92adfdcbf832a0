package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-anki/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. SCRY_ANKI_DECK_NAME for anki.deck_name.
const EnvPrefix = "SCRY"

// defaultConfigName is looked up in the working directory when no explicit
// config file is given.
const defaultConfigName = "scry-anki"

// ErrValidation is returned (wrapped) when the loaded configuration is invalid.
var ErrValidation = errors.New("config validation failed")

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// An empty path falls back to ./scry-anki.yaml when present.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyProviderDefaults(&cfg.LLM)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// providerKeyEnv names the variable each provider's own SDK reads its key from.
var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// providerModel is the model used when llm.model_name is not set.
var providerModel = map[string]string{
	"gemini":    "gemini-2.0-flash",
	"anthropic": "claude-sonnet-4-20250514",
}

// applyProviderDefaults fills the API key and model from the selected
// provider when they were not configured explicitly.
func applyProviderDefaults(cfg *LLMConfig) {
	if cfg.APIKey == "" {
		if name, ok := providerKeyEnv[cfg.Provider]; ok {
			cfg.APIKey = os.Getenv(name)
		}
	}
	if cfg.ModelName == "" {
		cfg.ModelName = providerModel[cfg.Provider]
	}
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("definition_format", func(fl validator.FieldLevel) bool {
		return domain.ValidDefinitionFormat(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register validation: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("anki.url", "http://localhost:8765")
	v.SetDefault("anki.version", 6)
	v.SetDefault("anki.timeout", 30*time.Second)
	v.SetDefault("anki.deck_name", "Default")
	v.SetDefault("anki.model_name", "Boşluklu")
	v.SetDefault("anki.fields.sentence", "Metin")
	v.SetDefault("anki.fields.definition", "Back Extra")
	v.SetDefault("anki.fields.collocations", "Collocations")
	v.SetDefault("anki.tags", []string{"Gemini_Batch", "C1_Vocab"})
	v.SetDefault("anki.definition_format", "<b>Tanım:</b> %s")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model_name", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.prompt_template_path", "")
	v.SetDefault("llm.base_url", "")

	v.SetDefault("batch.input_path", "input.txt")
	v.SetDefault("batch.delay", 4*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
