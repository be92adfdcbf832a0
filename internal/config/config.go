package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Anki  AnkiConfig  `mapstructure:"anki" yaml:"anki" validate:"required"`
	LLM   LLMConfig   `mapstructure:"llm" yaml:"llm" validate:"required"`
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" validate:"required"`
	Log   LogConfig   `mapstructure:"log" yaml:"log" validate:"required"`
}

// AnkiConfig contains the AnkiConnect endpoint and the note layout used for
// every card created by a batch.
type AnkiConfig struct {
	URL              string        `mapstructure:"url" yaml:"url" validate:"required,url"`
	Version          int           `mapstructure:"version" yaml:"version" validate:"required,gt=0"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"required,gt=0"`
	DeckName         string        `mapstructure:"deck_name" yaml:"deck_name" validate:"required"`
	ModelName        string        `mapstructure:"model_name" yaml:"model_name" validate:"required"`
	Fields           FieldsConfig  `mapstructure:"fields" yaml:"fields" validate:"required"`
	Tags             []string      `mapstructure:"tags" yaml:"tags" validate:"dive,required"`
	DefinitionFormat string        `mapstructure:"definition_format" yaml:"definition_format" validate:"definition_format"`
}

// FieldsConfig names the note type's fields that receive the generated content.
type FieldsConfig struct {
	Sentence     string `mapstructure:"sentence" yaml:"sentence" validate:"required"`
	Definition   string `mapstructure:"definition" yaml:"definition" validate:"required,nefield=Sentence"`
	Collocations string `mapstructure:"collocations" yaml:"collocations" validate:"required,nefield=Sentence,nefield=Definition"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider           string  `mapstructure:"provider" yaml:"provider" validate:"required,oneof=gemini anthropic"`
	APIKey             string  `mapstructure:"api_key" yaml:"api_key" validate:"required"`
	ModelName          string  `mapstructure:"model_name" yaml:"model_name" validate:"required"`
	Temperature        float64 `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens          int     `mapstructure:"max_tokens" yaml:"max_tokens" validate:"gt=0"`
	PromptTemplatePath string  `mapstructure:"prompt_template_path" yaml:"prompt_template_path"`
	BaseURL            string  `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`
}

// BatchConfig controls the input file and the pacing of the batch loop.
type BatchConfig struct {
	InputPath string        `mapstructure:"input_path" yaml:"input_path" validate:"required"`
	Delay     time.Duration `mapstructure:"delay" yaml:"delay" validate:"gte=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}
