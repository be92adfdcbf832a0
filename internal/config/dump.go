package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// maskedKey hides all but the last four characters of a secret.
func maskedKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// MarshalRedactedYAML renders the effective configuration as YAML with the
// API key masked, in the same layout accepted by a config file.
func (c Config) MarshalRedactedYAML() ([]byte, error) {
	if c.LLM.APIKey != "" {
		c.LLM.APIKey = maskedKey(c.LLM.APIKey)
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}
