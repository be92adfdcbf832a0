// Package redact strips credentials from strings before they are logged.
// LLM SDK errors can echo request URLs and headers, so every error that
// reaches the log passes through Error first.
package redact

import (
	"regexp"
	"strings"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// minSecretLength keeps short, common strings from being registered as secrets.
const minSecretLength = 8

// Precompiled regex patterns
var (
	// Named credentials: api_key=..., "x-api-key": "...", token: ...
	namedKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|x-goog-api-key|x-api-key|token|secret|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Query-string keys as used by the Gemini REST endpoint (?key=...).
	queryKeyRegex = regexp.MustCompile(`([?&]key=)[^&\s"']+`)

	// Provider key shapes.
	googleKeyRegex    = regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)
	anthropicKeyRegex = regexp.MustCompile(`sk-ant-[A-Za-z0-9_\-]{8,}`)

	bearerRegex = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._\-~+/]+=*`)

	mu      sync.RWMutex
	secrets []string
)

// AddSecret registers an exact value (such as the configured API key) that
// must never appear in redacted output.
func AddSecret(secret string) {
	if len(secret) < minSecretLength {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	for _, s := range secrets {
		if s == secret {
			return
		}
	}
	secrets = append(secrets, secret)
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	result := input
	for _, s := range secrets {
		result = strings.ReplaceAll(result, s, RedactionPlaceholder)
	}
	mu.RUnlock()

	result = namedKeyRegex.ReplaceAllString(result, "${1}${2}"+RedactedCredentialPlaceholder)
	result = queryKeyRegex.ReplaceAllString(result, "${1}"+RedactedKeyPlaceholder)
	result = googleKeyRegex.ReplaceAllString(result, RedactedKeyPlaceholder)
	result = anthropicKeyRegex.ReplaceAllString(result, RedactedKeyPlaceholder)
	result = bearerRegex.ReplaceAllString(result, "${1}"+RedactedCredentialPlaceholder)

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
