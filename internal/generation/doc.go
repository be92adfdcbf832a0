// Package generation turns a vocabulary phrase into card content using an
// external AI/LLM service. It owns the prompt template, the Completer boundary
// that provider adapters (Gemini, Anthropic) implement, and the fallible parse
// step that converts untrusted model output into a domain.ContentRecord.
package generation
