// Package domain contains the core entities of the vocabulary card pipeline:
// the canonical tag derived from a phrase, the content record authored by the
// language model, and the note submitted to the flashcard store. It is
// independent of any LLM provider or transport.
package domain
