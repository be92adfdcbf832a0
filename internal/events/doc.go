// Package events carries per-item progress out of a batch run.
//
// The batch runner emits one ItemEvent per processed phrase without knowing
// who listens. Handlers registered on the emitter decide what to do with
// them; the CLI uses JSONLinesHandler to write a machine-readable run report.
//
// The primary components are:
// - ItemEvent: the outcome of one phrase
// - EventHandler: interface for components that consume events
// - InMemoryEventEmitter: synchronous fan-out to registered handlers
package events
