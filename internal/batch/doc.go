// Package batch drives one pass over a phrase list: for each non-empty line
// it checks the store, generates content when the phrase is new, submits the
// card, and pauses before the next line. Items are processed sequentially on
// the caller's goroutine.
package batch
