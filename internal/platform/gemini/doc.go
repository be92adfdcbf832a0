// Package gemini provides an implementation of the generation.Completer interface
// that uses Google's Gemini API.
//
// This package is an infrastructure adapter: it sends one prompt, concatenates
// the text parts of the first candidate and returns them untouched. Fence
// stripping and JSON parsing stay in the generation package so malformed
// output is handled the same way for every provider.
//
// Safety blocks (a SAFETY finish reason or a blocked prompt) are reported as
// generation.ErrContentBlocked; empty answers as generation.ErrInvalidResponse.
// Transport and API errors are returned wrapped and are not retried.
package gemini
