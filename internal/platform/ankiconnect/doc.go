// Package ankiconnect is a small client for the AnkiConnect add-on's JSON
// protocol. Every request is a POST of {"action", "version", "params"} and
// every reply is an envelope of {"result", "error"}.
package ankiconnect
