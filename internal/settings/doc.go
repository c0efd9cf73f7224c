// Package settings persists a small module/session-scoped key-value blob
// as a single JSON file, rewritten whole on every change.
package settings
