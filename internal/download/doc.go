// Package download fetches URLs to disk through a retrying HTTP client,
// with optional terminal progress display and optional in-place artwork
// resizing after the fact.
//
// Existing destination files are never overwritten; an interrupted transfer
// removes its partial file before the cancellation is surfaced.
package download
