// Package client implements the HTTP client for the moodctl CLI to
// communicate with the moodmail API server, with methods for dispatching
// mood notifications, single template sends, and template management.
package client
