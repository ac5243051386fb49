// Package api implements the HTTP server (Gin-based) for the moodmail
// service: request logging and recovery middleware, health and metrics
// endpoints, and registration of notification controllers under /api.
package api
