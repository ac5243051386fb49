// Package apiresponses provides standardized HTTP API response helpers
// (error, not-found, multi-status, etc.) shared between api and
// notification packages without import cycles.
package apiresponses
