// Package notification exposes the mood notification REST endpoints: group
// dispatch with per-recipient fan-out, single sends, template validation
// and listing, and the template cache reset hook.
package notification
