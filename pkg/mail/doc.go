// Package mail delivers rendered notification emails over SMTP, wrapping
// gomail with sender defaulting, optional TLS verification skip, and
// per-send RFC 5322 Message-ID generation.
package mail
