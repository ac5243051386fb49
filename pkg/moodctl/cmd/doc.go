// Package cmd implements the cobra command tree for the moodctl CLI,
// including subcommands for dispatching mood notifications, single template
// sends, template management, and shell completion.
package cmd
