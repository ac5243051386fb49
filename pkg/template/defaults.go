package template

import (
	_ "embed"
)

// Known template names. MoodShared is the fixed group announcement rendered
// by the dispatch fan-out; the others serve the single-send path.
const (
	MoodShared = "moodShared"
	Welcome    = "welcome"
	Reminder   = "reminder"
)

var (
	//go:embed templates/moodShared.html
	moodSharedDefault string
	//go:embed templates/welcome.html
	welcomeDefault string
)

// defaults maps every recognized template name to its compiled-in content.
// The embedded files are the canonical copies; the backing store is seeded
// from the same files so both resolution paths render identically.
//
// Reminder ships without a compiled-in copy and is only available while the
// backing store serves it.
var defaults = map[string]string{
	MoodShared: moodSharedDefault,
	Welcome:    welcomeDefault,
	Reminder:   "",
}
