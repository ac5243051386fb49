// Package dispatch turns one notification event into a batch of rendered,
// individually delivered emails. Each recipient is processed by its own
// unit of work with full failure isolation, and the settled outcomes are
// folded into a single report with a success/partial/failed classification.
package dispatch
