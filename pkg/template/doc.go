// Package template implements the moodmail templating engine: a total
// renderer over {{name}} variable markers and {{#name}}...{{/name}}
// conditional blocks, and a Store that resolves template names through a
// process-wide cache, an S3 backing store, and compiled-in defaults.
package template
