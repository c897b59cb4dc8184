// Package uischema loads presentation overlays for forms and applies them to
// form models. Overlay files are JSON or YAML documents keyed by form id; each
// entry can retitle the form, add a subtitle, relabel the submit button and
// override per-field labels, placeholders and help text. Subtitles and help
// text may carry a small amount of markup, which is sanitised before it
// reaches any renderer.
package uischema
