// Package registration holds the account registration form state and the two
// flows that act on it. FormData is the six-field record the user edits,
// ErrorMap is the per-field outcome of the last validation run, Validator
// computes one from the other, and Session owns a FormData/ErrorMap pair while
// running the change and submit handlers. Front ends (terminal prompts, the
// HTML server, the non-interactive CLI) translate their input events into
// Session.Change and Session.Submit calls and render Result values; the
// network boundary is the Submitter interface implemented by pkg/client.
package registration
