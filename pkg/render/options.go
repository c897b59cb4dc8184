package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-accountform/pkg/registration"
)

// RenderOptions describe per-request data that renderers use to reflect the
// session without mutating the form model.
type RenderOptions struct {
	// Values pre-populates the controls. Values are echoed exactly as typed.
	Values registration.FormData
	// Errors holds the inline messages from the last validation pass. Fields
	// absent from the map render without error chrome.
	Errors registration.ErrorMap
	// Notice is the success or failure banner produced by the last network
	// submission, if any.
	Notice *registration.Notice
	// Hidden carries extra inputs (session correlation id) posted back with
	// the form.
	Hidden map[string]string
	// Theme supplies CSS variables and asset resolution for the page chrome.
	Theme *theme.RendererConfig
}
