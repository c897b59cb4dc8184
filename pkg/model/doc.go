// Package model defines the renderer-facing description of the registration
// form: one FormModel with an ordered list of Fields. Each Field carries the
// control kind (text input or select), the HTML input type, label,
// placeholder, and for selects the option list including the empty
// "unselected" entry. UI schema overlays (pkg/uischema) adjust labels and copy
// through a Decorator; renderers never consult registration rules directly.
package model
