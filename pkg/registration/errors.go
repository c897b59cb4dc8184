package registration

import "errors"

// ErrSubmitInFlight is reported when Submit is called while a previous attempt
// on the same session is still waiting for the backend.
var ErrSubmitInFlight = errors.New("registration: submission already in flight")

// ErrorMap maps failing fields to a human-readable message. An empty map means
// the form is valid. Each validation run produces a fresh map; maps are never
// merged.
type ErrorMap map[Field]string

// Empty reports whether the map has no entries.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Has reports whether field currently fails validation.
func (m ErrorMap) Has(field Field) bool {
	_, ok := m[field]
	return ok
}

// Message returns the message attached to field, or "".
func (m ErrorMap) Message(field Field) string {
	return m[field]
}

// Fields returns the failing fields in display order.
func (m ErrorMap) Fields() []Field {
	if len(m) == 0 {
		return nil
	}
	out := make([]Field, 0, len(m))
	for _, field := range fieldOrder {
		if _, ok := m[field]; ok {
			out = append(out, field)
		}
	}
	return out
}

// Clone returns an independent copy. The clone of an empty map is an empty,
// non-nil map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for field, message := range m {
		out[field] = message
	}
	return out
}

