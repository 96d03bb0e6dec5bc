// Package stance one-hot encodes a fighter's stance label.
package stance

import "strings"

// Known stance labels.
const (
	Orthodox = "Orthodox"
	Southpaw = "Southpaw"
	Switch   = "Switch"
	Open     = "Open Stance"
)

// Encoding is a one-hot stance vector. Exactly one field is 1.
type Encoding struct {
	Orthodox float64
	Southpaw float64
	Switch   float64
	Open     float64
}

// Sum returns the total of the four fields.
func (e Encoding) Sum() float64 {
	return e.Orthodox + e.Southpaw + e.Switch + e.Open
}

// Label returns the stance label for the set field.
func (e Encoding) Label() string {
	switch {
	case e.Orthodox == 1:
		return Orthodox
	case e.Southpaw == 1:
		return Southpaw
	case e.Switch == 1:
		return Switch
	default:
		return Open
	}
}

// Encode maps label to its one-hot encoding. Matching is case sensitive
// after surrounding whitespace is removed; every other label, including
// the empty string, encodes as Open.
func Encode(label string) Encoding {
	switch strings.TrimSpace(label) {
	case Orthodox:
		return Encoding{Orthodox: 1}
	case Southpaw:
		return Encoding{Southpaw: 1}
	case Switch:
		return Encoding{Switch: 1}
	default:
		return Encoding{Open: 1}
	}
}
