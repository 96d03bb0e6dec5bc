// Package matchup assembles the Blue/Red feature vector fed to the classifier.
package matchup

import (
	"fmt"

	"github.com/okian/cageside/internal/domain/fighter"
)

// Corner prefixes.
const (
	BluePrefix = "B_"
	RedPrefix  = "R_"
)

// Vector is an ordered feature row. Names[i] labels Values[i].
type Vector struct {
	Names  []string
	Values []float64
}

// Len returns the number of features.
func (v Vector) Len() int { return len(v.Values) }

// Names returns the prefixed feature names for order: every Blue field in
// order, then every Red field in order.
func Names(order fighter.Schema) []string {
	out := make([]string, 0, 2*len(order))
	for _, k := range order {
		out = append(out, BluePrefix+k)
	}
	for _, k := range order {
		out = append(out, RedPrefix+k)
	}
	return out
}

// Build concatenates blue's fields then red's fields in order.
// Either side missing a field in order yields ErrSchemaMismatch.
func Build(blue, red fighter.Attributes, order fighter.Schema) (Vector, error) {
	values := make([]float64, 0, 2*len(order))
	for _, side := range []struct {
		corner string
		attrs  fighter.Attributes
	}{{"blue", blue}, {"red", red}} {
		for _, k := range order {
			v, ok := side.attrs.Get(k)
			if !ok {
				return Vector{}, fmt.Errorf("%w: %s corner missing %q", ErrSchemaMismatch, side.corner, k)
			}
			values = append(values, v)
		}
	}
	return Vector{Names: Names(order), Values: values}, nil
}
