package fighter

// RawRecord is a source row keyed by the source's own column names.
type RawRecord map[string]any

// Attributes is the normalized view of one fighter. Values are keyed by
// canonical field name and are always finite.
type Attributes struct {
	Name   string
	ID     string
	Stance string
	Draws  float64

	values map[string]float64
}

// NewAttributes builds Attributes from an explicit value map. The map is copied.
func NewAttributes(name, id string, values map[string]float64) Attributes {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Attributes{Name: name, ID: id, values: cp}
}

// Get returns the value for key and whether it is present.
func (a Attributes) Get(key string) (float64, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value for key, or 0 when absent.
func (a Attributes) Value(key string) float64 {
	return a.values[key]
}

// Len returns the number of populated fields.
func (a Attributes) Len() int { return len(a.values) }

// Values returns a copy of the field map.
func (a Attributes) Values() map[string]float64 {
	cp := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		cp[k] = v
	}
	return cp
}
