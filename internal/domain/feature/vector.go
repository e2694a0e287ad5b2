package feature

// Vector is one input row aligned to a Schema. Every schema column is present;
// unset columns hold 0.
type Vector struct {
	schema Schema
	values []float64
}

// NewVector returns a zero-initialised vector over the schema.
func NewVector(schema Schema) Vector {
	return Vector{schema: schema, values: make([]float64, schema.Len())}
}

// Schema returns the schema the vector is aligned to.
func (v Vector) Schema() Schema { return v.schema }

// Set writes the column if it exists and reports whether it did.
func (v Vector) Set(name string, value float64) bool {
	i := v.schema.Index(name)
	if i < 0 {
		return false
	}
	v.values[i] = value
	return true
}

// Get returns the column value and whether the column exists.
func (v Vector) Get(name string) (float64, bool) {
	i := v.schema.Index(name)
	if i < 0 {
		return 0, false
	}
	return v.values[i], true
}

// Values returns a copy of the values in schema order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

// At returns the value at schema position i.
func (v Vector) At(i int) float64 { return v.values[i] }

// Len returns the number of columns.
func (v Vector) Len() int { return len(v.values) }

// Map returns the vector as a column-name keyed map.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.values))
	for i, c := range v.schema.columns {
		m[c] = v.values[i]
	}
	return m
}
