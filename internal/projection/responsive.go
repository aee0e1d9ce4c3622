// Package projection resolves per-breakpoint values and typed style records
// for the active breakpoint.
package projection

import "github.com/alexisbeaulieu97/themekit/internal/tokens"

// Responsive holds per-breakpoint overrides plus an optional default.
// Values are created per call and never shared, so the zero value is ready
// to use and At/Or return modified copies.
type Responsive[T any] struct {
	Values     map[string]T
	Default    T
	HasDefault bool
}

// Static returns a Responsive with only a default value.
func Static[T any](v T) Responsive[T] {
	return Responsive[T]{Default: v, HasDefault: true}
}

// At returns a copy with an override for breakpoint name.
func (r Responsive[T]) At(name string, v T) Responsive[T] {
	values := make(map[string]T, len(r.Values)+1)
	for k, existing := range r.Values {
		values[k] = existing
	}
	values[name] = v
	r.Values = values
	return r
}

// Or returns a copy with v as the default.
func (r Responsive[T]) Or(v T) Responsive[T] {
	r.Default = v
	r.HasDefault = true
	return r
}

// IsZero reports whether r holds neither overrides nor a default.
func (r Responsive[T]) IsZero() bool {
	return len(r.Values) == 0 && !r.HasDefault
}

// Project resolves r at the active breakpoint. Overrides cascade upward, so
// the search walks from active down to the smallest breakpoint and takes the
// first explicit entry. Failing that it uses the default, and failing that
// the entry of the smallest breakpoint that has one. An active name missing
// from table is treated as the smallest breakpoint. The boolean is false
// when r has no usable value.
func Project[T any](r Responsive[T], active string, table tokens.BreakpointTable) (T, bool) {
	idx := table.Index(active)
	if idx < 0 {
		idx = 0
	}
	if len(table) > 0 {
		for i := idx; i >= 0; i-- {
			if v, ok := r.Values[table[i].Name]; ok {
				return v, true
			}
		}
	}
	if r.HasDefault {
		return r.Default, true
	}
	for i := idx + 1; i < len(table); i++ {
		if v, ok := r.Values[table[i].Name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
