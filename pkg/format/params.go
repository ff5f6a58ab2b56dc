// Ordered command parameters
//
// Copyright (C) 2026  Gscrib Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package format

import "strings"

// Params is an ordered, case-normalized mapping from parameter
// letters to values. Keys keep their insertion order, except that
// the known axis letters X, Y and Z are always emitted first. Values
// are either numbers or preformatted strings.
type Params struct {
	keys   []string
	values map[string]interface{}
}

// NewParams creates an empty parameter mapping
func NewParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// Set adds or updates a parameter. Names are normalized to upper
// case; updating an existing name keeps its original position.
func (p *Params) Set(name string, value interface{}) *Params {
	key := strings.ToUpper(name)

	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
	return p
}

// Get returns the value of a parameter by name
func (p *Params) Get(name string) (interface{}, bool) {
	value, ok := p.values[strings.ToUpper(name)]
	return value, ok
}

// Has reports whether a parameter is present
func (p *Params) Has(name string) bool {
	_, ok := p.values[strings.ToUpper(name)]
	return ok
}

// Len returns the number of parameters
func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the parameter names with the axis letters first,
// then the remaining names in insertion order
func (p *Params) Keys() []string {
	ordered := make([]string, 0, len(p.keys))

	for _, axis := range []string{"X", "Y", "Z"} {
		if _, ok := p.values[axis]; ok {
			ordered = append(ordered, axis)
		}
	}

	for _, key := range p.keys {
		if key != "X" && key != "Y" && key != "Z" {
			ordered = append(ordered, key)
		}
	}

	return ordered
}

// Merge copies every parameter of other into p, preserving the
// insertion order of other
func (p *Params) Merge(other *Params) *Params {
	if other == nil {
		return p
	}

	for _, key := range other.keys {
		p.Set(key, other.values[key])
	}

	return p
}

// Clone returns an independent copy of the parameters
func (p *Params) Clone() *Params {
	clone := NewParams()
	return clone.Merge(p)
}
