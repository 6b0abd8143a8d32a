package ir

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties is an insertion-ordered set of named Variables. Used both as an
// object node's properties and as a top-level ObjectSchema.
type Properties struct {
	m *orderedmap.OrderedMap[string, Variable]
}

// Prop is a key/value pair used to build Properties in declaration order.
type Prop struct {
	Key   string
	Value Variable
}

// P is shorthand for Prop{key, v}.
func P(key string, v Variable) Prop { return Prop{Key: key, Value: v} }

// NewProperties builds Properties from pairs. A repeated key keeps its first
// position and takes the last value.
func NewProperties(pairs ...Prop) *Properties {
	p := &Properties{m: orderedmap.New[string, Variable]()}
	for _, kv := range pairs {
		p.m.Set(kv.Key, kv.Value)
	}
	return p
}

// Set inserts or replaces a property.
func (p *Properties) Set(key string, v Variable) {
	if p.m == nil {
		p.m = orderedmap.New[string, Variable]()
	}
	p.m.Set(key, v)
}

func (p *Properties) Get(key string) (Variable, bool) {
	if p == nil || p.m == nil {
		return nil, false
	}
	return p.m.Get(key)
}

func (p *Properties) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the property names in declaration order.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, p.Len())
	p.Each(func(k string, _ Variable) { keys = append(keys, k) })
	return keys
}

// Each visits properties in declaration order.
func (p *Properties) Each(fn func(key string, v Variable)) {
	if p == nil || p.m == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// HasObject reports whether any direct property is an object node.
func (p *Properties) HasObject() bool {
	found := false
	p.Each(func(_ string, v Variable) {
		if _, ok := v.(*Object); ok {
			found = true
		}
	})
	return found
}

// Float returns a pointer to f, for numeric bounds.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, for length bounds.
func Int(i int) *int { return &i }
