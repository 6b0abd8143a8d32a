// Package tstype renders schema nodes as TypeScript type text.
package tstype

import (
	"fmt"
	"strings"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

// Queue hands out allocated ref names left to right. It is consumed by a
// single rendering call; build a new one per call.
type Queue struct {
	names []string
}

func NewQueue(names []string) *Queue {
	return &Queue{names: append([]string(nil), names...)}
}

// Next consumes the next name, or returns fallback once the queue is empty.
func (q *Queue) Next(fallback string) string {
	if q == nil || len(q.names) == 0 {
		return fallback
	}
	n := q.names[0]
	q.names = q.names[1:]
	return n
}

// Remaining reports how many names were not consumed.
func (q *Queue) Remaining() int {
	if q == nil {
		return 0
	}
	return len(q.names)
}

type renderer struct {
	q *Queue
}

func (r renderer) VisitString(*ir.String) string   { return "string" }
func (r renderer) VisitDate(*ir.Date) string       { return "string" }
func (r renderer) VisitNumber(*ir.Number) string   { return "number" }
func (r renderer) VisitBoolean(*ir.Boolean) string { return "boolean" }

func (r renderer) VisitArray(a *ir.Array) string {
	return "Array<" + ir.Match[string](a.Items, r) + ">"
}

func (r renderer) VisitObject(o *ir.Object) string {
	return r.object(o.Properties)
}

func (r renderer) VisitRef(ref *ir.Ref) string {
	return r.q.Next(ref.Ref)
}

func (r renderer) object(p *ir.Properties) string {
	lines := make([]string, 0, p.Len())
	p.Each(func(key string, v ir.Variable) {
		opt := "?"
		if v.Attrs().Required {
			opt = ""
		}
		lines = append(lines, key+opt+": "+ir.Match[string](v, r))
	})
	return "{" + strings.Join(lines, "\n") + "}"
}

// Variable renders the type of a single node. Ref nodes take the next name
// from refNames and fall back to their target.
func Variable(v ir.Variable, refNames []string) string {
	return ir.Match[string](v, renderer{q: NewQueue(refNames)})
}

// ObjectContent renders an object body: one "key?: type" line per property,
// in declaration order, wrapped in braces.
func ObjectContent(p *ir.Properties, refNames []string) string {
	return renderer{q: NewQueue(refNames)}.object(p)
}

// Interface renders a root schema. allOf members are merged into one body,
// anyOf/oneOf members are joined as a union. Refs cannot be merged into an
// allOf body; each one is reported and skipped.
func Interface(s ir.Schema, refNames []string) (string, diag.List) {
	r := renderer{q: NewQueue(refNames)}
	d := &diag.Collector{}
	switch n := s.(type) {
	case *ir.Properties:
		return r.object(n), nil
	case *ir.Composite:
		if n.Mode == ir.AllOf {
			return r.allOf(n, d), d.List()
		}
		parts := make([]string, 0, len(n.SubSchemas))
		for _, sub := range n.SubSchemas {
			switch m := sub.(type) {
			case *ir.Properties:
				parts = append(parts, r.object(m))
			case *ir.Ref:
				parts = append(parts, r.VisitRef(m))
			}
		}
		return strings.Join(parts, "|"), nil
	}
	return "", nil
}

func (r renderer) allOf(c *ir.Composite, d *diag.Collector) string {
	bodies := make([]string, 0, len(c.SubSchemas))
	for i, sub := range c.SubSchemas {
		switch m := sub.(type) {
		case *ir.Properties:
			body := strings.TrimSuffix(strings.TrimPrefix(r.object(m), "{"), "}")
			if body != "" {
				bodies = append(bodies, body)
			}
		case *ir.Ref:
			d.Warnf(diag.CodeRefInAllOf, fmt.Sprintf("allOf[%d]", i), "ref %q cannot be merged into an interface body; skipped", m.Ref)
		}
	}
	return "{" + strings.Join(bodies, "\n") + "}"
}

// IsUnion reports whether s renders as a union type rather than a body.
func IsUnion(s ir.Schema) bool {
	c, ok := s.(*ir.Composite)
	return ok && c.Mode != ir.AllOf
}
