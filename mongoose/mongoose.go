// Package mongoose renders schema nodes as Mongoose schema definition literals.
package mongoose

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

type renderer struct{}

func (renderer) VisitString(s *ir.String) string   { return String(s) }
func (renderer) VisitDate(d *ir.Date) string       { return Date(d) }
func (renderer) VisitNumber(n *ir.Number) string   { return Number(n) }
func (renderer) VisitBoolean(b *ir.Boolean) string { return Boolean(b) }
func (renderer) VisitArray(a *ir.Array) string     { return Array(a) }
func (renderer) VisitObject(o *ir.Object) string   { return Object(o) }
func (renderer) VisitRef(r *ir.Ref) string         { return Ref(r) }

// Variable renders the definition of any node.
func Variable(v ir.Variable) string {
	return ir.Match[string](v, renderer{})
}

// clauses accumulates ", key: value" fragments behind a type clause.
type clauses struct {
	parts []string
}

func (c *clauses) add(key, value string) {
	c.parts = append(c.parts, key+": "+value)
}

func (c *clauses) flags(common ir.Common) {
	if common.Required {
		c.add("required", "true")
	}
	if common.ReadOnly {
		c.add("immutable", "true")
	}
}

func (c *clauses) String() string {
	return "{ " + strings.Join(c.parts, ", ") + " }"
}

func typed(name string) *clauses {
	c := &clauses{}
	c.add("type", name)
	return c
}

func String(s *ir.String) string {
	c := typed("String")
	if len(s.Enum) > 0 {
		c.add("enum", literal(s.Enum))
	}
	c.flags(s.Common)
	if s.MinLength != nil {
		c.add("minlength", strconv.Itoa(*s.MinLength))
	}
	if s.MaxLength != nil {
		c.add("maxlength", strconv.Itoa(*s.MaxLength))
	}
	if s.Pattern != "" {
		c.add("match", literal(s.Pattern))
	}
	return c.String()
}

// Number translates exclusive bounds to inclusive ones by stepping one unit,
// which is only exact for integers. An exclusive bound replaces the inclusive
// clause of the same key.
func Number(n *ir.Number) string {
	c := typed("Number")
	c.flags(n.Common)
	if n.Maximum != nil && n.ExclusiveMaximum == nil {
		c.add("max", FormatNumber(*n.Maximum))
	}
	if n.Minimum != nil && n.ExclusiveMinimum == nil {
		c.add("min", FormatNumber(*n.Minimum))
	}
	if n.ExclusiveMaximum != nil {
		c.add("max", FormatNumber(*n.ExclusiveMaximum-1))
	}
	if n.ExclusiveMinimum != nil {
		c.add("min", FormatNumber(*n.ExclusiveMinimum+1))
	}
	return c.String()
}

func Boolean(b *ir.Boolean) string {
	c := typed("Boolean")
	c.flags(b.Common)
	return c.String()
}

func Date(d *ir.Date) string {
	c := typed("Date")
	c.flags(d.Common)
	return c.String()
}

// Array flags describe the array itself, not its items.
func Array(a *ir.Array) string {
	c := typed("[" + Variable(a.Items) + "]")
	c.flags(a.Common)
	return c.String()
}

// Object renders nested properties only; required-ness lives on each property.
func Object(o *ir.Object) string {
	c := &clauses{}
	o.Properties.Each(func(key string, v ir.Variable) {
		c.add(key, Variable(v))
	})
	return c.String()
}

// Ref stores the referenced document id.
func Ref(r *ir.Ref) string {
	c := typed("Schema.Types.ObjectId")
	c.add("ref", literal(r.Ref))
	c.flags(r.Common)
	return c.String()
}

// Schema renders an entity root. Composite roots have no Mongoose form; they
// yield an empty string and one diagnostic.
func Schema(s ir.Schema) (string, diag.List) {
	switch n := s.(type) {
	case *ir.Properties:
		fields := make([]string, 0, n.Len())
		n.Each(func(key string, v ir.Variable) {
			fields = append(fields, key+": "+Variable(v))
		})
		return "{" + strings.Join(fields, ",") + "}", nil
	case *ir.Composite:
		d := &diag.Collector{}
		d.Warnf(diag.CodeUnsupportedComposite, "", "%s entity schemas have no persistence rendering", n.Mode)
		return "", d.List()
	}
	return "", nil
}

// FormatNumber renders f without exponent or trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// literal renders v as a JavaScript literal.
func literal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
