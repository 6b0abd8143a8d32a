// Package validator renders schema nodes as express-validator chains and
// request sanitizers.
package validator

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Rifhice/paxada/ir"
)

// chains renders the chain list of a single node. Objects and refs have no
// chain of their own.
type chains struct{}

func (chains) VisitString(s *ir.String) []string   { return []string{StringChain(s)} }
func (chains) VisitDate(d *ir.Date) []string       { return []string{DateChain(d)} }
func (chains) VisitNumber(n *ir.Number) []string   { return []string{NumberChain(n)} }
func (chains) VisitBoolean(b *ir.Boolean) []string { return []string{BooleanChain(b)} }
func (chains) VisitArray(a *ir.Array) []string     { return ArrayChains(a) }
func (chains) VisitObject(*ir.Object) []string     { return nil }
func (chains) VisitRef(*ir.Ref) []string           { return nil }

// Chains returns the chains for v: one for a scalar, two for an array (the
// array itself, then its items), none for objects and refs.
func Chains(v ir.Variable) []string {
	return ir.Match[[]string](v, chains{})
}

func optional(required bool) string {
	if required {
		return ""
	}
	return ".optional()"
}

func StringChain(s *ir.String) string {
	var b strings.Builder
	b.WriteString(optional(s.Required))
	b.WriteString(".isString().trim().not().isEmpty()")
	if len(s.Enum) > 0 {
		b.WriteString(".isIn(" + literal(s.Enum) + ")")
	}
	if s.Pattern != "" {
		b.WriteString(".matches(" + literal(s.Pattern) + ")")
	}
	if s.MinLength != nil || s.MaxLength != nil {
		var opts []string
		if s.MinLength != nil {
			opts = append(opts, "min: "+strconv.Itoa(*s.MinLength))
		}
		if s.MaxLength != nil {
			opts = append(opts, "max: "+strconv.Itoa(*s.MaxLength))
		}
		b.WriteString(".isLength({ " + strings.Join(opts, ", ") + " })")
	}
	return b.String()
}

// DateChain is the string chain followed by a date check.
func DateChain(d *ir.Date) string {
	return StringChain(&ir.String{Common: d.Common}) + ".isDate()"
}

// NumberChain checks bounds in a single custom validator, in the order
// exclusiveMinimum, exclusiveMaximum, minimum, maximum, multipleOf.
func NumberChain(n *ir.Number) string {
	chain := optional(n.Required) + ".isNumeric()"
	var conds []string
	if n.ExclusiveMinimum != nil {
		conds = append(conds, "value > "+number(*n.ExclusiveMinimum))
	}
	if n.ExclusiveMaximum != nil {
		conds = append(conds, "value < "+number(*n.ExclusiveMaximum))
	}
	if n.Minimum != nil {
		conds = append(conds, "value >= "+number(*n.Minimum))
	}
	if n.Maximum != nil {
		conds = append(conds, "value <= "+number(*n.Maximum))
	}
	if n.MultipleOf != nil {
		conds = append(conds, "value % "+number(*n.MultipleOf)+" === 0")
	}
	if len(conds) > 0 {
		chain += ".custom((value: number) => " + strings.Join(conds, "&&") + ")"
	}
	return chain
}

func BooleanChain(b *ir.Boolean) string {
	return optional(b.Required) + ".isBoolean()"
}

// ArrayChains returns the array chain and the items chain. Items are always
// validated as required; only the array honors its own optionality.
// Items that are arrays or objects have no flat chain and yield only the
// array chain.
func ArrayChains(a *ir.Array) []string {
	out := []string{optional(a.Required) + ".isArray()"}
	if items := Chains(forceRequired(a.Items)); len(items) > 0 {
		out = append(out, items[0])
	}
	return out
}

// forceRequired returns a shallow copy of v marked required. Objects and
// refs have no chain and are returned as is.
func forceRequired(v ir.Variable) ir.Variable {
	return ir.Match[ir.Variable](v, required{})
}

type required struct{}

func (required) VisitString(s *ir.String) ir.Variable {
	c := *s
	c.Required = true
	return &c
}

func (required) VisitDate(d *ir.Date) ir.Variable {
	c := *d
	c.Required = true
	return &c
}

func (required) VisitNumber(n *ir.Number) ir.Variable {
	c := *n
	c.Required = true
	return &c
}

func (required) VisitBoolean(b *ir.Boolean) ir.Variable {
	c := *b
	c.Required = true
	return &c
}

func (required) VisitArray(a *ir.Array) ir.Variable {
	c := *a
	c.Required = true
	return &c
}

func (required) VisitObject(o *ir.Object) ir.Variable { return o }
func (required) VisitRef(r *ir.Ref) ir.Variable       { return r }

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func literal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
