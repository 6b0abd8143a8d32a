// Package refs allocates generic type parameter names for the ref fields of a
// schema. Allocation follows first appearance, depth-first, left to right.
package refs

import (
	"strings"

	"github.com/Rifhice/paxada/ir"
)

// fixedNames overrides sequential letters for some ref counts. Legacy naming
// kept as-is for generated code compatibility.
var fixedNames = map[int][]string{
	3: {"M", "D", "R"},
	4: {"P", "T", "D", "R"},
}

// Count returns the number of ref leaves reachable from s. Array items and
// object properties are descended; ref targets are not. Ref members of allOf
// are not counted because they render no field.
func Count(s ir.Schema) int {
	return ir.MatchSchema[int](s, counter{})
}

// CountVariable counts ref leaves under a single variable.
func CountVariable(v ir.Variable) int {
	return ir.Match[int](v, counter{})
}

// counter counts ref leaves. Composite members are counted through member,
// which knows the composite mode.
type counter struct{}

func (counter) VisitString(*ir.String) int   { return 0 }
func (counter) VisitDate(*ir.Date) int       { return 0 }
func (counter) VisitNumber(*ir.Number) int   { return 0 }
func (counter) VisitBoolean(*ir.Boolean) int { return 0 }
func (counter) VisitRef(*ir.Ref) int         { return 1 }

func (c counter) VisitArray(a *ir.Array) int {
	return ir.Match[int](a.Items, c)
}

func (c counter) VisitObject(o *ir.Object) int {
	return c.VisitObjectSchema(o.Properties)
}

func (c counter) VisitObjectSchema(p *ir.Properties) int {
	total := 0
	p.Each(func(_ string, v ir.Variable) { total += ir.Match[int](v, c) })
	return total
}

func (counter) VisitComposite(comp *ir.Composite) int {
	total := 0
	for _, sub := range comp.SubSchemas {
		total += ir.MatchSub[int](sub, member{mode: comp.Mode})
	}
	return total
}

type member struct {
	mode ir.CompositeMode
}

func (member) VisitObjectSchema(p *ir.Properties) int {
	return counter{}.VisitObjectSchema(p)
}

func (m member) VisitRef(*ir.Ref) int {
	if m.mode == ir.AllOf {
		return 0
	}
	return 1
}

// Names returns one name per ref in s, in traversal order.
func Names(s ir.Schema) []string {
	return NamesFor(Count(s))
}

// NamesFor returns the allocation for n refs.
func NamesFor(n int) []string {
	if fixed, ok := fixedNames[n]; ok {
		return append([]string(nil), fixed...)
	}
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	return names
}

// GenericWithDefault renders the generic parameter list with a default type
// for every allocated name, e.g. "<A = ObjectId,B = ObjectId>". It is empty
// when s has no refs.
func GenericWithDefault(s ir.Schema, defaultType string) string {
	names := Names(s)
	if len(names) == 0 {
		return ""
	}
	params := make([]string, len(names))
	for i, n := range names {
		params[i] = n + " = " + defaultType
	}
	return "<" + strings.Join(params, ",") + ">"
}
