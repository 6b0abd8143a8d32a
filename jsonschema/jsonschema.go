// Package jsonschema exports schema trees as JSON Schema documents, for API
// documentation and editor tooling.
package jsonschema

import (
	"sort"

	"github.com/goccy/go-json"
	js "github.com/invopop/jsonschema"

	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/mongoose"
	"github.com/Rifhice/paxada/naming"
)

// DefsPrefix is the pointer prefix of referenced entities.
const DefsPrefix = "#/$defs/"

type exporter struct{}

func (exporter) VisitString(s *ir.String) *js.Schema {
	out := &js.Schema{Type: "string", Pattern: s.Pattern}
	if s.Password {
		out.Format = "password"
		out.WriteOnly = true
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, e)
	}
	out.MinLength = length(s.MinLength)
	out.MaxLength = length(s.MaxLength)
	return out
}

func (exporter) VisitDate(*ir.Date) *js.Schema {
	return &js.Schema{Type: "string", Format: "date-time"}
}

func (exporter) VisitNumber(n *ir.Number) *js.Schema {
	out := &js.Schema{Type: "number"}
	if n.Integer {
		out.Type = "integer"
	}
	out.Minimum = number(n.Minimum)
	out.Maximum = number(n.Maximum)
	out.ExclusiveMinimum = number(n.ExclusiveMinimum)
	out.ExclusiveMaximum = number(n.ExclusiveMaximum)
	out.MultipleOf = number(n.MultipleOf)
	return out
}

func (exporter) VisitBoolean(*ir.Boolean) *js.Schema {
	return &js.Schema{Type: "boolean"}
}

func (exporter) VisitArray(a *ir.Array) *js.Schema {
	return &js.Schema{Type: "array", Items: FromVariable(a.Items)}
}

func (exporter) VisitObject(o *ir.Object) *js.Schema {
	return FromProperties(o.Properties)
}

func (exporter) VisitRef(r *ir.Ref) *js.Schema {
	return &js.Schema{Ref: DefsPrefix + r.Ref}
}

// FromVariable converts one node. Common attributes map to description,
// readOnly and examples; required-ness lives on the enclosing object.
func FromVariable(v ir.Variable) *js.Schema {
	s := ir.Match[*js.Schema](v, exporter{})
	c := v.Attrs()
	s.Description = c.Description
	s.ReadOnly = c.ReadOnly
	if c.Example != nil {
		s.Examples = []any{c.Example}
	}
	return s
}

// FromProperties converts a property set to an object schema. Properties keep
// declaration order and required keys are listed in that order.
func FromProperties(p *ir.Properties) *js.Schema {
	out := &js.Schema{Type: "object", Properties: js.NewProperties()}
	p.Each(func(key string, v ir.Variable) {
		out.Properties.Set(key, FromVariable(v))
		if v.Attrs().Required {
			out.Required = append(out.Required, key)
		}
	})
	return out
}

// FromSchema converts a root schema. Composite members keep their order.
func FromSchema(s ir.Schema) *js.Schema {
	switch n := s.(type) {
	case *ir.Properties:
		return FromProperties(n)
	case *ir.Composite:
		subs := make([]*js.Schema, 0, len(n.SubSchemas))
		for _, sub := range n.SubSchemas {
			switch m := sub.(type) {
			case *ir.Properties:
				subs = append(subs, FromProperties(m))
			case *ir.Ref:
				subs = append(subs, FromVariable(m))
			}
		}
		out := &js.Schema{}
		switch n.Mode {
		case ir.AllOf:
			out.AllOf = subs
		case ir.AnyOf:
			out.AnyOf = subs
		case ir.OneOf:
			out.OneOf = subs
		}
		return out
	}
	return &js.Schema{}
}

// FromEntity converts an entity into a standalone document. Every referenced
// entity gets a definition accepting either its id or the populated document.
func FromEntity(e ir.Entity) *js.Schema {
	out := FromSchema(e.Schema)
	out.Version = js.Version
	out.Title = naming.Pascal(e.Name)
	out.Definitions = definitions(collectRefs(e.Schema, nil))
	return out
}

// FromRoute converts a route into one document whose properties are the
// request sections and the responses keyed by status code.
func FromRoute(r ir.Route) *js.Schema {
	out := &js.Schema{
		Version:     js.Version,
		Type:        "object",
		Title:       r.Name,
		Description: r.Summary,
		Properties:  js.NewProperties(),
	}
	if out.Title == "" {
		if name, ok := naming.RouteName(r.Path, r.Method); ok {
			out.Title = name
		}
	}
	var refs []string
	section := func(key string, s ir.Schema) {
		if s == nil {
			return
		}
		out.Properties.Set(key, FromSchema(s))
		refs = collectRefs(s, refs)
	}
	section("pathVariables", r.PathVariables)
	section("queryVariables", r.QueryVariables)
	section("body", r.Body)
	if len(r.Responses) > 0 {
		responses := &js.Schema{Type: "object", Properties: js.NewProperties()}
		for _, resp := range r.Responses {
			rs := &js.Schema{}
			if resp.Schema != nil {
				rs = FromSchema(resp.Schema)
				refs = collectRefs(resp.Schema, refs)
			}
			rs.Description = resp.Description
			responses.Properties.Set(resp.Code, rs)
		}
		out.Properties.Set("responses", responses)
	}
	out.Definitions = definitions(refs)
	return out
}

// Marshal renders s as indented JSON.
func Marshal(s *js.Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func definitions(refs []string) js.Definitions {
	if len(refs) == 0 {
		return nil
	}
	defs := make(js.Definitions, len(refs))
	for _, r := range refs {
		defs[r] = &js.Schema{
			Description: r + " id or populated document",
			AnyOf: []*js.Schema{
				{Type: "string", Pattern: "^[0-9a-fA-F]{24}$"},
				{Type: "object"},
			},
		}
	}
	return defs
}

// collectRefs appends the distinct ref targets of s to acc, sorted.
func collectRefs(s ir.Schema, acc []string) []string {
	rc := &refCollector{seen: make(map[string]bool, len(acc)), acc: acc}
	for _, r := range acc {
		rc.seen[r] = true
	}
	ir.MatchSchema[struct{}](s, rc)
	sort.Strings(rc.acc)
	return rc.acc
}

type refCollector struct {
	seen map[string]bool
	acc  []string
}

func (rc *refCollector) VisitString(*ir.String) struct{}   { return struct{}{} }
func (rc *refCollector) VisitDate(*ir.Date) struct{}       { return struct{}{} }
func (rc *refCollector) VisitNumber(*ir.Number) struct{}   { return struct{}{} }
func (rc *refCollector) VisitBoolean(*ir.Boolean) struct{} { return struct{}{} }

func (rc *refCollector) VisitArray(a *ir.Array) struct{} {
	return ir.Match[struct{}](a.Items, rc)
}

func (rc *refCollector) VisitObject(o *ir.Object) struct{} {
	return rc.VisitObjectSchema(o.Properties)
}

func (rc *refCollector) VisitRef(r *ir.Ref) struct{} {
	if !rc.seen[r.Ref] {
		rc.seen[r.Ref] = true
		rc.acc = append(rc.acc, r.Ref)
	}
	return struct{}{}
}

func (rc *refCollector) VisitObjectSchema(p *ir.Properties) struct{} {
	p.Each(func(_ string, v ir.Variable) { ir.Match[struct{}](v, rc) })
	return struct{}{}
}

func (rc *refCollector) VisitComposite(c *ir.Composite) struct{} {
	for _, sub := range c.SubSchemas {
		ir.MatchSub[struct{}](sub, rc)
	}
	return struct{}{}
}

func length(i *int) *uint64 {
	if i == nil || *i < 0 {
		return nil
	}
	u := uint64(*i)
	return &u
}

func number(f *float64) json.Number {
	if f == nil {
		return ""
	}
	return json.Number(mongoose.FormatNumber(*f))
}
