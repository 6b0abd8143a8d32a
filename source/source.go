// Package source reads doc files into schema documents.
//
// A doc file holds one or more YAML (or JSON) documents. Each one declares
// either an entity or a route:
//
//	entity:
//	  name: Post
//	  schema:
//	    content: { type: string, required: true }
//	    author: { type: ref, ref: User }
//
// Every document is checked against an embedded meta-schema before it is
// decoded, so decoding only sees well-formed input. Property order follows
// the file.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

var docSuffixes = []string{".doc.yaml", ".doc.yml", ".doc.json"}

// IsDocFile reports whether name carries a doc file suffix.
func IsDocFile(name string) bool {
	for _, s := range docSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// Decode reads every document in data. file is recorded on the documents and
// on issues. Invalid documents fail the whole call with paxada.Issues.
func Decode(data []byte, file string) ([]ir.Document, diag.List, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	d := &diag.Collector{}
	var docs []ir.Document
	for {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, paxada.Issues{{Path: "/", Code: paxada.CodeParseError, Message: err.Error(), File: file, Cause: err}}
		}
		if len(root.Content) == 0 {
			continue
		}
		n := root.Content[0]
		raw, err := plain(n)
		if err != nil {
			iss := paxada.Issue{Path: "/", Code: paxada.CodeParseError, Message: err.Error(), File: file, Line: n.Line, Cause: err}
			var de *DuplicateKeyError
			if errors.As(err, &de) {
				iss.Line = de.Line
			}
			return nil, nil, paxada.Issues{iss}
		}
		if err := Validate(raw); err != nil {
			iss, ok := paxada.AsIssues(err)
			if !ok {
				return nil, nil, err
			}
			for i := range iss {
				iss[i].File = file
				iss[i].Line = lookup(n, iss[i].Path).Line
			}
			return nil, nil, iss
		}
		doc, err := (&decoder{d: d}).document(n)
		if err != nil {
			return nil, nil, err
		}
		doc.File = file
		docs = append(docs, doc)
	}
	return docs, d.List(), nil
}

// decoder builds ir values from validated nodes. Keywords that do not apply
// to a variable's type are reported and ignored.
type decoder struct {
	d *diag.Collector
}

// decodeError marks a node whose value does not fit the expected Go type.
func decodeError(n *yaml.Node, path string, err error) error {
	iss := paxada.Issue{
		Path:    "/" + strings.ReplaceAll(path, ".", "/"),
		Code:    paxada.CodeInvalidType,
		Message: err.Error(),
		Cause:   err,
	}
	if n != nil {
		iss.Line = n.Line
	}
	return paxada.Issues{iss}
}

// target binds a mapping key to the value it decodes into.
type target struct {
	key string
	out any
}

// fields decodes each present key into its target, in order.
func fields(n *yaml.Node, path string, targets ...target) error {
	for _, t := range targets {
		v := get(n, t.key)
		if v == nil {
			continue
		}
		if err := v.Decode(t.out); err != nil {
			return decodeError(v, path+"."+t.key, err)
		}
	}
	return nil
}

func (dc *decoder) document(n *yaml.Node) (ir.Document, error) {
	if e := get(n, "entity"); e != nil {
		ent, err := dc.entity(e)
		if err != nil {
			return ir.Document{}, err
		}
		return ir.Document{Kind: ir.DocEntity, Entity: ent}, nil
	}
	r, err := dc.route(get(n, "route"))
	if err != nil {
		return ir.Document{}, err
	}
	return ir.Document{Kind: ir.DocRoute, Route: r}, nil
}

func (dc *decoder) entity(n *yaml.Node) (*ir.Entity, error) {
	e := &ir.Entity{}
	if err := fields(n, "entity", target{"name", &e.Name}); err != nil {
		return nil, err
	}
	s, err := dc.schema(get(n, "schema"), "entity.schema")
	if err != nil {
		return nil, err
	}
	e.Schema = s
	return e, nil
}

func (dc *decoder) route(n *yaml.Node) (*ir.Route, error) {
	r := &ir.Route{}
	err := fields(n, "route",
		target{"method", &r.Method},
		target{"path", &r.Path},
		target{"name", &r.Name},
		target{"summary", &r.Summary},
		target{"description", &r.Description},
		target{"tag", &r.Tag},
		target{"private", &r.Private},
	)
	if err != nil {
		return nil, err
	}
	r.Method = strings.ToLower(r.Method)

	if r.PathVariables, err = dc.optionalSchema(n, "route", "pathVariables"); err != nil {
		return nil, err
	}
	if r.QueryVariables, err = dc.optionalSchema(n, "route", "queryVariables"); err != nil {
		return nil, err
	}
	if r.Body, err = dc.optionalSchema(n, "route", "body"); err != nil {
		return nil, err
	}
	if r.Body != nil && r.Method != "post" && r.Method != "put" {
		dc.d.Warnf(diag.CodeDocument, "route.body", "body is ignored for %s routes", r.Method)
	}

	err = each(get(n, "responses"), func(k, v *yaml.Node) error {
		path := "route.responses." + k.Value
		resp := ir.Response{Code: k.Value}
		if err := fields(v, path, target{"description", &resp.Description}); err != nil {
			return err
		}
		s, err := dc.optionalSchema(v, path, "response")
		if err != nil {
			return err
		}
		resp.Schema = s
		r.Responses = append(r.Responses, resp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (dc *decoder) optionalSchema(n *yaml.Node, path, key string) (ir.Schema, error) {
	v := get(n, key)
	if v == nil {
		return nil, nil
	}
	return dc.schema(v, path+"."+key)
}

var compositeModes = map[string]ir.CompositeMode{
	"allOf": ir.AllOf,
	"anyOf": ir.AnyOf,
	"oneOf": ir.OneOf,
}

// schema decodes a root schema: a composite when "type" is a scalar naming a
// combinator, otherwise a property set.
func (dc *decoder) schema(n *yaml.Node, path string) (ir.Schema, error) {
	n = deref(n)
	t := get(n, "type")
	if t == nil || t.Kind != yaml.ScalarNode {
		return dc.properties(n, path)
	}
	mode, ok := compositeModes[t.Value]
	if !ok {
		return dc.properties(n, path)
	}
	c := &ir.Composite{Mode: mode}
	subs := deref(get(n, "subSchemas"))
	if subs == nil {
		return c, nil
	}
	for i, sn := range subs.Content {
		sn = deref(sn)
		sp := fmt.Sprintf("%s.subSchemas[%d]", path, i)
		if st := get(sn, "type"); st != nil && st.Kind == yaml.ScalarNode && st.Value == "ref" {
			v, err := dc.variable(sn, sp)
			if err != nil {
				return nil, err
			}
			c.SubSchemas = append(c.SubSchemas, v.(*ir.Ref))
			continue
		}
		p, err := dc.properties(sn, sp)
		if err != nil {
			return nil, err
		}
		c.SubSchemas = append(c.SubSchemas, p)
	}
	return c, nil
}

func (dc *decoder) properties(n *yaml.Node, path string) (*ir.Properties, error) {
	p := ir.NewProperties()
	err := each(deref(n), func(k, v *yaml.Node) error {
		vv, err := dc.variable(v, path+"."+k.Value)
		if err != nil {
			return err
		}
		p.Set(k.Value, vv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

var commonKeys = []string{"type", "required", "description", "readOnly", "example"}

// keywords lists the type-specific keys each kind accepts.
var keywords = map[ir.Kind][]string{
	ir.KindString:   {"enum", "pattern", "minLength", "maxLength"},
	ir.KindPassword: {"enum", "pattern", "minLength", "maxLength"},
	ir.KindNumber:   {"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"},
	ir.KindInteger:  {"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"},
	ir.KindArray:    {"items"},
	ir.KindObject:   {"properties"},
	ir.KindRef:      {"ref"},
}

func (dc *decoder) variable(n *yaml.Node, path string) (ir.Variable, error) {
	n = deref(n)
	var tag string
	if err := fields(n, path, target{"type", &tag}); err != nil {
		return nil, err
	}
	kind, ok := ir.ParseKind(tag)
	if !ok {
		return nil, decodeError(n, path, fmt.Errorf("unknown variable type %q", tag))
	}
	dc.checkKeywords(n, path, kind)

	var c ir.Common
	err := fields(n, path,
		target{"required", &c.Required},
		target{"description", &c.Description},
		target{"readOnly", &c.ReadOnly},
		target{"example", &c.Example},
	)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ir.KindString, ir.KindPassword:
		s := &ir.String{Common: c, Password: kind == ir.KindPassword}
		err := fields(n, path,
			target{"enum", &s.Enum},
			target{"pattern", &s.Pattern},
			target{"minLength", &s.MinLength},
			target{"maxLength", &s.MaxLength},
		)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ir.KindDate:
		return &ir.Date{Common: c}, nil
	case ir.KindNumber, ir.KindInteger:
		num := &ir.Number{Common: c, Integer: kind == ir.KindInteger}
		err := fields(n, path,
			target{"minimum", &num.Minimum},
			target{"maximum", &num.Maximum},
			target{"exclusiveMinimum", &num.ExclusiveMinimum},
			target{"exclusiveMaximum", &num.ExclusiveMaximum},
			target{"multipleOf", &num.MultipleOf},
		)
		if err != nil {
			return nil, err
		}
		return num, nil
	case ir.KindBoolean:
		return &ir.Boolean{Common: c}, nil
	case ir.KindArray:
		items, err := dc.variable(get(n, "items"), path+".items")
		if err != nil {
			return nil, err
		}
		return &ir.Array{Common: c, Items: items}, nil
	case ir.KindObject:
		p, err := dc.properties(get(n, "properties"), path)
		if err != nil {
			return nil, err
		}
		return &ir.Object{Common: c, Properties: p}, nil
	default:
		r := &ir.Ref{Common: c}
		if err := fields(n, path, target{"ref", &r.Ref}); err != nil {
			return nil, err
		}
		return r, nil
	}
}

func (dc *decoder) checkKeywords(n *yaml.Node, path string, kind ir.Kind) {
	_ = each(n, func(k, _ *yaml.Node) error {
		if slices.Contains(commonKeys, k.Value) || slices.Contains(keywords[kind], k.Value) {
			return nil
		}
		dc.d.Warnf(diag.CodeDocument, path, "%q does not apply to %s variables; ignored", k.Value, kind)
		return nil
	})
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
