package ir

// Package ir defines the Variable schema tree consumed by every renderer.
// Nodes are plain data; the set of node types is closed (see Match).

import "fmt"

// Kind identifies a Variable node type. String returns the document tag.
type Kind int

const (
	KindString Kind = iota
	KindPassword
	KindDate
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
	KindRef
)

var kindNames = [...]string{
	KindString:   "string",
	KindPassword: "password",
	KindDate:     "date",
	KindNumber:   "number",
	KindInteger:  "integer",
	KindBoolean:  "boolean",
	KindArray:    "array",
	KindObject:   "object",
	KindRef:      "ref",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a document type tag to a Kind.
func ParseKind(tag string) (Kind, bool) {
	for i, n := range kindNames {
		if n == tag {
			return Kind(i), true
		}
	}
	return 0, false
}

// Variable is one node of the schema tree.
type Variable interface {
	Kind() Kind
	Attrs() Common
	variable()
}

// Common holds attributes shared by every node.
type Common struct {
	Required    bool
	Description string
	ReadOnly    bool
	Example     any
}

// String is a string or password node.
type String struct {
	Common
	Password  bool
	Enum      []string
	Pattern   string
	MinLength *int
	MaxLength *int
}

func (s *String) Kind() Kind {
	if s.Password {
		return KindPassword
	}
	return KindString
}

// Date is a date node; it carries only common attributes.
type Date struct {
	Common
}

func (d *Date) Kind() Kind { return KindDate }

// Number is a number or integer node. Nil bounds are absent.
type Number struct {
	Common
	Integer          bool
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *float64
	ExclusiveMaximum *float64
	MultipleOf       *float64
}

func (n *Number) Kind() Kind {
	if n.Integer {
		return KindInteger
	}
	return KindNumber
}

// Boolean is a boolean node.
type Boolean struct {
	Common
}

func (b *Boolean) Kind() Kind { return KindBoolean }

// Array holds exactly one items schema.
type Array struct {
	Common
	Items Variable
}

func (a *Array) Kind() Kind { return KindArray }

// Object is a nested object node.
type Object struct {
	Common
	Properties *Properties
}

func (o *Object) Kind() Kind { return KindObject }

// Ref points at another entity by name. The target is never resolved.
type Ref struct {
	Common
	Ref string
}

func (r *Ref) Kind() Kind { return KindRef }

func (s *String) Attrs() Common  { return s.Common }
func (d *Date) Attrs() Common    { return d.Common }
func (n *Number) Attrs() Common  { return n.Common }
func (b *Boolean) Attrs() Common { return b.Common }
func (a *Array) Attrs() Common   { return a.Common }
func (o *Object) Attrs() Common  { return o.Common }
func (r *Ref) Attrs() Common     { return r.Common }

func (*String) variable()  {}
func (*Date) variable()    {}
func (*Number) variable()  {}
func (*Boolean) variable() {}
func (*Array) variable()   {}
func (*Object) variable()  {}
func (*Ref) variable()     {}

// CompositeMode selects how sub-schemas combine.
type CompositeMode int

const (
	AllOf CompositeMode = iota
	AnyOf
	OneOf
)

func (m CompositeMode) String() string {
	switch m {
	case AllOf:
		return "allOf"
	case AnyOf:
		return "anyOf"
	case OneOf:
		return "oneOf"
	}
	return fmt.Sprintf("CompositeMode(%d)", int(m))
}

// Schema is the root of an entity or a route section: *Properties or *Composite.
type Schema interface {
	schema()
}

// SubSchema is a member of a composite: *Properties or *Ref.
type SubSchema interface {
	subSchema()
}

// Composite combines sub-schemas by merge (allOf) or alternation (anyOf/oneOf).
type Composite struct {
	Mode       CompositeMode
	SubSchemas []SubSchema
}

func (*Composite) schema()     {}
func (*Properties) schema()    {}
func (*Properties) subSchema() {}
func (*Ref) subSchema()        {}

// Entity is a named persisted record shape.
type Entity struct {
	Name   string
	Schema Schema
}

// Response is one declared response of a route, keyed by status code.
type Response struct {
	Code        string
	Description string
	Schema      Schema
}

// Route describes one HTTP endpoint. Nil schemas are absent sections.
type Route struct {
	Path           string
	Method         string
	Name           string
	Tag            string
	Summary        string
	Description    string
	Private        bool
	PathVariables  Schema
	QueryVariables Schema
	Body           Schema
	Responses      []Response
}

// DocKind tells which section a Document holds.
type DocKind string

const (
	DocEntity DocKind = "entity"
	DocRoute  DocKind = "route"
)

// Document is one decoded doc: exactly one of Entity or Route is set.
type Document struct {
	Kind   DocKind
	File   string
	Entity *Entity
	Route  *Route
}
