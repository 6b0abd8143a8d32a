package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/i18n"
	"github.com/Rifhice/paxada/ir"
)

// Entry is one path-qualified validator. Code numbers entries in emission
// order within one conversion.
type Entry struct {
	Location string // express-validator entry point: body, param, query or empty
	Path     string
	Chain    string
	Kind     string
	Code     int
	Message  string
}

// String renders location('path')chain. An entry without a path targets the
// whole location.
func (e Entry) String() string {
	target := "()"
	if e.Path != "" {
		target = "('" + e.Path + "')"
	}
	return e.Location + target + e.Chain
}

// WithMessage renders the entry with its code and message attached.
func (e Entry) WithMessage() string {
	return fmt.Sprintf("%s.withMessage({ code: %d, message: %s })", e.String(), e.Code, literal(e.Message))
}

// Option configures a conversion.
type Option func(*config)

type config struct {
	location   string
	translator i18n.Translator
}

// WithLocation sets the express-validator entry point of every entry.
func WithLocation(loc string) Option {
	return func(c *config) { c.location = loc }
}

// WithTranslator overrides the message translator.
func WithTranslator(tr i18n.Translator) Option {
	return func(c *config) { c.translator = tr }
}

func newConfig(opts []Option) config {
	c := config{}
	for _, o := range opts {
		o(&c)
	}
	if c.translator == nil {
		c.translator = i18n.Default()
	}
	return c
}

// cursor numbers entries for a single top-level conversion.
type cursor struct {
	cfg  config
	line int
	d    *diag.Collector
}

func (c *cursor) emit(out []Entry, path, kind, chain string) []Entry {
	e := Entry{
		Location: c.cfg.location,
		Path:     path,
		Chain:    chain,
		Kind:     kind,
		Code:     c.line,
		Message:  c.cfg.translator.Message(i18n.CodeValidationFailed, map[string]string{"path": path, "kind": kind}),
	}
	c.line++
	return append(out, e)
}

// WithKey expands v at path into entries, numbering them from line. Object
// properties extend the path with ".key" and array items with ".*". It
// returns the entries and the next free line.
func WithKey(v ir.Variable, path string, line int, opts ...Option) ([]Entry, int, diag.List) {
	c := &cursor{cfg: newConfig(opts), line: line, d: &diag.Collector{}}
	out := c.withKey(nil, v, path)
	return out, c.line, c.d.List()
}

func (c *cursor) withKey(out []Entry, v ir.Variable, path string) []Entry {
	return append(out, ir.Match[[]Entry](v, keyed{c: c, path: path})...)
}

// keyed expands one node at path. Scalars give one entry, arrays give the
// array entry and then their items, objects give their properties.
type keyed struct {
	c    *cursor
	path string
}

func (k keyed) scalar(v ir.Variable) []Entry {
	return k.c.emit(nil, k.path, v.Kind().String(), Chains(v)[0])
}

func (k keyed) VisitString(s *ir.String) []Entry   { return k.scalar(s) }
func (k keyed) VisitDate(d *ir.Date) []Entry       { return k.scalar(d) }
func (k keyed) VisitNumber(n *ir.Number) []Entry   { return k.scalar(n) }
func (k keyed) VisitBoolean(b *ir.Boolean) []Entry { return k.scalar(b) }

func (k keyed) VisitArray(a *ir.Array) []Entry {
	cs := ArrayChains(a)
	out := k.c.emit(nil, k.path, a.Kind().String(), cs[0])
	switch a.Items.(type) {
	case *ir.Array, *ir.Object, *ir.Ref:
		return k.c.withKey(out, a.Items, k.path+".*")
	}
	return k.c.emit(out, k.path+".*", a.Items.Kind().String(), cs[1])
}

func (k keyed) VisitObject(o *ir.Object) []Entry {
	var out []Entry
	o.Properties.Each(func(key string, p ir.Variable) {
		out = k.c.withKey(out, p, k.path+"."+key)
	})
	return out
}

func (k keyed) VisitRef(r *ir.Ref) []Entry {
	k.c.d.Warnf(diag.CodeRefInValidators, k.path, "ref %q cannot be validated; dropped", r.Ref)
	return nil
}

// Build renders the validators of a root schema, numbering entries from
// startLine, and returns the next free line.
//
// A plain object yields the entries of every property in declaration order.
// allOf concatenates the entries of its object members. anyOf and oneOf yield
// one combinator entry that dry-runs each member's entries and passes when
// every check of at least one member passes. Refs in a composite are reported
// and left out.
func Build(s ir.Schema, startLine int, opts ...Option) ([]Entry, int, diag.List) {
	c := &cursor{cfg: newConfig(opts), line: startLine, d: &diag.Collector{}}
	out := c.build(nil, s)
	return out, c.line, c.d.List()
}

func (c *cursor) build(out []Entry, s ir.Schema) []Entry {
	switch n := s.(type) {
	case *ir.Properties:
		n.Each(func(key string, v ir.Variable) {
			out = c.withKey(out, v, key)
		})
	case *ir.Composite:
		if n.Mode == ir.AllOf {
			for i, sub := range n.SubSchemas {
				switch m := sub.(type) {
				case *ir.Properties:
					out = c.build(out, m)
				case *ir.Ref:
					c.d.Warnf(diag.CodeRefInAllOf, "allOf["+strconv.Itoa(i)+"]", "ref %q has no validators; skipped", m.Ref)
				}
			}
			return out
		}
		return c.alternatives(out, n)
	}
	return out
}

// alternatives renders the anyOf/oneOf combinator. Member entries are only
// run in dry mode and are not numbered. The combinator is always emitted; when
// every member is a ref it rejects every request.
func (c *cursor) alternatives(out []Entry, n *ir.Composite) []Entry {
	loc := c.cfg.location
	if loc == "" {
		loc = "check"
	}
	var groups []string
	for i, sub := range n.SubSchemas {
		switch m := sub.(type) {
		case *ir.Properties:
			inner := &cursor{cfg: c.cfg, d: c.d}
			inner.cfg.location = loc
			entries := inner.build(nil, m)
			runs := make([]string, len(entries))
			for j, e := range entries {
				runs[j] = e.String()
			}
			groups = append(groups, "["+strings.Join(runs, ", ")+"]")
		case *ir.Ref:
			c.d.Warnf(diag.CodeRefInAlternative, n.Mode.String()+"["+strconv.Itoa(i)+"]", "ref %q cannot be checked; left out of the alternatives", m.Ref)
		}
	}
	target := c.cfg.location
	if target == "" {
		target = "request"
	}
	msg := c.cfg.translator.Message(i18n.CodeAlternativesFailed, map[string]string{"path": target, "mode": n.Mode.String()})
	// with no checkable member nothing can pass
	chain := ".custom(() => {\n  throw new Error(" + literal(msg) + ");\n})"
	if len(groups) > 0 {
		chain = ".custom(async (value, { req }) => {\n" +
			"  const alternatives = [\n    " + strings.Join(groups, ",\n    ") + ",\n  ];\n" +
			"  for (const chains of alternatives) {\n" +
			"    const results = await Promise.all(chains.map((chain) => chain.run(req, { dryRun: true })));\n" +
			"    if (results.every((result) => result.isEmpty())) return true;\n" +
			"  }\n" +
			"  throw new Error(" + literal(msg) + ");\n" +
			"})"
	}
	e := Entry{
		Location: c.cfg.location,
		Chain:    chain,
		Kind:     n.Mode.String(),
		Code:     c.line,
		Message:  msg,
	}
	c.line++
	return append(out, e)
}
