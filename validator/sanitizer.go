package validator

import (
	"strings"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

// Sanitizer renders the field picker of a request section. Without nested
// objects it is a key allow-list; otherwise it is a function that destructures
// every nested object down to its leaves and returns the same shape.
func Sanitizer(p *ir.Properties) string {
	if !p.HasObject() {
		keys := p.Keys()
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = literal(k)
		}
		return "[" + strings.Join(quoted, ",") + "]"
	}
	shape := destructure(p)
	return "(" + shape + ") => {\n  return " + shape + "\n}"
}

func destructure(p *ir.Properties) string {
	parts := make([]string, 0, p.Len())
	p.Each(func(key string, v ir.Variable) {
		if o, ok := v.(*ir.Object); ok {
			parts = append(parts, key+": "+destructure(o.Properties))
			return
		}
		parts = append(parts, key)
	})
	return "{" + strings.Join(parts, ",") + "}"
}

// SchemaSanitizer renders the sanitizer of a root schema. Composite schemas
// have none.
func SchemaSanitizer(s ir.Schema) (string, diag.List) {
	switch n := s.(type) {
	case *ir.Properties:
		return Sanitizer(n), nil
	case *ir.Composite:
		d := &diag.Collector{}
		d.Warnf(diag.CodeCompositeSanitizer, "", "no sanitizer for %s sections", n.Mode)
		return "", d.List()
	}
	return "", nil
}
