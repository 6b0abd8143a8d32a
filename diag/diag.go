// Package diag carries non-fatal diagnostics produced while rendering. Renderers
// return them next to their output instead of printing.
package diag

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic.
type Severity int

const (
	Warning Severity = iota
	Info
)

func (s Severity) String() string {
	if s == Info {
		return "info"
	}
	return "warning"
}

// Code identifies the construct that was skipped.
type Code string

const (
	// CodeUnsupportedComposite: allOf/anyOf/oneOf where only an object is rendered.
	CodeUnsupportedComposite Code = "unsupported_composite"
	// CodeRefInAllOf: a ref member of allOf contributes no fields.
	CodeRefInAllOf Code = "ref_in_allof"
	// CodeRefInValidators: a ref leaf cannot be validated and is dropped.
	CodeRefInValidators Code = "ref_in_validators"
	// CodeRefInAlternative: a ref member of anyOf/oneOf is left out of the combinator.
	CodeRefInAlternative Code = "ref_in_alternative"
	// CodeCompositeSanitizer: no sanitizer is built for a composite section.
	CodeCompositeSanitizer Code = "composite_sanitizer"
	// CodeDocument: something in a source document was ignored.
	CodeDocument Code = "document"
)

// Diagnostic is one structured non-fatal report.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string // dotted path of the node, empty for the root
	Message  string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s at %s: %s", d.Code, d.Path, d.Message)
}

// List is an ordered set of diagnostics.
type List []Diagnostic

func (l List) HasWarnings() bool {
	for _, d := range l {
		if d.Severity == Warning {
			return true
		}
	}
	return false
}

// Warnings renders warning-level entries as strings.
func (l List) Warnings() []string {
	var ws []string
	for _, d := range l {
		if d.Severity == Warning {
			ws = append(ws, d.String())
		}
	}
	return ws
}

// Codes lists the code of every entry, in order.
func (l List) Codes() []Code {
	out := make([]Code, len(l))
	for i, d := range l {
		out[i] = d.Code
	}
	return out
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, d := range l {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}

// Collector accumulates diagnostics for one conversion call. A nil Collector
// discards everything.
type Collector struct {
	list List
}

func (c *Collector) Warnf(code Code, path string, format string, a ...any) {
	c.add(Warning, code, path, fmt.Sprintf(format, a...))
}

func (c *Collector) Infof(code Code, path string, format string, a ...any) {
	c.add(Info, code, path, fmt.Sprintf(format, a...))
}

// Merge appends diagnostics produced by a nested call.
func (c *Collector) Merge(l List) {
	if c == nil {
		return
	}
	c.list = append(c.list, l...)
}

// List returns a copy of the collected diagnostics.
func (c *Collector) List() List {
	if c == nil || len(c.list) == 0 {
		return nil
	}
	return append(List(nil), c.list...)
}

func (c *Collector) add(s Severity, code Code, path, msg string) {
	if c == nil {
		return
	}
	c.list = append(c.list, Diagnostic{Severity: s, Code: code, Path: path, Message: msg})
}

// Within returns a copy of l with every path placed under prefix.
func (l List) Within(prefix string) List {
	if len(l) == 0 {
		return nil
	}
	out := make(List, len(l))
	for i, d := range l {
		switch {
		case d.Path == "":
			d.Path = prefix
		case prefix != "":
			d.Path = prefix + "." + d.Path
		}
		out[i] = d
	}
	return out
}
