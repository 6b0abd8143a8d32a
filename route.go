package paxada

import (
	"strings"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/naming"
	"github.com/Rifhice/paxada/tstype"
	"github.com/Rifhice/paxada/validator"
)

// Interface is one named TypeScript declaration of a route.
type Interface struct {
	Name    string
	Content string
	Union   bool // Content is a union and must be declared as a type alias
}

// FormatInterface renders the exported declaration of i.
func FormatInterface(i Interface) string {
	if i.Union {
		return "export type " + i.Name + " = " + i.Content
	}
	return "export interface " + i.Name + " " + i.Content
}

// FormatInterfaces renders every declaration, one after the other.
func FormatInterfaces(is []Interface) string {
	out := make([]string, len(is))
	for i, it := range is {
		out[i] = FormatInterface(it)
	}
	return strings.Join(out, "\n")
}

// RouteData is the record handed to the route templates.
type RouteData struct {
	Name        string
	Method      string
	Path        string
	Folder      string
	Tag         string
	Summary     string
	Description string
	Private     bool
	RouteID     int

	Interfaces     []Interface
	InterfacesText string

	BodyValidators  []validator.Entry
	PathValidators  []validator.Entry
	QueryValidators []validator.Entry
	Validators      []validator.Entry
	ValidatorsText  string

	BodySanitizer  string
	QuerySanitizer string

	HasBody  bool
	HasQuery bool
	HasParam bool
}

// hasBody reports whether the method carries a request body.
func hasBody(method string) bool {
	return method == "post" || method == "put"
}

// ExtractRoute renders interfaces, validators and sanitizers of a route.
// Without a name, one is derived from the method and path; when that is not
// possible an ErrMissingRequiredInput error is returned.
func ExtractRoute(r ir.Route, opts ...Option) (*RouteData, diag.List, error) {
	method := strings.ToLower(strings.TrimSpace(r.Method))
	if method == "" {
		return nil, nil, missingInput("route method is required").WithDetail("path", r.Path)
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		derived, ok := naming.RouteName(r.Path, method)
		if !ok {
			return nil, nil, missingInput("route name is required: %q has no static path component", r.Path).WithDetail("path", r.Path)
		}
		name = derived
	}
	base := naming.Pascal(name)
	if base == "" {
		return nil, nil, missingInput("route name is required: %q has no letters or digits", name).WithDetail("path", r.Path)
	}
	o := newOptions(opts)
	d := &diag.Collector{}

	data := &RouteData{
		Name:        base,
		Method:      method,
		Path:        r.Path,
		Folder:      naming.Folder(r.Path),
		Tag:         r.Tag,
		Summary:     r.Summary,
		Description: r.Description,
		Private:     r.Private,
		RouteID:     o.routeID,
		HasBody:     hasBody(method) && r.Body != nil,
		HasQuery:    nonEmpty(r.QueryVariables),
		HasParam:    nonEmpty(r.PathVariables),
	}

	addInterface := func(section string, s ir.Schema, suffix string) {
		if s == nil {
			return
		}
		content, ds := tstype.Interface(s, nil)
		d.Merge(ds.Within(section))
		data.Interfaces = append(data.Interfaces, Interface{
			Name:    base + suffix,
			Content: content,
			Union:   tstype.IsUnion(s),
		})
	}
	addInterface("pathVariables", r.PathVariables, "Path")
	addInterface("queryVariables", r.QueryVariables, "Query")
	if data.HasBody {
		addInterface("body", r.Body, "Body")
	}
	for _, resp := range r.Responses {
		addInterface("responses."+resp.Code, resp.Schema, "Response"+resp.Code)
	}
	data.InterfacesText = FormatInterfaces(data.Interfaces)

	line := 0
	build := func(section, location string, s ir.Schema) []validator.Entry {
		entries, next, ds := validator.Build(s, line,
			validator.WithLocation(location),
			validator.WithTranslator(o.translator))
		line = next
		d.Merge(ds.Within(section))
		return entries
	}
	if data.HasBody {
		data.BodyValidators = build("body", "body", r.Body)
		san, ds := validator.SchemaSanitizer(r.Body)
		data.BodySanitizer = san
		d.Merge(ds.Within("body"))
	}
	if r.PathVariables != nil {
		data.PathValidators = build("pathVariables", "param", r.PathVariables)
	}
	if r.QueryVariables != nil {
		data.QueryValidators = build("queryVariables", "query", r.QueryVariables)
		san, ds := validator.SchemaSanitizer(r.QueryVariables)
		data.QuerySanitizer = san
		d.Merge(ds.Within("queryVariables"))
	}

	data.Validators = append(append(append([]validator.Entry(nil), data.BodyValidators...), data.PathValidators...), data.QueryValidators...)
	rendered := make([]string, len(data.Validators))
	for i, e := range data.Validators {
		rendered[i] = e.WithMessage()
	}
	data.ValidatorsText = strings.Join(rendered, ",\n")
	return data, d.List(), nil
}

func nonEmpty(s ir.Schema) bool {
	switch n := s.(type) {
	case *ir.Properties:
		return n.Len() > 0
	case *ir.Composite:
		return len(n.SubSchemas) > 0
	}
	return false
}
