package render

import (
	"strings"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/naming"
)

// EntityDocScaffold plans a starter doc file for an entity.
func EntityDocScaffold(l Layout, name string) (File, error) {
	name = naming.Pascal(name)
	if name == "" {
		return File{}, &paxada.Error{Code: paxada.ErrCodeMissingRequiredInput, Message: "entity name is required"}
	}
	content, err := execute(docTemplates, "entity.doc.yaml.tmpl", struct{ Name string }{name})
	if err != nil {
		return File{}, err
	}
	return File{Path: l.EntityDoc(name), Content: content, Scaffold: true}, nil
}

// RouteScaffold describes the route a doc scaffold is planned for.
type RouteScaffold struct {
	Method  string
	Path    string
	Name    string // derived from Method and Path when empty
	Private bool
}

// RouteDocScaffold plans a starter doc file for a route, with one required
// string path variable per ":param" segment.
func RouteDocScaffold(l Layout, r RouteScaffold) (File, error) {
	method := strings.ToLower(r.Method)
	name := naming.Pascal(r.Name)
	if name == "" {
		derived, ok := naming.RouteName(r.Path, method)
		if !ok {
			return File{}, (&paxada.Error{Code: paxada.ErrCodeMissingRequiredInput, Message: "route name is required"}).WithDetail("path", r.Path)
		}
		name = derived
	}
	folder := naming.Folder(r.Path)
	data := struct {
		Method  string
		Path    string
		Name    string
		Tag     string
		Private bool
		Params  []string
		HasBody bool
	}{
		Method:  method,
		Path:    r.Path,
		Name:    name,
		Tag:     strings.SplitN(folder, "/", 2)[0],
		Private: r.Private,
		HasBody: method == "post" || method == "put",
	}
	for _, seg := range strings.Split(r.Path, "/") {
		if p, ok := strings.CutPrefix(seg, ":"); ok && p != "" {
			data.Params = append(data.Params, p)
		}
	}
	content, err := execute(docTemplates, "route.doc.yaml.tmpl", data)
	if err != nil {
		return File{}, err
	}
	return File{Path: l.RouteDoc(r.Private, folder, name), Content: content, Scaffold: true}, nil
}
