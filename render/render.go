// Package render turns assembled entity and route data into project files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Rifhice/paxada"
)

//go:embed templates
var templatesFS embed.FS

var funcs = template.FuncMap{
	"join":            strings.Join,
	"quote":           strconv.Quote,
	"formatInterface": paxada.FormatInterface,
}

var (
	entityTemplates = parse("templates/entity/*.tmpl")
	routeTemplates  = parse("templates/route/*.tmpl")
	docTemplates    = parse("templates/doc/*.tmpl")
)

func parse(pattern string) *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, pattern))
}

func execute(t *template.Template, name string, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := t.ExecuteTemplate(&b, name, data); err != nil {
		return nil, fmt.Errorf("render: %s: %w", name, err)
	}
	return b.Bytes(), nil
}

// File is one planned output file. Path is relative to the project root.
// Scaffold files hold user code: they are written once and never replaced.
type File struct {
	Path     string
	Content  []byte
	Scaffold bool
}

// Layout places generated files in the project.
type Layout struct {
	EntitiesDir string
	RoutesDir   string
}

// DefaultLayout mirrors the directories of a generated project.
var DefaultLayout = Layout{
	EntitiesDir: filepath.Join("src", "entities"),
	RoutesDir:   filepath.Join("src", "routes"),
}

// EntityDir is the folder of an entity and its doc file.
func (l Layout) EntityDir(name string) string {
	return filepath.Join(l.EntitiesDir, name)
}

// EntityDoc is the doc file path of an entity.
func (l Layout) EntityDoc(name string) string {
	return filepath.Join(l.EntityDir(name), name+".doc.yaml")
}

// RouteDir is the folder of a route: <private|public>/<folder>/<name>.
func (l Layout) RouteDir(private bool, folder, name string) string {
	visibility := "public"
	if private {
		visibility = "private"
	}
	return filepath.Join(l.RoutesDir, visibility, filepath.FromSlash(folder), name)
}

// RouteDoc is the doc file path of a route.
func (l Layout) RouteDoc(private bool, folder, name string) string {
	return filepath.Join(l.RouteDir(private, folder, name), name+".doc.yaml")
}

var entityFiles = []struct {
	template string
	suffix   string
	dir      string
	scaffold bool
}{
	{"model.ts.tmpl", ".model.ts", "persistance", false},
	{"interfaces.ts.tmpl", ".interfaces.ts", "persistance", false},
	{"dao.ts.tmpl", ".dao.ts", "persistance", true},
	{"subscribers.ts.tmpl", ".subscribers.ts", "", true},
	{"services.ts.tmpl", ".services.ts", "", true},
}

// EntityFiles plans the files of an entity.
func EntityFiles(l Layout, d *paxada.EntityData) ([]File, error) {
	out := make([]File, 0, len(entityFiles))
	for _, f := range entityFiles {
		content, err := execute(entityTemplates, f.template, d)
		if err != nil {
			return nil, err
		}
		out = append(out, File{
			Path:     filepath.Join(l.EntityDir(d.Name), f.dir, d.Name+f.suffix),
			Content:  content,
			Scaffold: f.scaffold,
		})
	}
	return out, nil
}

// routeView adds the values the route templates derive from RouteData.
type routeView struct {
	*paxada.RouteData
	Locations        []string
	Sanitizers       []string
	InterfaceNames   []string
	SuccessInterface string
}

func newRouteView(d *paxada.RouteData) routeView {
	v := routeView{RouteData: d}
	seen := map[string]bool{}
	for _, e := range d.Validators {
		loc := e.Location
		if loc == "" {
			loc = "check"
		}
		if !seen[loc] {
			seen[loc] = true
			v.Locations = append(v.Locations, loc)
		}
	}
	if len(v.Locations) == 0 {
		v.Locations = []string{"check"}
	}
	if d.BodySanitizer != "" {
		v.Sanitizers = append(v.Sanitizers, "sanityzeBody")
	}
	if d.QuerySanitizer != "" {
		v.Sanitizers = append(v.Sanitizers, "sanityzeQuery")
	}
	for _, i := range d.Interfaces {
		v.InterfaceNames = append(v.InterfaceNames, i.Name)
		if v.SuccessInterface == "" && strings.HasPrefix(i.Name, d.Name+"Response2") {
			v.SuccessInterface = i.Name
		}
	}
	return v
}

var routeFiles = []struct {
	template string
	suffix   string
	scaffold bool
}{
	{"interfaces.ts.tmpl", ".interfaces.ts", false},
	{"validators.ts.tmpl", ".validators.ts", false},
	{"index.ts.tmpl", ".index.ts", false},
	{"route.ts.tmpl", ".route.ts", true},
}

// RouteFiles plans the files of a route.
func RouteFiles(l Layout, d *paxada.RouteData) ([]File, error) {
	view := newRouteView(d)
	dir := l.RouteDir(d.Private, d.Folder, d.Name)
	out := make([]File, 0, len(routeFiles))
	for _, f := range routeFiles {
		content, err := execute(routeTemplates, f.template, view)
		if err != nil {
			return nil, err
		}
		out = append(out, File{
			Path:     filepath.Join(dir, d.Name+f.suffix),
			Content:  content,
			Scaffold: f.scaffold,
		})
	}
	return out, nil
}

// Files plans the files of one assembled document.
func Files(l Layout, res paxada.Result) ([]File, error) {
	switch {
	case res.Entity != nil:
		return EntityFiles(l, res.Entity)
	case res.Route != nil:
		return RouteFiles(l, res.Route)
	}
	return nil, nil
}
