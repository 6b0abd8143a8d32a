// Package naming derives identifiers for generated files and symbols.
package naming

import (
	"path"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s on separators and on case boundaries:
// "postId" -> [post Id], "APIKey" -> [API Key], "user_name" -> [user name].
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Pascal joins the words of s, each title-cased: "get post" -> "GetPost".
func Pascal(s string) string {
	// a Caser is stateful; one per call
	title := cases.Title(language.English)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Camel is Pascal with a lower-cased first word.
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.English)
	return lower.String(words[0]) + Pascal(strings.Join(words[1:], " "))
}

var verbs = map[string]string{
	"get":    "Get",
	"post":   "Create",
	"put":    "Update",
	"patch":  "Patch",
	"delete": "Delete",
}

// RouteName derives a handler name from a route path and method, using the
// last non-parameter path component: "/posts/:postId" get -> "GetPost",
// "/posts" get -> "GetPosts", "/posts" post -> "CreatePost". The component is
// singularized unless the method is get and the component is not directly
// followed by a parameter. It reports false when the path has no
// non-parameter component.
func RouteName(routePath, method string) (string, bool) {
	var parts []string
	for _, p := range strings.Split(routePath, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	idx := -1
	for i := len(parts) - 1; i >= 0; i-- {
		if !strings.HasPrefix(parts[i], ":") {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	method = strings.ToLower(method)
	component := parts[idx]
	fromEnd := len(parts) - 1 - idx
	if method != "get" || fromEnd == 1 {
		component = Singular(component)
	}
	verb, ok := verbs[method]
	if !ok {
		verb = Pascal(method)
	}
	return Pascal(verb + Pascal(component)), true
}

// Folder maps a route path to its folder: parameters and empty segments are
// dropped and each segment is Pascal-cased. "posts/:postId/comments" ->
// "Posts/Comments".
func Folder(routePath string) string {
	var parts []string
	for _, p := range strings.Split(routePath, "/") {
		if p == "" || strings.Contains(p, ":") {
			continue
		}
		if s := Pascal(p); s != "" {
			parts = append(parts, s)
		}
	}
	return path.Join(parts...)
}

// singulars extends the default inflection rules with words the defaults
// get wrong for route paths.
var singulars = func() *inflect.Ruleset {
	rs := inflect.NewDefaultRuleset()
	rs.AddSingular("ss", "ss")
	rs.AddSingular("us", "us")
	rs.AddUncountable("data")
	return rs
}()

// Singular returns the singular form of an English plural. The letters the
// singular shares with word keep their case: "Categories" -> "Category".
func Singular(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	single := singulars.Singularize(lower)
	n := 0
	for n < len(single) && n < len(lower) && single[n] == lower[n] {
		n++
	}
	return word[:n] + single[n:]
}
