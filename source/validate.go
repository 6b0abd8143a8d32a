package source

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Rifhice/paxada"
)

//go:embed doc.schema.json
var docSchemaData []byte

const docSchemaURL = "doc.schema.json"

var (
	compileOnce sync.Once
	docSchema   *jsonschema.Schema
	compileErr  error
)

// DocSchema returns the compiled meta-schema every doc file must satisfy.
func DocSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(docSchemaURL, strings.NewReader(string(docSchemaData))); err != nil {
			compileErr = fmt.Errorf("source: add doc schema: %w", err)
			return
		}
		docSchema, compileErr = c.Compile(docSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("source: compile doc schema: %w", compileErr)
		}
	})
	return docSchema, compileErr
}

// Validate checks a decoded doc against the doc meta-schema. raw may be any
// value that marshals to JSON; it is normalized to plain JSON values first.
// Violations are returned as paxada.Issues with JSON Pointer paths.
func Validate(raw any) error {
	s, err := DocSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("source: normalize doc: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("source: normalize doc: %w", err)
	}
	if err := s.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return issuesFrom(ve)
		}
		return fmt.Errorf("source: validate doc: %w", err)
	}
	return nil
}

// issuesFrom flattens the leaves of a validation error tree. Leaves sharing
// an instance location and message are reported once.
func issuesFrom(ve *jsonschema.ValidationError) paxada.Issues {
	var iss paxada.Issues
	seen := make(map[string]bool)
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			key := e.InstanceLocation + "\x00" + e.Message
			if seen[key] {
				return
			}
			seen[key] = true
			iss = paxada.AppendIssues(iss, paxada.Issue{
				Path:    pointer(e.InstanceLocation),
				Code:    issueCode(e.KeywordLocation),
				Message: e.Message,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.SliceStable(iss, func(i, j int) bool { return iss[i].Path < iss[j].Path })
	return iss
}

// issueCode classifies a failure by the keyword that raised it.
func issueCode(keywordLocation string) string {
	switch keywordLocation[strings.LastIndex(keywordLocation, "/")+1:] {
	case "additionalProperties":
		return paxada.CodeUnknownKey
	case "required":
		return paxada.CodeRequired
	case "type":
		return paxada.CodeInvalidType
	}
	return paxada.CodeInvalidDocument
}

func pointer(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}
