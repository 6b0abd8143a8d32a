package jsonschema_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	js "github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/jsonschema"
)

func TestFromVariable_Scalars(t *testing.T) {
	s := jsonschema.FromVariable(&ir.String{
		Common:    ir.Common{Description: "title", Example: "hello"},
		Enum:      []string{"a", "b"},
		Pattern:   "^[a-z]+$",
		MinLength: ir.Int(0),
		MaxLength: ir.Int(5),
	})
	assert.Equal(t, "string", s.Type)
	assert.Equal(t, []any{"a", "b"}, s.Enum)
	assert.Equal(t, "^[a-z]+$", s.Pattern)
	require.NotNil(t, s.MinLength)
	assert.Equal(t, uint64(0), *s.MinLength)
	assert.Equal(t, uint64(5), *s.MaxLength)
	assert.Equal(t, "title", s.Description)
	assert.Equal(t, []any{"hello"}, s.Examples)

	pw := jsonschema.FromVariable(&ir.String{Password: true})
	assert.Equal(t, "password", pw.Format)
	assert.True(t, pw.WriteOnly)

	d := jsonschema.FromVariable(&ir.Date{Common: ir.Common{ReadOnly: true}})
	assert.Equal(t, "date-time", d.Format)
	assert.True(t, d.ReadOnly)

	n := jsonschema.FromVariable(&ir.Number{Integer: true, Minimum: ir.Float(0), ExclusiveMaximum: ir.Float(2.5)})
	assert.Equal(t, "integer", n.Type)
	assert.Equal(t, json.Number("0"), n.Minimum)
	assert.Equal(t, json.Number("2.5"), n.ExclusiveMaximum)
	assert.Equal(t, json.Number(""), n.Maximum)

	assert.Equal(t, "boolean", jsonschema.FromVariable(&ir.Boolean{}).Type)
	assert.Equal(t, "#/$defs/User", jsonschema.FromVariable(&ir.Ref{Ref: "User"}).Ref)
}

func TestFromProperties_OrderAndRequired(t *testing.T) {
	s := jsonschema.FromProperties(ir.NewProperties(
		ir.P("zeta", &ir.String{Common: ir.Common{Required: true}}),
		ir.P("alpha", &ir.Array{Items: &ir.Number{}}),
		ir.P("mid", &ir.Object{Common: ir.Common{Required: true}, Properties: ir.NewProperties(
			ir.P("flag", &ir.Boolean{Common: ir.Common{Required: true}}),
		)}),
	))
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"zeta", "mid"}, s.Required)

	var keys []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	alpha, _ := s.Properties.Get("alpha")
	assert.Equal(t, "array", alpha.Type)
	assert.Equal(t, "number", alpha.Items.Type)
	mid, _ := s.Properties.Get("mid")
	assert.Equal(t, []string{"flag"}, mid.Required)
}

func TestFromSchema_Composites(t *testing.T) {
	members := []ir.SubSchema{
		ir.NewProperties(ir.P("a", &ir.String{})),
		&ir.Ref{Ref: "User"},
	}
	tests := []struct {
		mode ir.CompositeMode
		pick func(*js.Schema) []*js.Schema
	}{
		{ir.AllOf, func(s *js.Schema) []*js.Schema { return s.AllOf }},
		{ir.AnyOf, func(s *js.Schema) []*js.Schema { return s.AnyOf }},
		{ir.OneOf, func(s *js.Schema) []*js.Schema { return s.OneOf }},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := tt.pick(jsonschema.FromSchema(&ir.Composite{Mode: tt.mode, SubSchemas: members}))
			require.Len(t, got, 2)
			assert.Equal(t, "object", got[0].Type)
			assert.Equal(t, "#/$defs/User", got[1].Ref)
		})
	}
}

func TestFromEntity_Definitions(t *testing.T) {
	s := jsonschema.FromEntity(ir.Entity{
		Name: "post",
		Schema: ir.NewProperties(
			ir.P("author", &ir.Ref{Ref: "User"}),
			ir.P("tags", &ir.Array{Items: &ir.Ref{Ref: "Tag"}}),
			ir.P("editor", &ir.Ref{Ref: "User"}),
		),
	})
	assert.Equal(t, "Post", s.Title)
	assert.Equal(t, js.Version, s.Version)
	require.Len(t, s.Definitions, 2)
	assert.Contains(t, s.Definitions, "User")
	assert.Contains(t, s.Definitions, "Tag")
}

func TestFromEntity_DefinitionsFromCompositeAndNestedObjects(t *testing.T) {
	s := jsonschema.FromEntity(ir.Entity{
		Name: "feed",
		Schema: &ir.Composite{Mode: ir.OneOf, SubSchemas: []ir.SubSchema{
			&ir.Ref{Ref: "Post"},
			ir.NewProperties(ir.P("meta", &ir.Object{Properties: ir.NewProperties(
				ir.P("owner", &ir.Ref{Ref: "User"}),
				ir.P("rows", &ir.Array{Items: &ir.Array{Items: &ir.Ref{Ref: "Cell"}}}),
			)})),
		}},
	})
	require.Len(t, s.Definitions, 3)
	for _, name := range []string{"Post", "User", "Cell"} {
		assert.Contains(t, s.Definitions, name)
	}
}

func TestFromRoute(t *testing.T) {
	r := ir.Route{
		Path:    "/posts/:postId",
		Method:  "get",
		Summary: "Retrieve one post",
		PathVariables: ir.NewProperties(
			ir.P("postId", &ir.String{Common: ir.Common{Required: true}}),
		),
		Responses: []ir.Response{
			{Code: "200", Description: "ok", Schema: ir.NewProperties(ir.P("author", &ir.Ref{Ref: "User"}))},
			{Code: "404", Description: "missing"},
		},
	}
	s := jsonschema.FromRoute(r)
	assert.Equal(t, "GetPost", s.Title)
	assert.Equal(t, "Retrieve one post", s.Description)
	_, hasQuery := s.Properties.Get("queryVariables")
	assert.False(t, hasQuery)

	responses, ok := s.Properties.Get("responses")
	require.True(t, ok)
	notFound, _ := responses.Properties.Get("404")
	assert.Equal(t, "missing", notFound.Description)
	assert.Contains(t, s.Definitions, "User")

	out, err := jsonschema.Marshal(s)
	require.NoError(t, err)
	text := string(out)
	assert.Less(t, strings.Index(text, `"pathVariables"`), strings.Index(text, `"responses"`))
	assert.Less(t, strings.Index(text, `"200"`), strings.Index(text, `"404"`))

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "GetPost", back["title"])
}
