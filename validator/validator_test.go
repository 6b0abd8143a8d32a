package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/i18n"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/validator"
)

func req() ir.Common { return ir.Common{Required: true} }

func paths(entries []validator.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestStringChain(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.String
		want string
	}{
		{"optional", &ir.String{}, ".optional().isString().trim().not().isEmpty()"},
		{"required", &ir.String{Common: req()}, ".isString().trim().not().isEmpty()"},
		{"enum", &ir.String{Common: req(), Enum: []string{"a", "b"}}, `.isString().trim().not().isEmpty().isIn(["a","b"])`},
		{"pattern", &ir.String{Common: req(), Pattern: "^[a-z]+$"}, `.isString().trim().not().isEmpty().matches("^[a-z]+$")`},
		{"min max", &ir.String{Common: req(), MinLength: ir.Int(3), MaxLength: ir.Int(5)}, ".isString().trim().not().isEmpty().isLength({ min: 3, max: 5 })"},
		{"max only", &ir.String{Common: req(), MaxLength: ir.Int(0)}, ".isString().trim().not().isEmpty().isLength({ max: 0 })"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.StringChain(tt.in))
		})
	}
}

func TestDateChain(t *testing.T) {
	assert.Equal(t, ".optional().isString().trim().not().isEmpty().isDate()", validator.DateChain(&ir.Date{}))
}

func TestNumberChain(t *testing.T) {
	assert.Equal(t, ".optional().isNumeric()", validator.NumberChain(&ir.Number{}))
	n := &ir.Number{
		Common:           req(),
		Maximum:          ir.Float(10),
		Minimum:          ir.Float(0),
		ExclusiveMaximum: ir.Float(11),
		ExclusiveMinimum: ir.Float(-1),
		MultipleOf:       ir.Float(2),
	}
	assert.Equal(t,
		".isNumeric().custom((value: number) => value > -1&&value < 11&&value >= 0&&value <= 10&&value % 2 === 0)",
		validator.NumberChain(n))
}

func TestBooleanChain(t *testing.T) {
	assert.Equal(t, ".optional().isBoolean()", validator.BooleanChain(&ir.Boolean{}))
	assert.Equal(t, ".isBoolean()", validator.BooleanChain(&ir.Boolean{Common: req()}))
}

func TestArrayChains_ItemsForcedRequired(t *testing.T) {
	a := &ir.Array{Items: &ir.Boolean{}}
	assert.Equal(t, []string{".optional().isArray()", ".isBoolean()"}, validator.ArrayChains(a))
	// the source node is not mutated
	assert.False(t, a.Items.Attrs().Required)

	assert.Equal(t, []string{".isArray()"}, validator.ArrayChains(&ir.Array{Common: req(), Items: &ir.Object{}}))
}

func TestChains_ObjectAndRefHaveNone(t *testing.T) {
	assert.Empty(t, validator.Chains(&ir.Object{}))
	assert.Empty(t, validator.Chains(&ir.Ref{Ref: "User"}))
	assert.Len(t, validator.Chains(&ir.String{}), 1)
}

func TestWithKey_NestedPathExpansion(t *testing.T) {
	v := &ir.Array{Items: &ir.Array{Items: &ir.Object{Properties: ir.NewProperties(
		ir.P("id", &ir.Number{}),
		ir.P("bool", &ir.Object{Properties: ir.NewProperties(ir.P("bool", &ir.Boolean{}))}),
	)}}}
	entries, next, d := validator.WithKey(v, "array", 0)
	require.Empty(t, d)
	assert.Equal(t, []string{"array", "array.*", "array.*.*.id", "array.*.*.bool.bool"}, paths(entries))
	assert.Equal(t, 4, next)
	for i, e := range entries {
		assert.Equal(t, i, e.Code)
	}
	assert.Equal(t, "('array.*.*.id').optional().isNumeric()", entries[2].String())
	assert.Equal(t, "Validation for array.*.*.bool.bool failed, should be a boolean", entries[3].Message)
}

func TestWithKey_ScalarItems(t *testing.T) {
	entries, next, _ := validator.WithKey(&ir.Array{Common: req(), Items: &ir.String{}}, "tags", 7)
	require.Len(t, entries, 2)
	assert.Equal(t, "('tags').isArray()", entries[0].String())
	assert.Equal(t, "('tags.*').isString().trim().not().isEmpty()", entries[1].String())
	assert.Equal(t, "string", entries[1].Kind)
	assert.Equal(t, 8, entries[1].Code)
	assert.Equal(t, 9, next)
}

func TestWithKey_RefIsDropped(t *testing.T) {
	v := &ir.Object{Properties: ir.NewProperties(
		ir.P("author", &ir.Ref{Ref: "User"}),
		ir.P("title", &ir.String{}),
	)}
	entries, next, d := validator.WithKey(v, "post", 0)
	assert.Equal(t, []string{"post.title"}, paths(entries))
	assert.Equal(t, 1, next)
	require.Len(t, d, 1)
	assert.Equal(t, diag.CodeRefInValidators, d[0].Code)
	assert.Equal(t, "post.author", d[0].Path)
}

func TestBuild_ObjectThreadsLines(t *testing.T) {
	s := ir.NewProperties(
		ir.P("name", &ir.String{Common: req()}),
		ir.P("tags", &ir.Array{Items: &ir.String{}}),
		ir.P("age", &ir.Number{}),
	)
	entries, next, d := validator.Build(s, 10, validator.WithLocation("body"))
	assert.Empty(t, d)
	assert.Equal(t, 14, next)
	assert.Equal(t, []string{"name", "tags", "tags.*", "age"}, paths(entries))
	assert.Equal(t, "body('name').isString().trim().not().isEmpty()", entries[0].String())
	assert.Equal(t, 13, entries[3].Code)
	assert.Equal(t,
		`body('age').optional().isNumeric().withMessage({ code: 13, message: "Validation for age failed, should be a number" })`,
		entries[3].WithMessage())
}

func TestBuild_AllOfConcatenatesAndSkipsRefs(t *testing.T) {
	s := &ir.Composite{Mode: ir.AllOf, SubSchemas: []ir.SubSchema{
		ir.NewProperties(ir.P("a", &ir.String{})),
		&ir.Ref{Ref: "User"},
		ir.NewProperties(ir.P("b", &ir.Boolean{}), ir.P("c", &ir.Boolean{})),
	}}
	entries, next, d := validator.Build(s, 0)
	assert.Equal(t, []string{"a", "b", "c"}, paths(entries))
	assert.Equal(t, 3, next)
	require.Len(t, d, 1)
	assert.Equal(t, diag.CodeRefInAllOf, d[0].Code)
}

func TestBuild_AnyOfCombinator(t *testing.T) {
	for _, mode := range []ir.CompositeMode{ir.AnyOf, ir.OneOf} {
		s := &ir.Composite{Mode: mode, SubSchemas: []ir.SubSchema{
			ir.NewProperties(ir.P("email", &ir.String{Common: req()})),
			&ir.Ref{Ref: "User"},
			ir.NewProperties(ir.P("phone", &ir.String{Common: req()}), ir.P("code", &ir.Number{Common: req()})),
		}}
		entries, next, d := validator.Build(s, 5, validator.WithLocation("body"))
		require.Len(t, entries, 1)
		assert.Equal(t, 6, next)

		e := entries[0]
		assert.Equal(t, 5, e.Code)
		assert.Equal(t, mode.String(), e.Kind)
		assert.True(t, strings.HasPrefix(e.String(), "body().custom(async (value, { req }) => {"))
		assert.Contains(t, e.Chain, "[body('email').isString().trim().not().isEmpty()]")
		assert.Contains(t, e.Chain, "[body('phone').isString().trim().not().isEmpty(), body('code').isNumeric()]")
		assert.Contains(t, e.Chain, "chain.run(req, { dryRun: true })")
		assert.Contains(t, e.Chain, "results.every((result) => result.isEmpty())")
		assert.NotContains(t, e.Chain, "User")
		assert.Equal(t, 2, strings.Count(e.Chain, "    ["), "one group per non-ref member")

		require.Len(t, d, 1)
		assert.Equal(t, diag.CodeRefInAlternative, d[0].Code)
	}
}

func TestBuild_AlternativesWithoutLocationUseCheck(t *testing.T) {
	s := &ir.Composite{Mode: ir.AnyOf, SubSchemas: []ir.SubSchema{ir.NewProperties(ir.P("a", &ir.Boolean{}))}}
	entries, _, _ := validator.Build(s, 0)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Chain, "[check('a').optional().isBoolean()]")
	assert.True(t, strings.HasPrefix(entries[0].String(), "().custom("))
}

func TestBuild_OnlyRefAlternativesRejectEverything(t *testing.T) {
	s := &ir.Composite{Mode: ir.OneOf, SubSchemas: []ir.SubSchema{&ir.Ref{Ref: "A"}, &ir.Ref{Ref: "B"}}}
	entries, next, d := validator.Build(s, 3, validator.WithLocation("body"))
	require.Len(t, entries, 1)
	assert.Equal(t, 4, next)
	assert.Len(t, d, 2)

	e := entries[0]
	assert.Equal(t, 3, e.Code)
	assert.Equal(t, "oneOf", e.Kind)
	assert.True(t, strings.HasPrefix(e.String(), "body().custom(() => {"))
	assert.Contains(t, e.Chain, "throw new Error(")
	assert.NotContains(t, e.Chain, "return true")
	assert.NotContains(t, e.Chain, "alternatives = [")
	assert.NotEmpty(t, e.Message)
}

func TestBuild_Translator(t *testing.T) {
	s := ir.NewProperties(ir.P("a", &ir.Boolean{}))
	entries, _, _ := validator.Build(s, 0, validator.WithTranslator(i18n.Dict("fr")))
	require.Len(t, entries, 1)
	assert.Equal(t, "La validation de a a échoué, boolean attendu", entries[0].Message)
}

func TestSanitizer_KeyList(t *testing.T) {
	p := ir.NewProperties(
		ir.P("a", &ir.String{}),
		ir.P("b", &ir.Array{Items: &ir.Object{}}),
	)
	assert.Equal(t, `["a","b"]`, validator.Sanitizer(p))
}

func TestSanitizer_Destructure(t *testing.T) {
	p := ir.NewProperties(
		ir.P("a", &ir.String{}),
		ir.P("b", &ir.Object{Properties: ir.NewProperties(
			ir.P("c", &ir.Number{}),
			ir.P("d", &ir.Object{Properties: ir.NewProperties(ir.P("e", &ir.Boolean{}))}),
		)}),
	)
	assert.Equal(t, "({a,b: {c,d: {e}}}) => {\n  return {a,b: {c,d: {e}}}\n}", validator.Sanitizer(p))
}

func TestSchemaSanitizer_Composite(t *testing.T) {
	got, d := validator.SchemaSanitizer(&ir.Composite{Mode: ir.AllOf})
	assert.Empty(t, got)
	require.Len(t, d, 1)
	assert.Equal(t, diag.CodeCompositeSanitizer, d[0].Code)

	got, d = validator.SchemaSanitizer(ir.NewProperties(ir.P("x", &ir.String{})))
	assert.Equal(t, `["x"]`, got)
	assert.Empty(t, d)
}
