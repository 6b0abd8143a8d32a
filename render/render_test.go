package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/render"
	"github.com/Rifhice/paxada/source"
)

func req() ir.Common { return ir.Common{Required: true} }

func contents(files []render.File) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[filepath.ToSlash(f.Path)] = string(f.Content)
	}
	return out
}

func TestEntityFiles(t *testing.T) {
	data, _, err := paxada.ExtractEntity(ir.Entity{
		Name: "Post",
		Schema: ir.NewProperties(
			ir.P("content", &ir.String{Common: req()}),
			ir.P("author", &ir.Ref{Ref: "User", Common: req()}),
		),
	})
	require.NoError(t, err)

	files, err := render.EntityFiles(render.DefaultLayout, data)
	require.NoError(t, err)
	got := contents(files)
	require.Len(t, got, 5)

	model := got["src/entities/Post/persistance/Post.model.ts"]
	assert.Contains(t, model, `content: { type: String, required: true }`)
	assert.Contains(t, model, `model<PostDocument>("Post", PostSchema)`)

	ifaces := got["src/entities/Post/persistance/Post.interfaces.ts"]
	assert.Contains(t, ifaces, "type ObjectId = Types.ObjectId;")
	assert.Contains(t, ifaces, "export interface PostInterface<A = ObjectId> {")
	assert.Contains(t, ifaces, "export interface PostDocument<A = ObjectId> extends PostInterface<A>, Document {}")

	assert.Contains(t, got, "src/entities/Post/persistance/Post.dao.ts")
	assert.Contains(t, got, "src/entities/Post/Post.services.ts")
	assert.Contains(t, got, "src/entities/Post/Post.subscribers.ts")

	for _, f := range files {
		scaffold := strings.HasSuffix(f.Path, ".dao.ts") || strings.HasSuffix(f.Path, ".services.ts") || strings.HasSuffix(f.Path, ".subscribers.ts")
		assert.Equal(t, scaffold, f.Scaffold, f.Path)
	}
}

func TestEntityFiles_CompositeFallsBackToEmptyBodies(t *testing.T) {
	data, _, err := paxada.ExtractEntity(ir.Entity{Name: "Post", Schema: &ir.Composite{Mode: ir.AnyOf}},
		paxada.WithDefaultGeneric("string"))
	require.NoError(t, err)
	files, err := render.EntityFiles(render.DefaultLayout, data)
	require.NoError(t, err)
	got := contents(files)
	assert.Contains(t, got["src/entities/Post/persistance/Post.interfaces.ts"], "export interface PostInterface {}")
	assert.NotContains(t, got["src/entities/Post/persistance/Post.interfaces.ts"], "type ObjectId")
	assert.Contains(t, got["src/entities/Post/persistance/Post.model.ts"], "new Schema(\n  {},")
}

func TestRouteFiles(t *testing.T) {
	data, _, err := paxada.ExtractRoute(ir.Route{
		Path:   "/posts/:postId",
		Method: "put",
		PathVariables: ir.NewProperties(
			ir.P("postId", &ir.String{Common: req()}),
		),
		QueryVariables: ir.NewProperties(ir.P("mini", &ir.Boolean{})),
		Body:           ir.NewProperties(ir.P("content", &ir.String{Common: req()})),
		Responses: []ir.Response{
			{Code: "200", Schema: ir.NewProperties(ir.P("id", &ir.String{Common: req()}))},
		},
		Private: true,
	}, paxada.WithRouteID(7))
	require.NoError(t, err)

	files, err := render.RouteFiles(render.DefaultLayout, data)
	require.NoError(t, err)
	got := contents(files)
	dir := "src/routes/private/Posts/UpdatePost/"

	validators := got[dir+"UpdatePost.validators.ts"]
	assert.Contains(t, validators, `import { body, param, query } from "express-validator";`)
	assert.Contains(t, validators, `body('content').isString().trim().not().isEmpty().withMessage({ code: 0,`)

	index := got[dir+"UpdatePost.index.ts"]
	assert.Contains(t, index, "routeId(7),")
	assert.Contains(t, index, `import { sanityzeBody, sanityzeQuery } from "middlewares/sanitize";`)
	assert.Contains(t, index, `sanityzeBody(["content"]),`)
	assert.Contains(t, index, `sanityzeQuery(["mini"]),`)

	route := got[dir+"UpdatePost.route.ts"]
	assert.Contains(t, route, "import { UpdatePostPath, UpdatePostQuery, UpdatePostBody, UpdatePostResponse200 }")
	assert.Contains(t, route, "res: Response<UpdatePostResponse200>")
	assert.Contains(t, route, "const body = req.body as UpdatePostBody;")
	assert.Contains(t, route, "const param = (req.params as unknown) as UpdatePostPath;")

	ifaces := got[dir+"UpdatePost.interfaces.ts"]
	assert.Contains(t, ifaces, "export interface UpdatePostPath {postId: string}")
}

func TestDocScaffolds_Decode(t *testing.T) {
	ef, err := render.EntityDocScaffold(render.DefaultLayout, "blog post")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "entities", "BlogPost", "BlogPost.doc.yaml"), ef.Path)
	docs, _, err := source.Decode(ef.Content, ef.Path)
	require.NoError(t, err)
	assert.Equal(t, "BlogPost", docs[0].Entity.Name)

	rf, err := render.RouteDocScaffold(render.DefaultLayout, render.RouteScaffold{Method: "POST", Path: "/posts/:postId/comments"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "routes", "public", "Posts", "Comments", "CreateComment", "CreateComment.doc.yaml"), rf.Path)
	docs, _, err = source.Decode(rf.Content, rf.Path)
	require.NoError(t, err, string(rf.Content))
	r := docs[0].Route
	assert.Equal(t, "post", r.Method)
	assert.Equal(t, "Posts", r.Tag)
	assert.Equal(t, []string{"postId"}, r.PathVariables.(*ir.Properties).Keys())
	assert.NotNil(t, r.Body)

	rf, err = render.RouteDocScaffold(render.DefaultLayout, render.RouteScaffold{Method: "get", Path: "/posts"})
	require.NoError(t, err)
	docs, _, err = source.Decode(rf.Content, rf.Path)
	require.NoError(t, err, string(rf.Content))
	assert.Equal(t, 0, docs[0].Route.PathVariables.(*ir.Properties).Len())
	assert.Nil(t, docs[0].Route.Body)

	_, err = render.RouteDocScaffold(render.DefaultLayout, render.RouteScaffold{Method: "get", Path: "/:id"})
	assert.ErrorIs(t, err, paxada.ErrMissingRequiredInput)
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	files := []render.File{
		{Path: "a/gen.ts", Content: []byte("v1")},
		{Path: "a/user.ts", Content: []byte("v1"), Scaffold: true},
	}
	w := &render.Writer{Root: root}
	rep, err := w.Write(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/gen.ts", "a/user.ts"}, rep.Written)

	files[0].Content, files[1].Content = []byte("v2"), []byte("v2")
	rep, err = w.Write(files)
	require.NoError(t, err)
	assert.Empty(t, rep.Written)
	assert.Len(t, rep.Skipped, 2)

	w.Force = true
	rep, err = w.WriteAll(files[:1], files[1:])
	require.NoError(t, err)
	assert.Equal(t, []string{"a/gen.ts"}, rep.Written)
	assert.Equal(t, []string{"a/user.ts"}, rep.Skipped)

	gen, _ := os.ReadFile(filepath.Join(root, "a/gen.ts"))
	user, _ := os.ReadFile(filepath.Join(root, "a/user.ts"))
	assert.Equal(t, "v2", string(gen))
	assert.Equal(t, "v1", string(user))
}

func TestNextRouteID(t *testing.T) {
	root := t.TempDir()
	id, err := render.NextRouteID(filepath.Join(root, "missing"))
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	for _, p := range []string{"a/A.route.ts", "b/c/C.route.ts", "b/c/C.index.ts"} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	id, err = render.NextRouteID(root)
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}
