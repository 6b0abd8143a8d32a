// Package paxada turns Variable schema docs into the text of a TypeScript
// Express/Mongoose backend:
//
// - TypeScript interfaces (tstype)
// - Mongoose schema literals (mongoose)
// - express-validator chains and request sanitizers (validator)
// - JSON Schema documents (jsonschema)
//
// The root package assembles those renderers per entity and per route into
// the records consumed by the templates under render/. Renderers are pure:
// non-fatal problems come back as diag.List values, and only a missing name
// that cannot be derived is returned as an error.
//
// Typical usage:
//
//	docs, _, err := source.LoadFile("src/entities/Post/Post.doc.yaml")
//	data, diags, err := paxada.ExtractEntity(*docs[0].Entity)
//	files, err := render.EntityFiles(render.DefaultLayout, data)
package paxada
