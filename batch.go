package paxada

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

// Result is the outcome of assembling one document.
type Result struct {
	Doc         ir.Document
	Entity      *EntityData
	Route       *RouteData
	Diagnostics diag.List
	Err         error
}

// ExtractAll assembles independent documents concurrently, at most limit at
// a time (limit <= 0 means unbounded). Results keep the order of docs.
// Per-document failures are reported in Result.Err; the returned error is
// only set when ctx is done before every document was handled.
func ExtractAll(ctx context.Context, docs []ir.Document, limit int, opts ...Option) ([]Result, error) {
	results := make([]Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Extract(doc, opts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Extract assembles a single document.
func Extract(doc ir.Document, opts ...Option) Result {
	res := Result{Doc: doc}
	switch {
	case doc.Kind == ir.DocEntity && doc.Entity != nil:
		res.Entity, res.Diagnostics, res.Err = ExtractEntity(*doc.Entity, opts...)
	case doc.Kind == ir.DocRoute && doc.Route != nil:
		res.Route, res.Diagnostics, res.Err = ExtractRoute(*doc.Route, opts...)
	default:
		res.Err = &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("document %q holds no %s", doc.File, doc.Kind)}
	}
	return res
}
