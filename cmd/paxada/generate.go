package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/logging"
	"github.com/Rifhice/paxada/render"
	"github.com/Rifhice/paxada/source"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate the files of every doc file under the source directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SourceDir
			if len(args) == 1 {
				dir = args[0]
			}
			_, err := a.generate(cmd.Context(), dir, nil)
			return err
		},
	}
}

// generate loads every doc under dir and writes the outputs of the documents
// accepted by keep (all of them when keep is nil). Route ids follow the
// lexical order of the route docs under dir. It returns the number of
// documents generated.
func (a *app) generate(ctx context.Context, dir string, keep func(file string) bool) (int, error) {
	docs, diags, loadErr := source.LoadDir(dir)
	if loadErr != nil {
		iss, ok := paxada.AsIssues(loadErr)
		if !ok {
			return 0, loadErr
		}
		a.logIssues(iss)
	}
	logging.LogDiagnostics(a.logger, diags)

	ids := routeIDs(docs)
	var (
		selected []ir.Document
		selIDs   []int
	)
	for i, doc := range docs {
		if keep == nil || keep(doc.File) {
			selected = append(selected, doc)
			selIDs = append(selIDs, ids[i])
		}
	}

	n, err := a.build(ctx, selected, selIDs)
	if err != nil {
		return n, err
	}
	if loadErr != nil {
		return n, fmt.Errorf("some doc files are invalid: %w", loadErr)
	}
	return n, nil
}

// build assembles docs and writes their files. ids holds the route id of
// each document, ignored for entities.
func (a *app) build(ctx context.Context, docs []ir.Document, ids []int) (int, error) {
	results, err := paxada.ExtractAll(ctx, docs, a.cfg.Concurrency, a.options()...)
	if err != nil {
		return 0, err
	}

	w := a.writer()
	var (
		built  int
		failed []error
	)
	for i, res := range results {
		log := a.logger.WithField("file", a.cfg.Rel(res.Doc.File))
		if res.Err != nil {
			log.WithError(res.Err).Error("cannot generate")
			failed = append(failed, fmt.Errorf("%s: %w", a.cfg.Rel(res.Doc.File), res.Err))
			continue
		}
		logging.LogDiagnostics(log, res.Diagnostics)
		if res.Route != nil {
			res.Route.RouteID = ids[i]
		}
		files, err := render.Files(a.layout, res)
		if err != nil {
			return built, err
		}
		rep, err := w.Write(files)
		for _, p := range rep.Written {
			log.Infof("wrote %s", p)
		}
		for _, p := range rep.Skipped {
			log.Debugf("kept %s", p)
		}
		if err != nil {
			return built, err
		}
		built++
	}
	return built, errors.Join(failed...)
}

func (a *app) logIssues(iss paxada.Issues) {
	for _, it := range iss {
		log := a.logger.WithField("code", it.Code).WithField("path", it.Path)
		if it.File != "" {
			log = log.WithField("file", a.cfg.Rel(it.File))
		}
		if it.Line > 0 {
			log = log.WithField("line", it.Line)
		}
		log.Error(it.Message)
	}
}

// routeIDs numbers the route documents from 1, in order.
func routeIDs(docs []ir.Document) []int {
	ids := make([]int, len(docs))
	next := 1
	for i, doc := range docs {
		if doc.Kind == ir.DocRoute {
			ids[i] = next
			next++
		}
	}
	return ids
}

// sameFile returns a filter accepting only path.
func sameFile(path string) func(string) bool {
	want := filepath.Clean(path)
	return func(file string) bool { return filepath.Clean(file) == want }
}
