package main

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada/history"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/logging"
	"github.com/Rifhice/paxada/naming"
	"github.com/Rifhice/paxada/render"
	"github.com/Rifhice/paxada/source"
)

func newEntityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "entity <name>",
		Short: "Create an entity doc file, or generate the entity when it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.entity(cmd.Context(), args[0])
		},
	}
}

func newRouteCmd(a *app) *cobra.Command {
	var r render.RouteScaffold
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Create a route doc file, or generate the route when it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.route(cmd.Context(), r)
		},
	}
	cmd.Flags().StringVarP(&r.Method, "method", "m", "", "HTTP method (get, post, put, delete, patch)")
	cmd.Flags().StringVarP(&r.Path, "path", "p", "", "Route path, for example /posts/:postId")
	cmd.Flags().StringVarP(&r.Name, "name", "n", "", "Route name, derived from the method and path when empty")
	cmd.Flags().BoolVar(&r.Private, "private", false, "Place the route under the private routes")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func (a *app) entity(ctx context.Context, name string) error {
	f, err := render.EntityDocScaffold(a.layout, name)
	if err != nil {
		return err
	}
	if err := a.scaffoldOrGenerate(ctx, f); err != nil {
		return err
	}
	a.record(history.Command{Kind: history.KindEntity, Name: naming.Pascal(name)})
	return nil
}

func (a *app) route(ctx context.Context, r render.RouteScaffold) error {
	r.Method = strings.ToLower(r.Method)
	f, err := render.RouteDocScaffold(a.layout, r)
	if err != nil {
		return err
	}
	if err := a.scaffoldOrGenerate(ctx, f); err != nil {
		return err
	}
	a.record(history.Command{Kind: history.KindRoute, Name: r.Name, Method: r.Method, Path: r.Path, Private: r.Private})
	return nil
}

// scaffoldOrGenerate writes the doc file f when it does not exist yet, and
// otherwise generates the outputs of the existing doc.
func (a *app) scaffoldOrGenerate(ctx context.Context, f render.File) error {
	rep, err := a.writer().Write([]render.File{f})
	if err != nil {
		return err
	}
	doc := f.Path
	if !filepath.IsAbs(doc) {
		doc = filepath.Join(a.cfg.Root(), doc)
	}
	if slices.Contains(rep.Written, f.Path) {
		a.logger.Infof("created %s, describe the schema there and run the command again", a.cfg.Rel(doc))
		return nil
	}
	return a.generateFile(ctx, doc)
}

// generateFile generates one doc file. Inside the source directory the
// route id follows the numbering of generate; elsewhere the route gets the
// next free id.
func (a *app) generateFile(ctx context.Context, doc string) error {
	if within(a.cfg.SourceDir, doc) {
		n, err := a.generate(ctx, a.cfg.SourceDir, sameFile(doc))
		if err == nil && n == 0 {
			a.logger.Warnf("nothing generated from %s", a.cfg.Rel(doc))
		}
		return err
	}
	docs, diags, err := source.LoadFile(doc)
	if err != nil {
		return err
	}
	a.logger.Debugf("%s is outside %s", doc, a.cfg.SourceDir)
	logging.LogDiagnostics(a.logger.WithField("file", doc), diags)
	id, err := render.NextRouteID(a.cfg.RoutesDir)
	if err != nil {
		return err
	}
	ids := make([]int, len(docs))
	for i, d := range docs {
		if d.Kind == ir.DocRoute {
			ids[i] = id
			id++
		}
	}
	_, err = a.build(ctx, docs, ids)
	return err
}

// record adds c to the command history. A failure only costs the history
// entry, so it is logged and not returned.
func (a *app) record(c history.Command) {
	c.At = time.Now().UTC()
	if err := history.Record(a.cfg.HistoryFile, c); err != nil {
		a.logger.WithError(err).Warn("cannot record command")
	}
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
