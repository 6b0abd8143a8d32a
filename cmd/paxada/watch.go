package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Regenerate outputs whenever a doc file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SourceDir
			if len(args) == 1 {
				dir = args[0]
			}
			ctx := cmd.Context()
			if _, err := a.generate(ctx, dir, nil); err != nil {
				a.logger.WithError(err).Error("initial generation failed")
			}
			w, err := watch.New(dir, debounce, func(ctx context.Context, files []string) {
				changed := make(map[string]bool, len(files))
				for _, f := range files {
					changed[f] = true
				}
				if _, err := a.generate(ctx, dir, func(file string) bool { return changed[file] }); err != nil {
					a.logger.WithError(err).Error("generation failed")
				}
			})
			if err != nil {
				return err
			}
			a.logger.Infof("watching %s", a.cfg.Rel(dir))
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	return cmd
}
