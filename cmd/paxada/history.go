package main

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada/history"
	"github.com/Rifhice/paxada/render"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the last entity and route commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmds, err := history.Load(a.cfg.HistoryFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				data, err := json.MarshalIndent(cmds, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			for i, c := range cmds {
				fmt.Fprintf(out, "%2d  %s  %s\n", i+1, c.At.Local().Format("2006-01-02 15:04"), describe(c))
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run <n>",
		Short: "Run the n-th command of the history again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid history index %q", args[0])
			}
			cmds, err := history.Load(a.cfg.HistoryFile)
			if err != nil {
				return err
			}
			if n < 1 || n > len(cmds) {
				return fmt.Errorf("history has %d entries, no entry %d", len(cmds), n)
			}
			c := cmds[n-1]
			a.logger.Infof("running %s", describe(c))
			switch c.Kind {
			case history.KindEntity:
				return a.entity(cmd.Context(), c.Name)
			case history.KindRoute:
				return a.route(cmd.Context(), render.RouteScaffold{Method: c.Method, Path: c.Path, Name: c.Name, Private: c.Private})
			}
			return fmt.Errorf("unknown command kind %q", c.Kind)
		},
	})
	return cmd
}

func describe(c history.Command) string {
	switch c.Kind {
	case history.KindRoute:
		s := fmt.Sprintf("route %s %s", c.Method, c.Path)
		if c.Name != "" {
			s += " --name " + c.Name
		}
		if c.Private {
			s += " --private"
		}
		return s
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	}
}
