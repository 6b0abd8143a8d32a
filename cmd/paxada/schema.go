package main

import (
	"fmt"

	js "github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/jsonschema"
	"github.com/Rifhice/paxada/logging"
	"github.com/Rifhice/paxada/source"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <doc>",
		Short: "Print the JSON Schema of a doc file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, diags, err := source.LoadFile(args[0])
			if err != nil {
				if iss, ok := paxada.AsIssues(err); ok {
					a.logIssues(iss)
				}
				return err
			}
			logging.LogDiagnostics(a.logger, diags)
			out := cmd.OutOrStdout()
			for _, doc := range docs {
				var s *js.Schema
				switch doc.Kind {
				case ir.DocEntity:
					s = jsonschema.FromEntity(*doc.Entity)
				case ir.DocRoute:
					s = jsonschema.FromRoute(*doc.Route)
				}
				data, err := jsonschema.Marshal(s)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
}
