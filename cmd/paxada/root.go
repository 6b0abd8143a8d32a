package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/config"
	"github.com/Rifhice/paxada/logging"
	"github.com/Rifhice/paxada/render"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	cfg    *config.Config
	layout render.Layout
	force  bool
	logger *logrus.Entry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "paxada",
		Short:         "Generate models, interfaces and validators from doc files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to paxada.yml config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().BoolVar(&a.force, "force", false, "Overwrite generated files that already exist")
	cmd.PersistentFlags().String("lang", "", "Language of validation messages (en, fr)")

	cmd.AddCommand(
		newEntityCmd(a),
		newRouteCmd(a),
		newGenerateCmd(a),
		newSchemaCmd(a),
		newWatchCmd(a),
		newHistoryCmd(a),
	)
	return cmd
}

// setup loads the config and applies the persistent flags on top of it.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var cwd string
		if cwd, err = os.Getwd(); err == nil {
			cfg, err = config.LoadDefault(cwd)
		}
	}
	if err != nil {
		return err
	}

	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	if jsonOut, _ := flags.GetBool("json"); jsonOut {
		cfg.Logging.Format = "json"
	}
	if lang, _ := flags.GetString("lang"); lang != "" {
		cfg.Language = lang
	}
	logging.Configure(cfg.Logging)

	a.cfg = cfg
	a.layout = render.Layout{
		EntitiesDir: cfg.Rel(cfg.EntitiesDir),
		RoutesDir:   cfg.Rel(cfg.RoutesDir),
	}
	a.logger = logging.NewLogger("cli")
	a.logger.Debugf("config: root=%s source=%s", cfg.Root(), cfg.SourceDir)
	return nil
}

func (a *app) options() []paxada.Option {
	return []paxada.Option{
		paxada.WithDefaultGeneric(a.cfg.DefaultGeneric),
		paxada.WithLanguage(a.cfg.Language),
	}
}

func (a *app) writer() *render.Writer {
	return &render.Writer{Root: a.cfg.Root(), Force: a.force}
}
