package main

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roadtrip/roadtrip/internal/config"
	"github.com/roadtrip/roadtrip/internal/dataset"
	"github.com/roadtrip/roadtrip/internal/identity"
	"github.com/roadtrip/roadtrip/internal/logging"
	"github.com/roadtrip/roadtrip/internal/prompt"
	"github.com/roadtrip/roadtrip/internal/service"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger

	envFile    string
	borders    string
	capdist    string
	stateNames string
	overrides  string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "roadtrip [borders capdist state_names]",
		Short: "Find the shortest road trip between two countries by crossing land borders.",
		Long: "Reads the border, capital distance and state name datasets and answers\n" +
			"shortest route queries interactively until EXIT is typed.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return errors.Newf("expected 0 or 3 dataset paths, got %d", len(args))
			}
			return nil
		},
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "optional file of environment variables")
	flags.StringVar(&a.borders, "borders", "", "path to the border dataset (ROADTRIP_BORDERS)")
	flags.StringVar(&a.capdist, "capdist", "", "path to the capital distance dataset (ROADTRIP_CAPDIST)")
	flags.StringVar(&a.stateNames, "state-names", "", "path to the state name dataset (ROADTRIP_STATE_NAMES)")
	flags.StringVar(&a.overrides, "overrides", "", "extra YAML name override table (ROADTRIP_OVERRIDES)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	root.AddCommand(
		newRouteCommand(a),
		newDistanceCommand(a),
		newCountriesCommand(a),
		newExportCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if len(args) == 3 && cmd.Root() == cmd {
		cfg.Data.Borders, cfg.Data.Distances, cfg.Data.StateNames = args[0], args[1], args[2]
	}
	overrideIfSet(&cfg.Data.Borders, a.borders)
	overrideIfSet(&cfg.Data.Distances, a.capdist)
	overrideIfSet(&cfg.Data.StateNames, a.stateNames)
	overrideIfSet(&cfg.Resolver.OverridesPath, a.overrides)

	a.cfg = cfg
	a.logger = logging.New(cfg.Logging, cmd.ErrOrStderr()).With("command", cmd.Name())
	return nil
}

func overrideIfSet(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// paths fills the dataset paths that were not given explicitly from the
// data directory.
func (a *app) paths() dataset.Paths {
	paths := dataset.PathsIn(a.cfg.Data.Dir)
	overrideIfSet(&paths.Borders, a.cfg.Data.Borders)
	overrideIfSet(&paths.Distances, a.cfg.Data.Distances)
	overrideIfSet(&paths.StateNames, a.cfg.Data.StateNames)
	return paths
}

func (a *app) loadRoadTrip() (*service.RoadTrip, error) {
	overrides := identity.DefaultOverrides()
	if path := a.cfg.Resolver.OverridesPath; path != "" {
		extra, err := identity.LoadOverrides(path)
		if err != nil {
			return nil, err
		}
		overrides.Merge(extra)
	}

	paths := a.paths()
	a.logger.Debug("loading datasets", "borders", paths.Borders, "capdist", paths.Distances, "state_names", paths.StateNames)
	rt, err := service.Load(paths, service.Options{
		CurrentDate:         a.cfg.Data.CurrentDate,
		Overrides:           overrides,
		Suggestions:         a.cfg.Resolver.Suggestions,
		SuggestionCacheSize: a.cfg.Resolver.SuggestionCacheSize,
		Logger:              a.logger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "load datasets")
	}
	return rt, nil
}

func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	rt, err := a.loadRoadTrip()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	loop := prompt.NewLoop(rt, prompt.NewAsker(cmd.InOrStdin(), out), out, a.logger)
	return loop.Run(cmd.Context())
}
