package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roadtrip/roadtrip/internal/graphstore"
	"github.com/roadtrip/roadtrip/internal/prompt"
	"github.com/roadtrip/roadtrip/internal/repository"
	"github.com/roadtrip/roadtrip/internal/service"
)

func newRouteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the shortest route between two countries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.loadRoadTrip()
			if err != nil {
				return err
			}
			route, err := rt.ShortestPath(args[0], args[1])
			if err != nil {
				return withSuggestions(rt, err, args[0], args[1])
			}
			return prompt.WriteRoute(cmd.OutOrStdout(), args[0], args[1], rt.FormatRoute(route))
		},
	}
}

func newDistanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distance FROM TO",
		Short: "Print the capital distance across the border between two neighbors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.loadRoadTrip()
			if err != nil {
				return err
			}
			for _, name := range args {
				if _, err := rt.Lookup(name); err != nil {
					return withSuggestions(rt, err, name)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s km.\n", rt.DirectDistance(args[0], args[1]))
			return err
		},
	}
}

func newCountriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries of the border graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := a.loadRoadTrip()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range rt.Countries() {
				marker := ""
				if c.Provisional {
					marker = "*"
				}
				var others []string
				if len(c.Aliases) > 1 {
					others = c.Aliases[1:]
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\n", c.ID, marker, c.DisplayName, strings.Join(others, ", "))
			}
			return w.Flush()
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the resolved border graph to Neo4j (GRAPH_URI)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := a.loadRoadTrip()
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = a.cfg.Export.Workers
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Export.Timeout)
			defer cancel()

			client, err := graphstore.NewNeo4jClient(ctx, graphstore.Options{
				URI:            a.cfg.Graph.URI,
				Database:       a.cfg.Graph.Database,
				Username:       a.cfg.Graph.Username,
				Password:       a.cfg.Graph.Password,
				MaxConnections: a.cfg.Graph.MaxConnections,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := client.Close(context.Background()); err != nil {
					a.logger.Warn("closing graph client failed", "error", err)
				}
			}()
			a.logger.Info("connected to graph", "uri", a.cfg.Graph.URI, "database", a.cfg.Graph.Database)

			return a.export(ctx, rt, client, workers, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent export workers (EXPORT_WORKERS)")
	return cmd
}

func (a *app) export(ctx context.Context, rt *service.RoadTrip, client graphstore.Client, workers int, out io.Writer) error {
	start := time.Now()
	stats, err := service.NewBulkExporter(repository.New(client), workers).Export(ctx, rt)
	if err != nil {
		return errors.Wrap(err, "export graph")
	}
	a.logger.Info("export complete", "duration", time.Since(start).String(), "countries", stats.Countries, "borders", stats.Borders)
	_, err = fmt.Fprintf(out, "exported %d countries and %d borders\n", stats.Countries, stats.Borders)
	return err
}

func withSuggestions(rt *service.RoadTrip, err error, names ...string) error {
	if !errors.Is(err, service.ErrUnknownCountry) {
		return err
	}
	for _, name := range names {
		if _, lookupErr := rt.Lookup(name); lookupErr == nil {
			continue
		}
		if hints := rt.Suggest(name); len(hints) > 0 {
			return errors.WithHintf(err, "did you mean: %s?", strings.Join(hints, ", "))
		}
	}
	return err
}
