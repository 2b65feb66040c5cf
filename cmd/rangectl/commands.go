package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-range-bot/internal/domain/rangestrategy"
	"github.com/KirkDiggler/dnd-range-bot/internal/repositories/settings"
)

type app struct {
	registry        *rangestrategy.Registry
	defaultStrategy rangestrategy.StrategyID
	settings        settings.Repository
	persistent      bool
	logger          *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "rangectl",
		Short:        "Inspect range tables and change the active range strategy",
		SilenceUsage: true,
	}

	root.AddCommand(
		newStrategiesCmd(a),
		newTableCmd(a),
		newLookupCmd(a),
		newSetStrategyCmd(a),
	)

	return root
}

func newStrategiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the registered range strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := a.activeStrategy(cmd)
			if err != nil {
				return err
			}

			for _, id := range a.registry.IDs() {
				table, err := a.registry.Lookup(id)
				if err != nil {
					return err
				}

				marker := " "
				if id == active {
					marker = "*"
				}
				sentinel := "bounded"
				if table.HasSentinel() {
					sentinel = "open-ended"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d bands, %s)\n", marker, id, table.Len(), sentinel)
			}
			return nil
		},
	}
}

func newTableCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "table [strategy]",
		Short: "Print the bands of a range table",
		Long:  "Print the bands of a range table. Without an argument the active strategy is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.tableFor(cmd, args)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MAX DISTANCE\tPENALTY\tLABEL\tDESCRIPTION")
			for _, band := range table.Bands() {
				fmt.Fprintf(w, "%s\t%+d\t%s\t%s\n", band.MaxDistance, band.Penalty, band.ModifierLabel, band.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			for _, modifier := range rangestrategy.DeriveModifiers(table) {
				fmt.Fprintln(cmd.OutOrStdout(), modifier)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")

	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "lookup <distance>",
		Short: "Show the range band and penalty for a distance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			distance, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid distance %q: %w", args[0], err)
			}

			var tableArgs []string
			if strategy != "" {
				tableArgs = []string{strategy}
			}
			table, err := a.tableFor(cmd, tableArgs)
			if err != nil {
				return err
			}

			band, err := table.BandFor(distance)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (up to %s)\n",
				table.Name(), rangestrategy.FormatModifier(band.Penalty, band.ModifierLabel), band.MaxDistance)
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "strategy to use instead of the active one")

	return cmd
}

func newSetStrategyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-strategy <strategy>",
		Short: "Store the range strategy setting and notify running bots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := rangestrategy.StrategyID(args[0])
			if _, err := a.registry.Lookup(id); err != nil {
				return err
			}

			if err := a.settings.WriteStrategySetting(cmd.Context(), id); err != nil {
				return err
			}
			if !a.persistent {
				a.logger.Warn("No REDIS_URL set, running bots will not see this change")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "range strategy set to %s\n", id)
			return nil
		},
	}
}

// activeStrategy is the stored setting, or the default when none is stored
func (a *app) activeStrategy(cmd *cobra.Command) (rangestrategy.StrategyID, error) {
	id, err := a.settings.ReadStrategySetting(cmd.Context())
	if err != nil {
		return "", err
	}
	if id == "" {
		id = a.defaultStrategy
	}
	return id, nil
}

func (a *app) tableFor(cmd *cobra.Command, args []string) (*rangestrategy.Table, error) {
	if len(args) == 1 {
		return a.registry.Lookup(rangestrategy.StrategyID(args[0]))
	}

	id, err := a.activeStrategy(cmd)
	if err != nil {
		return nil, err
	}
	return a.registry.Lookup(id)
}
