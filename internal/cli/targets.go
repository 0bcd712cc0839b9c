package cli

import (
	"fmt"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the built-in swatch targets",
		Long: `List the six base targets with their saturation and lightness bands.

Each band is shown as minimum/target/maximum. Weights are saturation,
lightness and population, before normalization.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), targetsTable(colour.BaseTargets()).Render())
			return err
		},
	}
}

func targetsTable(targets []colour.Target) *Table {
	table := NewTable([]string{"NAME", "SATURATION", "LIGHTNESS", "WEIGHTS", "EXCLUSIVE"})
	for _, t := range targets {
		table.AddRow([]string{
			t.Name,
			fmt.Sprintf("%.2f/%.2f/%.2f", t.MinimumSaturation, t.TargetSaturation, t.MaximumSaturation),
			fmt.Sprintf("%.2f/%.2f/%.2f", t.MinimumLightness, t.TargetLightness, t.MaximumLightness),
			fmt.Sprintf("%.2f/%.2f/%.2f", t.SaturationWeight, t.LightnessWeight, t.PopulationWeight),
			fmt.Sprintf("%t", t.Exclusive),
		})
	}
	return table
}
