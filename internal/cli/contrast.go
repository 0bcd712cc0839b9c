package cli

import (
	"fmt"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/spf13/cobra"
)

// WCAG AA minimum for normal text.
const defaultMinContrastRatio = 4.5

func newContrastCmd() *cobra.Command {
	var minRatio float64

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the contrast of two hex colours",
		Long: `Report the WCAG contrast ratio of a foreground colour drawn on a
background, and the lowest foreground alpha that still reaches --min-ratio.

Colours are hex strings (#rgb, #rrggbb or #rrggbbaa). A translucent
foreground is blended over the background; the background must be opaque.

Examples:
  swatch contrast '#ffffff' '#1e1e2e'
  swatch contrast --min-ratio 7 000000 f5f5f5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContrast(cmd, args[0], args[1], minRatio)
		},
	}
	cmd.Flags().Float64Var(&minRatio, "min-ratio", defaultMinContrastRatio, "contrast ratio the foreground must reach")
	return cmd
}

func runContrast(cmd *cobra.Command, fgHex, bgHex string, minRatio float64) error {
	if minRatio < 1 || minRatio > 21 {
		return fmt.Errorf("invalid --min-ratio %.2f: must be between 1 and 21", minRatio)
	}
	fg, err := colour.ParseHex(fgHex)
	if err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}
	bg, err := colour.ParseHex(bgHex)
	if err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}

	ratio, err := colour.CalculateContrast(fg, bg)
	if err != nil {
		return err
	}
	alpha, ok, err := colour.MinimumAlpha(fg, bg, minRatio)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "contrast: %.2f:1\n", ratio)
	if ok {
		fmt.Fprintf(out, "minimum alpha for %.1f:1: %d (%.0f%%)\n", minRatio, alpha, float64(alpha)/255*100)
	} else {
		fmt.Fprintf(out, "minimum alpha for %.1f:1: unreachable\n", minRatio)
	}
	newLogger(cmd).Debug("contrast checked", "foreground", fg.Hex(), "background", bg.Hex(), "ratio", ratio)
	return nil
}
