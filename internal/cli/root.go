// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/swatch/internal/version"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the swatch command tree. Every call returns fresh
// commands with their own flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract prominent colour swatches from images",
		Long: `Swatch extracts a colour palette from an image with median-cut
quantization, then picks the best colour for each of six perceptual roles:
Vibrant, LightVibrant, DarkVibrant, Muted, LightMuted and DarkMuted.

Custom targets can be scored alongside the built-in ones, and missing
swatches can be derived from their siblings.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(os.LookupEnv))
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newContrastCmd())
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the command logger from the --verbose and --quiet flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	return newLoggerTo(cmd.ErrOrStderr(), flagBool(cmd, "verbose"), flagBool(cmd, "quiet"))
}

func newLoggerTo(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: w,
		Level:  level,
	})
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
