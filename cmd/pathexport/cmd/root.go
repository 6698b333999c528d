// Package cmd implements the commands of pathexport.
package cmd

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	// registers the default format
	_ "github.com/npillmayer/robopath/format/pathjerryio"
)

var verbose bool

var traceKeys = []string{"units", "path", "sampling", "field", "config", "format",
	"pathjerryio", "project"}

var rootCmd = &cobra.Command{
	Use:   "pathexport",
	Short: "Encode robot motion paths for robot firmware",
	Long: `pathexport reads a project document (paths and configuration, as JSON)
and encodes its paths into a path file format. Exported files embed the
project document, so it can be recovered with 'pathexport metadata'.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := tracing.LevelError
		if verbose {
			level = tracing.LevelDebug
		}
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace at debug level")
	rootCmd.AddCommand(exportCmd, metadataCmd, formatsCmd)
}

// writeOutput writes data to file, or to stdout if file is empty or "-".
func writeOutput(cmd *cobra.Command, file string, data []byte) error {
	if file == "" || file == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}
