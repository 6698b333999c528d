package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/robopath/format"
	"github.com/spf13/cobra"
)

// errNoMetadata is returned for files without (readable) metadata.
var errNoMetadata = errors.New("no metadata")

var metadataCmd = &cobra.Command{
	Use:   "metadata <exported file>",
	Short: "Print the project document embedded in an exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		m, ok := format.ReadMetadata(buf, format.MetadataMarker)
		if !ok {
			return fmt.Errorf("%s: %w", args[0], errNoMetadata)
		}
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(cmd, outputFile, append(data, '\n'))
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range format.Names() {
			f, err := format.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Name(), f.Description())
		}
		return nil
	},
}

func init() {
	metadataCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")
}
