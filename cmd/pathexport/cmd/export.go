package cmd

import (
	"fmt"
	"os"

	"github.com/npillmayer/robopath/format"
	"github.com/npillmayer/robopath/format/pathjerryio"
	"github.com/npillmayer/robopath/project"
	"github.com/spf13/cobra"
)

var (
	configFile string
	outputFile string
	formatName string
)

var exportCmd = &cobra.Command{
	Use:   "export <project.json>",
	Short: "Export the paths of a project document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if configFile != "" {
			if doc.GC, err = doc.GC.Overlay(configFile); err != nil {
				return err
			}
		}
		name := formatName
		if name == "" {
			name = doc.Format
		}
		if name == "" {
			name = pathjerryio.Name
		}
		f, err := format.Lookup(name)
		if err != nil {
			return err
		}
		doc.Format = f.Name()
		app := doc.App()
		app.Warn = func(w format.FieldWarning) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s %s²\n", w, doc.GC.UOL)
		}
		data, err := f.Export(app)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", args[0], err)
		}
		return writeOutput(cmd, outputFile, data)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration, overrides the project's")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVarP(&formatName, "format", "f", "", "format name (default: the project's)")
}

func readDocument(file string) (*project.Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return project.Decode(r)
}
