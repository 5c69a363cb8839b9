package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse a CSV file and write the customers as JSON",
		Long: `Parses a CSV file the way the dashboard import does, filling
defaults for missing fields, and writes the resulting JSON array.
A file without data rows is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(cmd, in)
			if err != nil {
				return err
			}
			defer r.Close()

			rows, n, err := core.ReadImport(r, core.NewClockIDSource())
			if err != nil {
				return err
			}

			if err := writeOutput(cmd, out, func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}); err != nil {
				return fmt.Errorf("write customers: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d rows (%d bytes)\n", len(rows), n)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", `CSV file, "-" for stdin`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "JSON output file (default: stdout)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
