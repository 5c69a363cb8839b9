package main

import (
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/JonMunkholm/CRM/internal/source"
	"github.com/spf13/cobra"
)

// filterFlags maps flag names to the filter keys they set.
var filterFlags = []struct {
	flag string
	key  core.FilterKey
}{
	{"category", core.FilterKeyCategory},
	{"subcategory", core.FilterKeySubcategory},
	{"brand", core.FilterKeyBrand},
	{"product", core.FilterKeyProduct},
	{"search", core.FilterKeySearch},
}

func newExportCmd() *cobra.Command {
	var in, out, tab string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Filter a JSON customer list and write it as CSV",
		Long: `Reads a JSON array of customers (the embedded seed when --in is
omitted), applies the tab and toolbar filters and writes customers.csv.
When the filters match nothing every customer is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := loadCustomers(cmd, in)
			if err != nil {
				return err
			}

			if !core.Tab(tab).Valid() {
				return fmt.Errorf("invalid tab: %q", tab)
			}
			filters := core.SetTab(core.DefaultFilterState(), core.Tab(tab))
			for _, ff := range filterFlags {
				if cmd.Flags().Changed(ff.flag) {
					v, _ := cmd.Flags().GetString(ff.flag)
					filters, _ = core.SetFilter(filters, ff.key, v)
				}
			}

			filtered := core.Filter(items, filters)
			rows := core.ExportRows(filtered, items)
			if err := writeOutput(cmd, out, func(w io.Writer) error {
				return core.WriteCSV(w, rows)
			}); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			fallback := ""
			if len(filtered) == 0 {
				fallback = " (no match, exported all)"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d rows%s\n", len(rows), fallback)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", `JSON file of customers, "-" for stdin (default: embedded seed)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "CSV output file (default: stdout)")
	cmd.Flags().StringVar(&tab, "tab", string(core.TabAll), "status tab: All, New, Return, In-progress or Purchased")
	for _, ff := range filterFlags {
		def := core.FilterNone
		if ff.key == core.FilterKeySearch {
			def = ""
		}
		cmd.Flags().String(ff.flag, def, fmt.Sprintf("%s filter", ff.flag))
	}
	return cmd
}

func loadCustomers(cmd *cobra.Command, path string) ([]core.Customer, error) {
	if path == "" {
		return source.Seed{}.FetchCustomers(context.Background())
	}

	r, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return source.Decode(r)
}
