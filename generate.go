package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jalad-shrimali/sector-kml/celldb"
	"github.com/jalad-shrimali/sector-kml/generator"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		gen       generator.Options
		beamwidth float64
		sheet4G   string
		sheet5G   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Convert the 4G and 5G databases into a KML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("beamwidth") {
				cfg.BeamwidthDeg = beamwidth
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if sheet4G != "" {
				cfg.Sheet4G = sheet4G
			}
			if sheet5G != "" {
				cfg.Sheet5G = sheet5G
			}
			if gen.Database == "" {
				gen.Database = cfg.DatabasePath
			}
			gen.Config = cfg
			gen.Log = opts.log

			res, err := generator.Run(cmd.Context(), gen)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "KML file created successfully at: %s\n", res.Output)
			for _, f := range res.Folders {
				fmt.Fprintf(out, "  %-12s %4d sectors %4d labels\n", f.Name, f.Polygons, f.Labels)
			}
			if res.Report != "" {
				fmt.Fprintf(out, "Report: %s\n", res.Report)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&gen.Path4G, "4g", "", "4G engineering database (.xlsx, .xlsm or .csv)")
	f.StringVar(&gen.Path5G, "5g", "", "5G engineering database (.xlsx, .xlsm or .csv)")
	f.StringVarP(&gen.Output, "output", "o", "sectors.kml", "KML file to write")
	f.StringVar(&gen.Report, "report", "", "also write a summary workbook to this path")
	f.StringVar(&gen.Database, "db", "", "archive the run into this SQLite database")
	f.Float64Var(&beamwidth, "beamwidth", 30, "sector beamwidth in degrees")
	f.StringVar(&sheet4G, "sheet-4g", "", "worksheet of the 4G workbook (default: first)")
	f.StringVar(&sheet5G, "sheet-5g", "", "worksheet of the 5G workbook (default: first)")
	_ = cmd.MarkFlagRequired("4g")
	_ = cmd.MarkFlagRequired("5g")
	return cmd
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "lookup CELL_ID",
		Short: "Print the latest archived record for a cell id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := opts.config()
				if err != nil {
					return err
				}
				dbPath = cfg.DatabasePath
			}
			if dbPath == "" {
				return fmt.Errorf("no database: pass --db or set database_path in the config")
			}
			store, err := celldb.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, ok, err := store.LookupCell(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("cell %s not found in %s", args[0], dbPath)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database written by generate --db")
	return cmd
}
