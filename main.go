package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jalad-shrimali/sector-kml/config"
	"github.com/jalad-shrimali/sector-kml/handlers"
	"github.com/jalad-shrimali/sector-kml/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	log        *slog.Logger
}

func (o *rootOptions) config() (config.Config, error) {
	return config.Load(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "sector-kml",
		Short:        "Draw 4G/5G cell sectors from engineering databases as KML",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logging.FromEnv()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "JSON config file")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newLookupCmd(opts))
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload endpoint and generated files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/upload", handlers.Upload(cfg, opts.log))
			mux.Handle("/download/",
				http.StripPrefix("/download/", http.FileServer(http.Dir(cfg.OutputDir))))

			opts.log.Info("server started", "addr", cfg.ListenAddr, "output_dir", cfg.OutputDir)
			if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
