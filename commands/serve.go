package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-project-panel/internal/analyzer"
	"github.com/penwyp/go-project-panel/internal/data/cache"
	"github.com/penwyp/go-project-panel/internal/data/loader"
	"github.com/penwyp/go-project-panel/internal/server"
	"github.com/penwyp/go-project-panel/internal/util"
)

var (
	serveListen  string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serves the executive dashboard page with filters, KPI cards, the Gantt chart
and the detail table, plus JSON endpoints under /api. The spreadsheet is
reloaded when it changes on disk.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"Listen address (default from config, 127.0.0.1:8501)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false,
		"Do not watch the spreadsheet for changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, file, err := setup()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}

	pipeline, err := analyzer.NewPipeline(cfg)
	if err != nil {
		return err
	}
	datasets := cache.NewDatasetCache(loader.NewLoader())

	// Fail fast on a missing or unreadable spreadsheet
	if _, err := datasets.Get(file); err != nil {
		return err
	}

	srv, err := server.NewServer(cfg.Server.Listen, file, pipeline, datasets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Data.Watch && !serveNoWatch {
		if err := srv.Watch(ctx); err != nil {
			util.LogWarn("Spreadsheet watch disabled", util.F("error", err.Error()))
		}
	}

	return srv.Run(ctx)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
