package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/config"
	"github.com/penwyp/go-project-panel/internal/data/cache"
	"github.com/penwyp/go-project-panel/internal/data/filter"
	"github.com/penwyp/go-project-panel/internal/data/loader"
	"github.com/penwyp/go-project-panel/internal/presentation/chart"
	"github.com/penwyp/go-project-panel/internal/presentation/formatter"
	"github.com/penwyp/go-project-panel/internal/presentation/layout"
	"github.com/penwyp/go-project-panel/internal/util"
)

// Output formats accepted by Run
var OutputFormats = []string{"table", "csv", "json", "summary", "gantt", "svg", "chart"}

type Config struct {
	File         string
	OutputFormat string
	Criteria     filter.Criteria
	Panel        *config.Config
	// Output defaults to stdout
	Output io.Writer
	Color  bool
	// Width fixes the gantt width; 0 uses the terminal width
	Width int
}

type Analyzer struct {
	config   *Config
	cache    *cache.DatasetCache
	pipeline *Pipeline
}

func New(cfg *Config) (*Analyzer, error) {
	if cfg.Panel == nil {
		cfg.Panel = config.DefaultConfig()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}
	if !validFormat(cfg.OutputFormat) {
		return nil, goerr.New("unknown output format",
			goerr.V("format", cfg.OutputFormat),
			goerr.V("supported", strings.Join(OutputFormats, ", ")))
	}

	pipeline, err := NewPipeline(cfg.Panel)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:   cfg,
		cache:    cache.NewDatasetCache(loader.NewLoader()),
		pipeline: pipeline,
	}, nil
}

func (a *Analyzer) Run(ctx context.Context) error {
	startTime := time.Now()
	util.LogInfo("Starting project panel render", util.F("file", a.config.File))

	// Phase 1: Load spreadsheet
	loadStart := time.Now()
	result, err := a.cache.Get(a.config.File)
	if err != nil {
		return err
	}
	ds := result.Dataset
	loadDuration := time.Since(loadStart)
	util.LogDebug(fmt.Sprintf("Phase 1 - Load duration: %v, %d records", loadDuration, len(ds.Records)),
		util.F("snapshot", ds.SnapshotID))

	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 2: Filter, tally and compose
	buildStart := time.Now()
	report, err := a.pipeline.Report(ds, a.config.Criteria)
	if err != nil {
		return err
	}
	buildDuration := time.Since(buildStart)
	util.LogDebug(fmt.Sprintf("Phase 2 - Build duration: %v, %d selected, %d without dates",
		buildDuration, len(report.Records), report.Dropped))

	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase 3: Format and output
	outputStart := time.Now()
	err = a.formatAndOutput(report)
	outputDuration := time.Since(outputStart)
	util.LogDebug(fmt.Sprintf("Phase 3 - Formatting and output duration: %v", outputDuration))

	util.LogDebug(fmt.Sprintf("Total duration: %v (load:%v build:%v output:%v)",
		time.Since(startTime), loadDuration, buildDuration, outputDuration))
	return err
}

func (a *Analyzer) formatAndOutput(report *formatter.Report) error {
	out := a.config.Output
	switch a.config.OutputFormat {
	case "json":
		return formatter.NewJSONFormatter(out).Format(report)
	case "csv":
		return formatter.NewCSVFormatter(out).Format(report)
	case "summary":
		return formatter.NewSummaryFormatter(out).Format(report)
	case "gantt":
		sizer := layout.SharedSizer()
		if a.config.Width > 0 {
			sizer = layout.NewFixedSizer(a.config.Width)
		}
		return formatter.NewGanttFormatter(out, sizer, a.config.Color).Format(report)
	case "svg":
		_, err := io.WriteString(out, chart.RenderSVG(report.Layout, chart.DefaultSVGConfig())+"\n")
		return err
	case "chart":
		data, err := chart.NewSpec(report.Layout).JSON()
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	default:
		return formatter.NewTableFormatter(out).Format(report)
	}
}

func validFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
