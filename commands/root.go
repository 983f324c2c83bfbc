package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/penwyp/go-project-panel/internal/analyzer"
	"github.com/penwyp/go-project-panel/internal/config"
	"github.com/penwyp/go-project-panel/internal/data/filter"
	"github.com/penwyp/go-project-panel/internal/data/loader"
	"github.com/penwyp/go-project-panel/internal/data/scanner"
	"github.com/penwyp/go-project-panel/internal/util"
)

var (
	// Logging related
	debug bool

	// Input
	dataFile   string
	configFile string

	// Output related
	outputFormat string
	timezone     string
	noColor      bool
	width        int

	// Filtering
	filterValues = make(map[filter.Field]*[]string)

	rootCmd = &cobra.Command{
		Use:   "go-project-panel [flags]",
		Short: "Executive project dashboard with a Gantt timeline",
		Long: `go-project-panel reads the project spreadsheet and renders the executive
dashboard: KPIs, a Gantt timeline of project durations with MVP progress, and
the project detail listing.

Examples:
  go-project-panel --file projetos.xlsx                      # Detail table
  go-project-panel -f projetos.xlsx -o gantt                 # Gantt in the terminal
  go-project-panel -f projetos.xlsx -o svg > mapa.svg        # Standalone SVG chart
  go-project-panel -f projetos.xlsx --secretaria SEFAZ -o summary
  go-project-panel serve -f projetos.xlsx --listen :8501     # Web dashboard`,
		SilenceUsage: true,
		RunE:         runRender,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "",
		"Project spreadsheet (.xlsx or .csv), or a directory to use its newest one")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file path (default "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., America/Sao_Paulo, UTC)")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, csv, json, summary, gantt, svg, chart)")
	rootCmd.Flags().StringVar(&outputFormat, "format", "",
		"Alias for --output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colors in gantt output")
	rootCmd.Flags().IntVar(&width, "width", 0,
		"Gantt width in columns (0 = terminal width)")

	for _, field := range filter.Fields {
		values := new([]string)
		filterValues[field] = values
		rootCmd.Flags().StringSliceVar(values, string(field), nil,
			"Filter by "+field.Label()+" (repeatable or comma separated)")
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	// Handle format alias
	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		outputFormat = format.Value.String()
	}

	cfg, file, err := setup()
	if err != nil {
		return err
	}

	a, err := analyzer.New(&analyzer.Config{
		File:         file,
		OutputFormat: outputFormat,
		Criteria:     criteriaFromFlags(),
		Panel:        cfg,
		Output:       cmd.OutOrStdout(),
		Color:        !noColor && term.IsTerminal(int(os.Stdout.Fd())),
		Width:        width,
	})
	if err != nil {
		return err
	}
	return a.Run(contextOrBackground(cmd.Context()))
}

// setup loads the config, starts logging and resolves the spreadsheet path
func setup() (*config.Config, string, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, "", err
	}

	logLevel := cfg.Log.Level
	if debug {
		logLevel = "debug"
	}
	logFile := config.ExpandPath(cfg.Log.File)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, "", goerr.Wrap(err, "failed to create log directory", goerr.V("path", logFile))
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return nil, "", err
	}

	if timezone != "" {
		cfg.Timezone = timezone
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		util.LogWarn("Invalid timezone, using local time", util.F("timezone", cfg.Timezone))
	}

	file := dataFile
	if file == "" {
		file = cfg.Data.File
	}
	if file == "" {
		return nil, "", goerr.New("no spreadsheet given: use --file or data.file in the config")
	}
	// A directory selects its most recently modified spreadsheet
	file, err = scanner.Resolve(config.ExpandPath(file), loader.NewLoader().Extensions())
	if err != nil {
		return nil, "", err
	}
	util.LogDebug("Using spreadsheet", util.F("path", file))
	return cfg, file, nil
}

func criteriaFromFlags() filter.Criteria {
	return filter.NewCriteria(func(key string) []string {
		if values, ok := filterValues[filter.Field(key)]; ok {
			return *values
		}
		return nil
	})
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
