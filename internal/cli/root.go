// Package cli wires configuration, logging, the dataset and the selection
// engine into the cocoverse command tree.
package cli

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocoverse/internal/config"
	"cocoverse/internal/dataset"
	"cocoverse/internal/loader"
	"cocoverse/internal/logging"
	"cocoverse/internal/selection"
)

var version = "0.3.0"

// app carries what every subcommand needs once the root pre-run has finished
type app struct {
	datasetPath string
	configPath  string
	logLevel    string
	noColor     bool

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the root command and reports its error on stderr
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		bad.Fprintf(os.Stderr, "cocoverse: %v\n", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cocoverse",
		Short: "Linked-view explorer for COCO co-occurrence and spatial statistics",
		Long: brand.Sprint("cocoverse") + " explores a prepared dataset of object categories,\n" +
			"their co-occurrence graph and spatial distribution through linked views.\n" +
			subtle.Sprint("Run without a subcommand to open the dashboard."),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	root.SetVersionTemplate("cocoverse {{ .Version }}\n")
	root.PersistentFlags().StringVarP(&a.datasetPath, "dataset", "d", "", "Dataset JSON file (overrides the config)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file, .toml or .yaml (default: user config dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		a.tuiCmd(),
		a.summaryCmd(),
		a.matrixCmd(),
		a.exportCmd(),
	)

	return root
}

// setup loads the config and builds the logger
func (a *app) setup() error {
	if a.noColor {
		color.NoColor = true
	}

	cs := config.NewConfigService()
	if a.configPath != "" {
		cs = config.NewConfigServiceAt(a.configPath)
	}
	cfg, err := cs.Load()
	if err != nil {
		return err
	}
	if a.datasetPath != "" {
		cfg.Dataset = a.datasetPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Settings{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

var errNoDataset = errors.New("no dataset: pass --dataset or set dataset in the config")

func (a *app) loadDataset() (*dataset.Dataset, error) {
	if a.cfg.Dataset == "" {
		return nil, errNoDataset
	}
	ds, err := loader.Load(a.cfg.Dataset)
	if err != nil {
		return nil, err
	}
	a.logger.Info("dataset loaded",
		zap.String("path", a.cfg.Dataset),
		zap.Int("entities", ds.Len()),
		zap.Int("relations", len(ds.Relations())),
		zap.Int("categories", len(ds.Categories())))
	return ds, nil
}

func (a *app) newEngine(ds *dataset.Dataset) *selection.Engine {
	opts := []selection.Option{selection.WithLogger(a.logger.Named("selection"))}
	if t := a.cfg.Selection.DefaultThreshold; t != nil {
		opts = append(opts, selection.WithThreshold(*t))
	}
	return selection.New(ds, opts...)
}
