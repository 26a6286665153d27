package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/LdDl/roadnet"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type loggerKey struct{}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "roadnet",
		Short:        "roadnet builds microscopic road network descriptions",
		Long:         `roadnet imports OSM data, resolves turnarounds, lane connections and traffic lights, and writes the network description with junction internals.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, roadnet.NewLogger(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newConvertCmd())
	return root
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}

type convertOpts struct {
	config          string
	file            string
	out             string
	geojson         string
	csv             string
	highways        string
	noInternalLinks bool
	noNames         bool
}

func newConvertCmd() *cobra.Command {
	opts := convertOpts{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert OSM file into network description",
		Long: `Convert OSM file into network description.

Command line flags override values of the configuration file.

Examples:
  roadnet convert --file map.osm --out map.net.xml
  roadnet convert --config roadnet.toml --geojson map.geojson --csv map.csv`,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := roadnet.LoadConfig(opts.config)
			if err != nil {
				return err
			}
			flags := c.Flags()
			if flags.Changed("file") {
				cfg.Input.File = opts.file
			}
			if flags.Changed("out") {
				cfg.Output.Net = opts.out
			}
			if flags.Changed("geojson") {
				cfg.Output.GeoJSON = opts.geojson
			}
			if flags.Changed("csv") {
				cfg.Output.CSV = opts.csv
			}
			if flags.Changed("highways") {
				cfg.Input.Highways = strings.Split(opts.highways, ",")
			}
			if flags.Changed("no-internal-links") {
				cfg.Build.NoInternalLinks = opts.noInternalLinks
			}
			if flags.Changed("no-names") {
				cfg.Build.NoNames = opts.noNames
			}
			return convert(c.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.file, "file", "", "OSM file (*.osm, *.xml or *.pbf)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "network description file (nothing is written if empty)")
	cmd.Flags().StringVar(&opts.geojson, "geojson", "", "GeoJSON export file")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "CSV export file. E.g.: 'map.csv' produces 'map_edges.csv' and 'map_junctions.csv'")
	cmd.Flags().StringVar(&opts.highways, "highways", "", "allowed values of `highway` tag (separated by commas)")
	cmd.Flags().BoolVar(&opts.noInternalLinks, "no-internal-links", false, "do not write junction internals")
	cmd.Flags().BoolVar(&opts.noNames, "no-names", false, "do not write street names")
	return cmd
}

func convert(ctx context.Context, cfg roadnet.Config) error {
	logger := loggerFromContext(ctx)
	if cfg.Input.File == "" {
		return errors.New("No input file has been provided")
	}
	importerOptions, err := cfg.ImporterOptions()
	if err != nil {
		return err
	}
	importerOptions = append(importerOptions, roadnet.WithImporterLogger(logger))
	net, err := roadnet.ImportFromOSMFile(cfg.Input.File, importerOptions...)
	if err != nil {
		return errors.Wrap(err, "Can't import network")
	}

	roadnet.ComputeTurnDirections(net, logger)
	roadnet.GuessConnections(net, cfg.Build.NoTurnarounds, logger)
	programs := roadnet.BuildTrafficLightPrograms(net, cfg.TLS, logger)
	logger.Info("Traffic light programs have been built", "programs", programs)

	writer := roadnet.NewWriter(append(cfg.WriterOptions(), roadnet.WithLogger(logger))...)
	if err := writer.WriteNetworkFile(cfg.Output.Net, net); err != nil {
		// Partial output is useless
		if removeErr := os.Remove(cfg.Output.Net); removeErr != nil {
			logger.Error("Can't remove partial output", "file", cfg.Output.Net, "err", removeErr)
		}
		return errors.Wrap(err, "Can't write network")
	}
	if cfg.Output.Net != "" {
		logger.Info("Network has been written", "file", cfg.Output.Net)
	}
	if err := roadnet.ExportToGeoJSON(cfg.Output.GeoJSON, net); err != nil {
		return err
	}
	if err := roadnet.ExportToCSV(cfg.Output.CSV, net); err != nil {
		return err
	}
	return nil
}
