package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cropyield/advisor-service/config"
	"github.com/cropyield/advisor-service/internal/advisory"
	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
)

var (
	cfgFile     string
	catalogFile string
	cfg         *config.Config
	logger      *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Crop advisor CLI - farming advisory and market comparison tool",
	Long: `A CLI tool for crop suitability checks, yield and profit estimation, and
market price comparison. Covers 16 crops across the major Indian agro-climatic
zones and ranks markets by net price after transport costs.`,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog-file", "", "market dataset file (CSV or XLSX) instead of the built-in dataset")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config is optional for the CLI, don't fail here
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	// Always use console format for the CLI
	logger = initLogger()
	return nil
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	var output io.Writer
	noColor := false
	if cfg != nil {
		noColor = cfg.Logging.NoColor
	}
	output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

// buildSource picks the market dataset for CLI commands: an explicit file
// wins, then the configured source, then the built-in dataset.
func buildSource(ctx context.Context) (catalog.Source, func(), error) {
	noop := func() {}

	if catalogFile != "" {
		source, err := catalog.NewFile(catalogFile)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load catalog file: %w", err)
		}
		return source, noop, nil
	}

	if cfg != nil && cfg.Catalog.Source == "postgres" {
		dbURL := config.GetDatabaseURL()
		if dbURL == "" {
			return nil, noop, fmt.Errorf("catalog source is 'postgres' but DATABASE_URL not set")
		}
		source, err := catalog.NewPostgres(ctx, dbURL, catalog.PoolConfig{
			MaxConns:        cfg.Catalog.MaxConnections,
			MinConns:        cfg.Catalog.MinConnections,
			MaxConnLifetime: cfg.Catalog.MaxConnLifetime,
			MaxConnIdleTime: cfg.Catalog.MaxConnIdleTime,
		})
		if err != nil {
			return nil, noop, err
		}
		return source, source.Close, nil
	}

	return catalog.NewStatic(), noop, nil
}

func buildEngine() *engine.Engine {
	if cfg == nil {
		return engine.NewEngine(nil)
	}
	return engine.NewEngine(&engine.EngineConfig{
		TransportRatePerKm: cfg.Engine.TransportRatePerKm,
		MinTransportCost:   cfg.Engine.MinTransportCost,
		SpreadThreshold:    cfg.Engine.SpreadThreshold,
		LongHaulDistanceKm: cfg.Engine.LongHaulDistanceKm,
		MaxQuotes:          cfg.Engine.MaxQuotes,
	})
}

func buildNarrative() *advisory.Client {
	clientCfg := advisory.DefaultClientConfig()
	if cfg != nil {
		clientCfg.BaseURL = cfg.Advisory.BaseURL
		clientCfg.Model = cfg.Advisory.Model
		clientCfg.APIKey = cfg.Advisory.APIKey
		clientCfg.Timeout = cfg.Advisory.Timeout
	}
	return advisory.NewClient(clientCfg, nil)
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
