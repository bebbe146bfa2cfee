package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/debresearch/licensetrend/internal/archive"
	"github.com/debresearch/licensetrend/internal/chart"
	"github.com/debresearch/licensetrend/internal/config"
	"github.com/debresearch/licensetrend/internal/database"
	"github.com/debresearch/licensetrend/internal/log"
	"github.com/debresearch/licensetrend/internal/model"
	"github.com/debresearch/licensetrend/internal/report"
	"github.com/debresearch/licensetrend/internal/survey"
)

// NewRootCmd creates the root command for licensetrend.
// Running the program with no arguments performs a full survey-and-plot
// run; there are no required subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licensetrend",
		Short: "Survey package licenses across Debian release channels",
		Long: `licensetrend surveys a sample of Debian's source packages and classifies
each package's license per release channel (oldstable, stable, unstable),
preferring the machine-readable copyright format and falling back to
pattern-based guessing for free-text documents.

Responses are cached on disk, so repeated runs only fetch what expired.
Be careful not to hammer snapshot.debian.org and
metadata.ftp-master.debian.org by surveying many thousands of packages.

A run writes, into the output directory:
  summary_<date>.json   per-channel license counters
  all.png               top license counts per channel
  delta.png             relative change, oldstable to unstable`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSurveyCmd,
	}

	cmd.Flags().Int("max-packages", config.DefaultMaxPackages,
		"Maximum number of packages to sample")
	cmd.Flags().Int("max-licenses", config.DefaultMaxLicenses,
		"Maximum number of distinct licenses to display and plot")
	cmd.Flags().BoolP("debug", "d", false,
		"Enable debug logging, including per-package detection results")
	cmd.Flags().String("cache-dir", "",
		"Response cache directory (default: XDG cache directory)")
	cmd.Flags().StringP("output-dir", "o", ".",
		"Directory for the summary, report, and chart files")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .licensetrend in current or home directory)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown report next to the JSON summary")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runSurveyCmd executes the survey.
func runSurveyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runSurvey(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. File values apply first, then flags override.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. Otherwise silently run on defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.MaxPackages, err = cmd.Flags().GetInt("max-packages")
	if err != nil {
		return nil, err
	}

	cfg.MaxLicenses, err = cmd.Flags().GetInt("max-licenses")
	if err != nil {
		return nil, err
	}

	cfg.Debug, err = cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}

	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, err
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runSurvey wires the collaborators together, runs the survey, and
// writes the output artifacts.
func runSurvey(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cache, err := database.Open(cfg.CacheDir, database.Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
		TTL:               cfg.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to open response cache: %w", err)
	}
	defer cache.Close()
	logger.Info("response cache opened", "dir", cfg.CacheDir)

	client := archive.NewClient(
		archive.WithSnapshotBaseURL(cfg.SnapshotBaseURL),
		archive.WithMetadataBaseURL(cfg.MetadataBaseURL),
		archive.WithCache(cache),
		archive.WithPacer(archive.NewPacer(cfg.MaxQPS)),
		archive.WithClientLogger(logger),
	)
	detector := archive.NewDetector(client, logger)

	surveyor := survey.NewSurveyor(client, detector,
		survey.WithMaxPackages(cfg.MaxPackages),
		survey.WithChannels(cfg.Channels),
		survey.WithLogger(logger),
	)

	startTime := time.Now()
	summary, err := surveyor.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("survey cancelled")
		}
		return fmt.Errorf("survey failed: %w", err)
	}
	fmt.Printf("Survey completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

	printSummary(summary)

	return writeArtifacts(cfg, summary, logger)
}

// printSummary lists the thirty most common licenses per channel on
// stdout.
func printSummary(summary *model.Summary) {
	for _, ch := range summary.Channels {
		fmt.Println(ch.String())
		for _, lc := range summary.Counter(ch).MostCommon(30) {
			fmt.Printf("  %-60s %d\n", lc.License.String(), lc.Count)
		}
	}
}

// writeArtifacts writes the summary JSON, the optional Markdown report,
// and the two chart images into the output directory.
func writeArtifacts(cfg *config.Config, summary *model.Summary, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryPath := filepath.Join(cfg.OutputDir, report.SummaryFileName(summary.GeneratedAt))
	if err := writeSummaryJSON(summaryPath, summary); err != nil {
		return err
	}
	logger.Info("summary written", "path", summaryPath)

	if cfg.MarkdownReport {
		mdPath := filepath.Join(cfg.OutputDir, report.MarkdownFileName(summary.GeneratedAt))
		if err := writeMarkdownReport(mdPath, summary, cfg.MaxLicenses); err != nil {
			return err
		}
		logger.Info("markdown report written", "path", mdPath)
	}

	renderer := chart.NewRenderer(chart.WithMaxLicenses(cfg.MaxLicenses))
	allPath := filepath.Join(cfg.OutputDir, "all.png")
	deltaPath := filepath.Join(cfg.OutputDir, "delta.png")
	if err := renderer.RenderBoth(summary, allPath, deltaPath); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	logger.Info("charts written", "all", allPath, "delta", deltaPath)

	return nil
}

// writeSummaryJSON writes the dated counters file.
func writeSummaryJSON(path string, summary *model.Summary) error {
	f, err := os.Create(path) //nolint:gosec // Output path is user-chosen
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewJSONWriter(f).Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// writeMarkdownReport writes the Markdown rendition of the summary.
func writeMarkdownReport(path string, summary *model.Summary, maxLicenses int) error {
	f, err := os.Create(path) //nolint:gosec // Output path is user-chosen
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	writer := report.NewMarkdownWriter(f, report.WithMaxLicenses(maxLicenses))
	if _, err := writer.Write(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
