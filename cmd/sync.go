package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/catalog"
	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/report"
)

func newSyncCmd() *cobra.Command {
	var feedURL string
	var feedFile string
	var outputDir string
	var overridesPath string
	var reportPath string
	var parquetPath string
	var workers int
	var stockBuffer int
	var markup float64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the vendor feed into a local catalog snapshot",
		Long: `Fetches the vendor CSV feed (or reads the local fallback file when no URL
is configured), normalizes rows into catalog items, drops out-of-stock items,
applies gender overrides, mirrors product images under bounded concurrency,
and writes catalog.json plus the images directory.

Re-running against an unchanged feed reuses every already-mirrored image and
performs no new image fetches.`,
		Example: `  # Sync from the configured feed URL (FEED_URL in .env)
  catalog sync

  # Sync from a local feed export with wholesale markup pricing
  catalog sync --feed-file vendor.csv --markup 1.35

  # Keep a safety buffer of 2 units and write a run report
  catalog sync --stock-buffer 2 --report out/report.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)

			if feedURL == "" {
				feedURL = os.Getenv("FEED_URL")
			}

			cfg := catalog.Config{
				FeedURL:       feedURL,
				FeedFile:      feedFile,
				OutputDir:     outputDir,
				OverridesPath: overridesPath,
				Workers:       workers,
				Markup:        markup,
				StockBuffer:   stockBuffer,
			}

			builder := catalog.NewBuilder(cfg)
			items, stats, err := builder.Run(cmd.Context())
			if err != nil {
				return err
			}

			catalogPath := filepath.Join(outputDir, "catalog.json")
			if err := catalog.WriteJSON(catalogPath, items); err != nil {
				return err
			}
			slog.Info("Catalog written", "path", catalogPath, "items", len(items))

			if parquetPath != "" {
				if err := catalog.WriteParquet(parquetPath, items); err != nil {
					return err
				}
				slog.Info("Parquet snapshot written", "path", parquetPath)
			}

			if reportPath != "" {
				if err := report.Save(reportPath, cfg, stats); err != nil {
					return err
				}
				slog.Info("Run report written", "path", reportPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&feedURL, "feed-url", "", "Vendor feed URL (defaults to FEED_URL env)")
	cmd.Flags().StringVar(&feedFile, "feed-file", "feed.csv", "Local fallback feed file when no URL is configured")
	cmd.Flags().StringVar(&outputDir, "out", "out", "Output directory for catalog.json and images/")
	cmd.Flags().StringVar(&overridesPath, "overrides", "gender_overrides.json", "Optional gender override file (JSON)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Optional YAML run report path")
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Optional parquet snapshot path")
	cmd.Flags().IntVar(&workers, "workers", 8, "Concurrent image mirror workers")
	cmd.Flags().IntVar(&stockBuffer, "stock-buffer", 0, "Units subtracted from every quantity before the in-stock filter (0 disables)")
	cmd.Flags().Float64Var(&markup, "markup", 0, "Wholesale markup multiplier, e.g. 1.35 (0 disables)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}
