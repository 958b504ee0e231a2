// Package report renders the optional YAML run summary so operators can track
// mirroring health across syncs.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/catalog"
)

// RunConfig echoes the configuration a summary was produced under.
type RunConfig struct {
	FeedURL     string  `yaml:"feedurl,omitempty"`
	FeedFile    string  `yaml:"feedfile,omitempty"`
	Workers     int     `yaml:"workers"`
	Markup      float64 `yaml:"markup,omitempty"`
	StockBuffer int     `yaml:"stockbuffer,omitempty"`
}

// Summary is the complete run report.
type Summary struct {
	Config    RunConfig `yaml:"config"`
	Rows      int       `yaml:"rows"`
	Items     int       `yaml:"items"`
	Attempted int       `yaml:"attempted"`
	Saved     int       `yaml:"saved"`
	Reused    int       `yaml:"reused"`
	Failed    int       `yaml:"failed"`
	Timestamp string    `yaml:"timestamp"`
}

// Save writes a run summary to a YAML file.
func Save(path string, cfg catalog.Config, stats *catalog.Stats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	summary := Summary{
		Config: RunConfig{
			FeedURL:     cfg.FeedURL,
			FeedFile:    cfg.FeedFile,
			Workers:     cfg.Workers,
			Markup:      cfg.Markup,
			StockBuffer: cfg.StockBuffer,
		},
		Rows:      stats.Rows,
		Items:     stats.Items,
		Attempted: stats.Attempted,
		Saved:     stats.Saved,
		Reused:    stats.Reused,
		Failed:    stats.Failed,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}
