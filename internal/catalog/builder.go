package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/feed"
	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/images"
	"github.com/jusgarcia06-rgb/JJ-s-Catalog/internal/normalize"
)

// Progress is logged every this many mirrored items.
const progressInterval = 25

// Config is the explicit pipeline configuration. The markup multiplier and
// stock safety buffer are independent opt-in policies; both default off.
type Config struct {
	FeedURL       string
	FeedFile      string
	OutputDir     string
	OverridesPath string
	Workers       int
	Markup        float64
	StockBuffer   int
}

// Stats summarizes one run for the final log line and the YAML report.
type Stats struct {
	Rows      int
	Items     int
	Attempted int
	Saved     int
	Reused    int
	Failed    int
}

// Builder wires the feed source, normalizer, image fetcher and local store
// into one run.
type Builder struct {
	cfg       Config
	source    *feed.Source
	fetcher   *images.Fetcher
	store     *images.Store
	overrides *Overrides
}

// NewBuilder creates a pipeline for the given configuration.
func NewBuilder(cfg Config) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Builder{
		cfg:       cfg,
		source:    feed.NewSource(cfg.FeedURL, cfg.FeedFile),
		fetcher:   images.NewFetcher(),
		store:     images.NewStore(filepath.Join(cfg.OutputDir, images.RelDir)),
		overrides: LoadOverrides(cfg.OverridesPath),
	}
}

// draft carries an item through the pipeline together with its candidate
// remote image URL, which never reaches the persisted output.
type draft struct {
	item      Item
	remoteURL string
}

// mirrorResult is one worker's outcome for one item.
type mirrorResult struct {
	path      string
	attempted bool
	saved     bool
	reused    bool
	failed    bool
}

// Run executes the full pipeline and returns the finished items in feed
// order along with run statistics.
func (b *Builder) Run(ctx context.Context) ([]Item, *Stats, error) {
	text, err := b.source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows, err := feed.ParseRows(text)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Parsed feed", "rows", len(rows))

	drafts := b.buildDrafts(rows)
	slog.Info("Built in-stock drafts", "items", len(drafts), "dropped", len(rows)-len(drafts))

	results := b.mirrorImages(ctx, drafts)

	stats := &Stats{Rows: len(rows), Items: len(drafts)}
	items := make([]Item, len(drafts))
	for i, d := range drafts {
		d.item.Image = results[i].path
		items[i] = d.item

		if results[i].attempted {
			stats.Attempted++
		}
		switch {
		case results[i].saved:
			stats.Saved++
		case results[i].reused:
			stats.Reused++
		case results[i].failed:
			stats.Failed++
		}
	}

	slog.Info("Image mirroring complete",
		"attempted", stats.Attempted, "saved", stats.Saved,
		"reused", stats.Reused, "failed", stats.Failed)

	return items, stats, nil
}

// buildDrafts normalizes rows into draft items, drops out-of-stock rows and
// applies gender overrides. Persisted items always satisfy InStock == true.
func (b *Builder) buildDrafts(rows []feed.Row) []draft {
	var drafts []draft
	for _, row := range rows {
		sku := row.Lookup("SKU", "Item", "ItemNumber", "Item Number", "Style")
		name := row.Lookup("Name", "Product Name", "Title", "Style Name")
		if sku == "" && name == "" {
			continue
		}

		qty := normalize.Stock(row)
		if b.cfg.StockBuffer > 0 {
			qty -= b.cfg.StockBuffer
			if qty < 0 {
				qty = 0
			}
		}
		if qty <= 0 {
			continue
		}

		category := row.Lookup("Category", "Product Category", "Department", "Type")
		gender := normalize.ParseGender(row.Lookup("Gender", "Gender Category", "Sex"), category)
		gender = b.overrides.Apply(sku, name, gender)

		drafts = append(drafts, draft{
			item: Item{
				SKU:      sku,
				Name:     name,
				Brand:    row.Lookup("Brand", "Brand Name", "Manufacturer", "Mill"),
				Category: category,
				Gender:   gender,
				Price:    normalize.Price(row, b.cfg.Markup),
				Qty:      qty,
				InStock:  true,
			},
			remoteURL: images.PickImageColumn(row),
		})
	}
	return drafts
}

// mirrorImages runs the bounded worker pool. Each task owns exactly one item
// and writes into its own pre-sized slot, so output keeps feed order no
// matter how completion interleaves. The atomic counters exist only for the
// periodic progress log; the authoritative stats are aggregated from the
// per-item results after the pool drains.
func (b *Builder) mirrorImages(ctx context.Context, drafts []draft) []mirrorResult {
	results := make([]mirrorResult, len(drafts))
	var done, attempted, saved, reused atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Workers)
	for i := range drafts {
		g.Go(func() error {
			r := b.mirror(ctx, drafts[i])
			results[i] = r

			if r.attempted {
				attempted.Add(1)
			}
			if r.saved {
				saved.Add(1)
			}
			if r.reused {
				reused.Add(1)
			}
			if n := done.Add(1); n%progressInterval == 0 {
				slog.Info("Mirroring images", "done", n, "total", len(drafts),
					"attempted", attempted.Load(), "saved", saved.Load(), "reused", reused.Load())
			}
			return nil
		})
	}
	// Workers never return errors; a failed image only marks its own slot.
	_ = g.Wait()

	return results
}

// mirror processes one item fully: reuse check, then fetch-or-skip, then
// store.
func (b *Builder) mirror(ctx context.Context, d draft) mirrorResult {
	if d.remoteURL == "" {
		return mirrorResult{}
	}

	base := images.BaseNameFor(d.item.SKU, d.remoteURL)
	if name, ok := b.store.FindValid(base); ok {
		return mirrorResult{path: b.store.RelPath(name), reused: true}
	}

	res, err := b.fetcher.Fetch(ctx, d.remoteURL)
	if err != nil {
		slog.Debug("Image fetch failed", "sku", d.item.SKU, "url", d.remoteURL, "err", err)
		return mirrorResult{attempted: true, failed: true}
	}

	name := fmt.Sprintf("%s.%s", base, images.ExtFor(d.remoteURL, res.ContentType))
	rel, err := b.store.Save(name, res.Body)
	if err != nil {
		slog.Warn("Failed to store image", "sku", d.item.SKU, "file", name, "err", err)
		return mirrorResult{attempted: true, failed: true}
	}

	return mirrorResult{path: rel, attempted: true, saved: true}
}
