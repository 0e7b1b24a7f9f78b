// Package brightness turns an annotation table into a bucketed brightness table.
package brightness

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/linuxmatters/lumabin/internal/bucket"
	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/linuxmatters/lumabin/internal/imagestats"
	"github.com/linuxmatters/lumabin/internal/table"
)

// Analyzer measures one image file
type Analyzer interface {
	Analyze(path string) (imagestats.Stats, error)
}

// ProgressFunc is called after each row's statistics are resolved
type ProgressFunc func(done, total int, name string)

// Processor owns the table for the duration of a run
type Processor struct {
	tbl     *table.Table
	baseDir string // Directory relative paths are resolved against
	bounds  bucket.Boundaries
	ranged  bool
}

// Load reads the annotation file at path
func Load(path string) (*Processor, error) {
	tbl, err := table.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return NewProcessor(tbl, filepath.Dir(path)), nil
}

// NewProcessor wraps an in-memory table. baseDir resolves relative paths.
func NewProcessor(tbl *table.Table, baseDir string) *Processor {
	return &Processor{tbl: tbl, baseDir: baseDir}
}

// Table returns the processed table
func (p *Processor) Table() *table.Table {
	return p.tbl
}

// columnAliases maps localised or shorthand headers onto canonical names.
// Keys are compared after trimming and lowercasing.
var columnAliases = map[string]string{
	"absolute path":      config.ColumnAbsolutePath,
	"absolute_path":      config.ColumnAbsolutePath,
	"abs_path":           config.ColumnAbsolutePath,
	"абсолютный путь":    config.ColumnAbsolutePath,
	"relative path":      config.ColumnRelativePath,
	"relative_path":      config.ColumnRelativePath,
	"rel_path":           config.ColumnRelativePath,
	"относительный путь": config.ColumnRelativePath,
	"r":                  config.MeanColumn("r"),
	"red":                config.MeanColumn("r"),
	"g":                  config.MeanColumn("g"),
	"green":              config.MeanColumn("g"),
	"b":                  config.MeanColumn("b"),
	"blue":               config.MeanColumn("b"),
}

// RenameColumns normalises headers to canonical names. Calling it twice is a no-op.
func (p *Processor) RenameColumns() {
	mapping := make(map[string]string)
	for _, name := range p.tbl.Header {
		key := strings.ToLower(strings.TrimSpace(name))
		if target, ok := columnAliases[key]; ok {
			mapping[name] = target
		}
	}
	p.tbl.RenameColumns(mapping)
}

// EnsureStats fills in mean/stddev columns for rows that lack any of them
func (p *Processor) EnsureStats(a Analyzer, progress ProgressFunc) error {
	total := p.tbl.Len()
	for i := 0; i < total; i++ {
		name := p.displayName(i)
		if p.hasStats(i) {
			if progress != nil {
				progress(i+1, total, name)
			}
			continue
		}

		path, err := p.imagePath(i)
		if err != nil {
			return err
		}

		s, err := a.Analyze(path)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		for _, ch := range config.Channels {
			mean, std, _ := s.Channel(ch)
			p.tbl.Set(i, config.MeanColumn(ch), formatValue(mean))
			p.tbl.Set(i, config.StdColumn(ch), formatValue(std))
		}

		if progress != nil {
			progress(i+1, total, name)
		}
	}

	// Keep the stats columns present even for an empty table
	for _, ch := range config.Channels {
		p.tbl.EnsureColumn(config.MeanColumn(ch))
	}
	return nil
}

// hasStats reports whether row i already holds a numeric mean for every channel
func (p *Processor) hasStats(i int) bool {
	for _, ch := range config.Channels {
		if _, err := parseValue(p.tbl.Get(i, config.MeanColumn(ch))); err != nil {
			return false
		}
	}
	return true
}

// imagePath prefers the absolute path, falling back to the relative one
func (p *Processor) imagePath(i int) (string, error) {
	if abs := strings.TrimSpace(p.tbl.Get(i, config.ColumnAbsolutePath)); abs != "" {
		return abs, nil
	}
	if rel := strings.TrimSpace(p.tbl.Get(i, config.ColumnRelativePath)); rel != "" {
		if filepath.IsAbs(rel) {
			return rel, nil
		}
		return filepath.Join(p.baseDir, rel), nil
	}
	return "", fmt.Errorf("row %d: no image path", i+1)
}

func (p *Processor) displayName(i int) string {
	if rel := p.tbl.Get(i, config.ColumnRelativePath); rel != "" {
		return rel
	}
	return filepath.Base(p.tbl.Get(i, config.ColumnAbsolutePath))
}

// AddRanges assigns a bucket label per channel to every row
func (p *Processor) AddRanges(bounds bucket.Boundaries) error {
	for _, ch := range config.Channels {
		meanCol := config.MeanColumn(ch)
		if !p.tbl.HasColumn(meanCol) {
			return fmt.Errorf("missing column %q", meanCol)
		}
		rangeCol := config.RangeColumn(ch)
		p.tbl.EnsureColumn(rangeCol)

		for i := 0; i < p.tbl.Len(); i++ {
			v, err := parseValue(p.tbl.Get(i, meanCol))
			if err != nil {
				return fmt.Errorf("row %d, column %q: %w", i+1, meanCol, err)
			}
			p.tbl.Set(i, rangeCol, bounds.Label(v))
		}
	}

	p.bounds = bounds
	p.ranged = true
	return nil
}

// BinOrder returns the canonical bucket order for consumers
func (p *Processor) BinOrder() []string {
	return p.bounds.Order()
}

// SortBy orders rows by the channel's bucket, keeping input order within a bucket
func (p *Processor) SortBy(channel string) error {
	if !p.ranged {
		return fmt.Errorf("ranges not assigned")
	}
	col := p.tbl.Column(config.RangeColumn(channel))
	if col < 0 {
		return fmt.Errorf("unknown channel %q", channel)
	}

	p.tbl.SortStableFunc(func(a, b []string) int {
		return p.bounds.Compare(a[col], b[col])
	})
	return nil
}

// Distribution counts rows per bucket for a channel, in canonical order
func (p *Processor) Distribution(channel string) ([]int, error) {
	if !p.ranged {
		return nil, fmt.Errorf("ranges not assigned")
	}
	labels := p.tbl.Values(config.RangeColumn(channel))
	if labels == nil {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}
	return p.bounds.Counts(labels), nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
