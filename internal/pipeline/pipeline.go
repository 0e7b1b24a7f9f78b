// Package pipeline runs one analysis of an image directory:
//
//	ParseArgs -> LocateAnnotation -> {Abort | Process} -> RenderAndSave -> Done
package pipeline

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/linuxmatters/lumabin/internal/annotation"
	"github.com/linuxmatters/lumabin/internal/bins"
	"github.com/linuxmatters/lumabin/internal/brightness"
	"github.com/linuxmatters/lumabin/internal/bucket"
	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/linuxmatters/lumabin/internal/imagestats"
	"github.com/linuxmatters/lumabin/internal/renderer"
)

// State names a step of a run
type State int

const (
	StateParseArgs State = iota
	StateLocateAnnotation
	StateAbort
	StateProcess
	StateRenderAndSave
	StateDone
)

func (s State) String() string {
	switch s {
	case StateParseArgs:
		return "parse arguments"
	case StateLocateAnnotation:
		return "locate annotation"
	case StateAbort:
		return "abort"
	case StateProcess:
		return "process"
	case StateRenderAndSave:
		return "render and save"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrAborted ends a run that had nothing to analyse. It wraps
// annotation.ErrNoImages and is not a failure.
var ErrAborted = fmt.Errorf("nothing to analyse: %w", annotation.ErrNoImages)

// StageError reports which step of the run failed
type StageError struct {
	State State
	Step  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.State, e.Step, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Notifier receives user-facing messages during a run
type Notifier interface {
	Warning(message string)
	Info(key, value string)
	Progress(done, total int, name string)
}

// Options configures a run
type Options struct {
	Dir      string // Directory holding the images and annotation.csv
	OutDir   string // Where outputs are written; defaults to Dir
	Bins     string // Raw boundary string, e.g. "50,100,150,200"
	Config   *config.RuntimeConfig
	Analyzer brightness.Analyzer
	Notifier Notifier
}

// Result describes a completed run
type Result struct {
	Annotation    annotation.Result
	Bins          []int
	BinOrder      []string
	Rows          int
	SortChannel   string
	PlotPath      string
	CSVPath       string
	Distributions map[string][]int // Keyed by channel ("r", "g", "b")
}

// ResolveBins parses raw and falls back to config.DefaultBins on failure.
// The fallback is reported through n; this never fails.
func ResolveBins(raw string, n Notifier) []int {
	values, err := bins.Parse(raw)
	if err != nil {
		n.Warning(fmt.Sprintf("invalid boundaries %q (%v), using defaults %s",
			raw, err, bins.Format(config.DefaultBins())))
		return config.DefaultBins()
	}
	return values
}

// Run executes a full analysis
func Run(opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.RuntimeConfig{}
	}
	n := opts.Notifier
	if n == nil {
		n = discard{}
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = opts.Dir
	}
	raw := opts.Bins
	if raw == "" {
		raw = cfg.GetBinsString()
	}

	// ParseArgs
	values := ResolveBins(raw, n)
	bounds, err := bucket.New(values)
	if err != nil {
		// Parse output is always sorted and unique
		return nil, &StageError{State: StateParseArgs, Step: "boundaries", Err: err}
	}
	n.Info("Boundaries", fmt.Sprint(values))

	// LocateAnnotation
	loc, err := annotation.Locate(opts.Dir, cfg.GetExtensions())
	if errors.Is(err, annotation.ErrNoImages) {
		return nil, ErrAborted
	}
	if err != nil {
		return nil, &StageError{State: StateLocateAnnotation, Step: "locate", Err: err}
	}
	if loc.Created {
		n.Info("Annotation", fmt.Sprintf("created %s with %d images", loc.Path, loc.Images))
	} else {
		n.Info("Annotation", loc.Path)
	}

	// Process
	proc, err := brightness.Load(loc.Path)
	if err != nil {
		return nil, &StageError{State: StateProcess, Step: "read annotation", Err: err}
	}
	proc.RenameColumns()

	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = imagestats.NewAnalyzer()
	}
	if err := proc.EnsureStats(analyzer, n.Progress); err != nil {
		return nil, &StageError{State: StateProcess, Step: "measure images", Err: err}
	}
	if err := proc.AddRanges(bounds); err != nil {
		return nil, &StageError{State: StateProcess, Step: "assign ranges", Err: err}
	}

	sortChannel := cfg.GetSortChannel()
	if err := proc.SortBy(sortChannel); err != nil {
		return nil, &StageError{State: StateProcess, Step: "sort", Err: err}
	}

	res := &Result{
		Annotation:    loc,
		Bins:          values,
		BinOrder:      proc.BinOrder(),
		Rows:          proc.Table().Len(),
		SortChannel:   sortChannel,
		PlotPath:      filepath.Join(outDir, cfg.GetPlotFile()),
		CSVPath:       filepath.Join(outDir, cfg.GetCSVFile()),
		Distributions: make(map[string][]int, len(config.Channels)),
	}
	for _, ch := range config.Channels {
		counts, err := proc.Distribution(ch)
		if err != nil {
			return nil, &StageError{State: StateProcess, Step: "distribution", Err: err}
		}
		res.Distributions[ch] = counts
	}

	// RenderAndSave: the chart goes first, a render failure leaves no CSV
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &StageError{State: StateRenderAndSave, Step: "create output directory", Err: err}
	}
	if err := renderer.RenderHistograms(res.PlotPath, buildChart(res, cfg)); err != nil {
		return nil, &StageError{State: StateRenderAndSave, Step: "render chart", Err: err}
	}
	if err := proc.Table().WriteCSV(res.CSVPath); err != nil {
		return nil, &StageError{State: StateRenderAndSave, Step: "save table", Err: err}
	}

	return res, nil
}

// ChannelName returns the display name of a channel key
func ChannelName(channel string) string {
	switch channel {
	case "r":
		return "Red"
	case "g":
		return "Green"
	case "b":
		return "Blue"
	}
	return channel
}

func buildChart(res *Result, cfg *config.RuntimeConfig) renderer.Chart {
	tr, tg, tb := cfg.GetTextColor()
	c := renderer.Chart{
		Title:       fmt.Sprintf("Brightness distribution of %d images", res.Rows),
		Bins:        res.BinOrder,
		Width:       cfg.GetChartWidth(),
		PanelHeight: cfg.GetChartPanelHeight(),
		TextColor:   color.RGBA{R: tr, G: tg, B: tb, A: 255},
	}
	for _, ch := range config.Channels {
		r, g, b := cfg.GetChannelColor(ch)
		c.Channels = append(c.Channels, renderer.Channel{
			Name:   ChannelName(ch),
			Counts: res.Distributions[ch],
			Color:  color.RGBA{R: r, G: g, B: b, A: 255},
		})
	}
	return c
}

type discard struct{}

func (discard) Warning(string) {}

func (discard) Info(string, string) {}

func (discard) Progress(int, int, string) {}
