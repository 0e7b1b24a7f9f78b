package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/lumabin/internal/cli"
	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/linuxmatters/lumabin/internal/pipeline"
	"github.com/linuxmatters/lumabin/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Dir        string `arg:"" name:"dir" help:"Directory of images to analyse" default:"." type:"path"`
	Bins       string `help:"Comma-separated brightness boundaries (default: 50,100,150,200)"`
	OutDir     string `help:"Directory for the chart and CSV (default: <dir>)" type:"path"`
	SortBy     string `help:"Channel to sort by: r, g or b (default: r)"`
	Config     string `help:"YAML file with runtime settings" type:"existingfile"`
	NoProgress bool   `help:"Disable the progress line"`
	Version    bool   `help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lumabin"),
		kong.Description("Bucket a folder of images by brightness, per colour channel."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	_ = ctx

	cfg, err := config.LoadFile(CLI.Config)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	// Command line flags win over the config file
	if sortBy := strings.ToLower(strings.TrimSpace(CLI.SortBy)); sortBy != "" {
		if !slices.Contains(config.Channels, sortBy) {
			cli.PrintError(fmt.Sprintf("invalid --sort-by value: %q (must be r, g or b)", CLI.SortBy))
			os.Exit(1)
		}
		cfg.SortBy = sortBy
	}

	os.Exit(analyse(cfg))
}

// analyse runs the pipeline and returns the process exit code
func analyse(cfg *config.RuntimeConfig) int {
	cli.PrintBanner()

	progress := ui.NewProgress(os.Stdout, !CLI.NoProgress)
	notifier := &terminalNotifier{progress: progress}

	start := time.Now()
	res, err := pipeline.Run(pipeline.Options{
		Dir:      CLI.Dir,
		OutDir:   CLI.OutDir,
		Bins:     CLI.Bins,
		Config:   cfg,
		Notifier: notifier,
	})
	progress.Finish()

	if errors.Is(err, pipeline.ErrAborted) {
		cli.PrintFailure(fmt.Sprintf("No %s and no images found in %s", config.AnnotationFileName, CLI.Dir))
		return 0
	}
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			cli.PrintError(fmt.Sprintf("%s failed: %v", stageErr.State, stageErr.Err))
		} else {
			cli.PrintError(err.Error())
		}
		return 1
	}

	printSummary(res, time.Since(start))
	return 0
}

func printSummary(res *pipeline.Result, elapsed time.Duration) {
	cli.PrintSection("Distribution")

	var channels []ui.ChannelCounts
	for _, ch := range config.Channels {
		channels = append(channels, ui.ChannelCounts{
			Name:   pipeline.ChannelName(ch),
			Color:  cli.ChannelColor(ch),
			Counts: res.Distributions[ch],
		})
	}
	fmt.Println(ui.RenderDistribution(res.BinOrder, channels, 30))

	var outputs strings.Builder
	fmt.Fprintf(&outputs, "Bins:    %s\n", cli.FormatBins(res.Bins))
	fmt.Fprintf(&outputs, "Images:  %d (sorted by %s)\n", res.Rows, pipeline.ChannelName(res.SortChannel))
	fmt.Fprintf(&outputs, "Chart:   %s%s\n", res.PlotPath, fileSize(res.PlotPath))
	fmt.Fprintf(&outputs, "Table:   %s%s\n", res.CSVPath, fileSize(res.CSVPath))
	fmt.Fprintf(&outputs, "Elapsed: %s", cli.FormatDuration(elapsed))
	cli.PrintBox(outputs.String())

	cli.PrintSuccess("Analysis complete")
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return " (" + cli.FormatBytes(info.Size()) + ")"
}

// terminalNotifier prints pipeline messages with the cli styles
type terminalNotifier struct {
	progress *ui.Progress
}

func (t *terminalNotifier) Warning(message string) {
	t.progress.Finish()
	cli.PrintWarning(message)
}

func (t *terminalNotifier) Info(key, value string) {
	t.progress.Finish()
	cli.PrintInfo(key, value)
}

func (t *terminalNotifier) Progress(done, total int, name string) {
	t.progress.Update(done, total, name)
}
