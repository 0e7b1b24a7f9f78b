package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"

	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"
)

// Channel is one panel of the histogram image
type Channel struct {
	Name   string // Display name, e.g. "Red"
	Counts []int  // Images per bucket, aligned with Chart.Bins
	Color  color.RGBA
}

// Chart describes the full histogram image
type Chart struct {
	Title       string
	Bins        []string // Canonical bucket order
	Channels    []Channel
	Width       int
	PanelHeight int
	TextColor   color.RGBA
}

// ErrNoBins is returned when the chart has no buckets to plot
var ErrNoBins = errors.New("chart has no bins")

// RenderHistograms draws one bar chart per channel, stacked under a title
// banner, and saves the result as PNG at outputPath
func RenderHistograms(outputPath string, c Chart) error {
	img, err := Compose(c)
	if err != nil {
		return err
	}

	if err := savePNG(img, outputPath); err != nil {
		return fmt.Errorf("failed to save histogram: %w", err)
	}
	return nil
}

// Compose renders the histogram image in memory
func Compose(c Chart) (*image.RGBA, error) {
	if len(c.Bins) == 0 {
		return nil, ErrNoBins
	}
	if len(c.Channels) == 0 {
		return nil, errors.New("chart has no channels")
	}
	for _, ch := range c.Channels {
		if len(ch.Counts) != len(c.Bins) {
			return nil, fmt.Errorf("channel %s has %d counts for %d bins", ch.Name, len(ch.Counts), len(c.Bins))
		}
	}
	if c.Width <= 2*config.ChartPanelPadding || c.PanelHeight <= 2*config.ChartPanelPadding {
		return nil, fmt.Errorf("chart too small: %dx%d", c.Width, c.PanelHeight)
	}

	height := config.ChartTitleHeight + len(c.Channels)*c.PanelHeight
	canvas := image.NewRGBA(image.Rect(0, 0, c.Width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Title banner
	banner := image.Rect(0, 0, c.Width, config.ChartTitleHeight)
	bannerColor := color.RGBA{R: config.BannerColorR, G: config.BannerColorG, B: config.BannerColorB, A: 255}
	draw.Draw(canvas, banner, image.NewUniform(bannerColor), image.Point{}, draw.Src)

	face, err := LoadFont(config.ChartTitleSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	drawCenteredText(canvas, face, c.Title, banner, c.TextColor)

	// Shared y-axis maximum so panels are comparable
	maxCount := 1
	for _, ch := range c.Channels {
		for _, n := range ch.Counts {
			maxCount = max(maxCount, n)
		}
	}

	for i, ch := range c.Channels {
		panel, err := renderPanel(ch, c.Bins, maxCount, c.Width, c.PanelHeight)
		if err != nil {
			return nil, fmt.Errorf("rendering %s panel: %w", ch.Name, err)
		}

		top := config.ChartTitleHeight + i*c.PanelHeight
		dst := image.Rect(0, top, c.Width, top+c.PanelHeight)
		pb := panel.Bounds()
		if pb.Dx() == dst.Dx() && pb.Dy() == dst.Dy() {
			draw.Draw(canvas, dst, panel, pb.Min, draw.Over)
		} else {
			draw.BiLinear.Scale(canvas, dst, panel, pb, draw.Over, nil)
		}
	}

	return canvas, nil
}

// renderPanel renders a single channel through go-chart and decodes the PNG
func renderPanel(ch Channel, bins []string, maxCount, width, height int) (image.Image, error) {
	fill := drawing.Color{R: ch.Color.R, G: ch.Color.G, B: ch.Color.B, A: 255}

	bars := make([]chart.Value, len(bins))
	for i, label := range bins {
		bars[i] = chart.Value{
			Label: label,
			Value: float64(ch.Counts[i]),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		}
	}

	bc := chart.BarChart{
		Title:  ch.Name + " channel",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    config.ChartPanelPadding * 3,
				Left:   config.ChartPanelPadding,
				Right:  config.ChartPanelPadding,
				Bottom: config.ChartPanelPadding,
			},
		},
		BarWidth: config.ChartBarWidth,
		YAxis: chart.YAxis{
			Name:  "Images",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f + 0.5))
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// savePNG writes img to outputPath
func savePNG(img image.Image, outputPath string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
