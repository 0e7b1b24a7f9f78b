// Package imagestats decodes images and measures per-channel brightness.
package imagestats

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Register decoders for every supported extension
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"

	"github.com/linuxmatters/lumabin/internal/config"
)

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("image has no pixels")

// Stats holds 8-bit brightness statistics in R, G, B order
type Stats struct {
	Mean   [3]float64
	StdDev [3]float64
	Width  int // Original dimensions, before any downscale
	Height int
}

// Channel returns the mean and standard deviation for "r", "g" or "b"
func (s Stats) Channel(channel string) (float64, float64, bool) {
	switch channel {
	case "r":
		return s.Mean[0], s.StdDev[0], true
	case "g":
		return s.Mean[1], s.StdDev[1], true
	case "b":
		return s.Mean[2], s.StdDev[2], true
	}
	return 0, 0, false
}

// Analyzer decodes image files and computes Stats
type Analyzer struct {
	// MaxDim bounds the longer side of the sampled image; 0 disables downscaling
	MaxDim int
}

// NewAnalyzer returns an Analyzer using config.AnalysisMaxDim
func NewAnalyzer() *Analyzer {
	return &Analyzer{MaxDim: config.AnalysisMaxDim}
}

// Analyze decodes the image at path and measures it
func (a *Analyzer) Analyze(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Stats{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return a.Measure(img)
}

// Measure computes Stats for an already decoded image
func (a *Analyzer) Measure(img image.Image) (Stats, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Stats{}, ErrEmptyImage
	}

	sample := a.sample(img)
	n := sample.Rect.Dx() * sample.Rect.Dy()

	// Gather each channel into its own slice for gonum
	channels := [3][]float64{
		make([]float64, 0, n),
		make([]float64, 0, n),
		make([]float64, 0, n),
	}
	for y := 0; y < sample.Rect.Dy(); y++ {
		row := sample.Pix[y*sample.Stride : y*sample.Stride+sample.Rect.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			channels[0] = append(channels[0], float64(row[x]))
			channels[1] = append(channels[1], float64(row[x+1]))
			channels[2] = append(channels[2], float64(row[x+2]))
		}
	}

	s := Stats{Width: bounds.Dx(), Height: bounds.Dy()}
	for i, values := range channels {
		if len(values) == 1 {
			s.Mean[i] = values[0]
			continue
		}
		s.Mean[i], s.StdDev[i] = stat.MeanStdDev(values, nil)
	}
	return s, nil
}

// sample converts img to NRGBA, downscaling when it exceeds MaxDim
func (a *Analyzer) sample(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := scaledSize(bounds.Dx(), bounds.Dy(), a.MaxDim)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}

	// ApproxBiLinear is the fastest bilinear implementation and plenty for averages
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// scaledSize fits w x h inside maxDim while keeping the aspect ratio
func scaledSize(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
