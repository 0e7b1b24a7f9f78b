package config

// Boundary settings
const (
	BinMin = 0   // Lowest legal boundary (inclusive)
	BinMax = 255 // Upper limit for boundaries (exclusive)

	// DefaultBinsString is the --bins flag default
	DefaultBinsString = "50,100,150,200"
)

// DefaultBins returns the boundary set used when the user input is unusable
func DefaultBins() []int {
	return []int{50, 100, 150, 200}
}

// SupportedExtensions returns the image extensions considered when building an annotation file
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".webp"}
}

// File names
const (
	AnnotationFileName = "annotation.csv"
	PlotFileName       = "brightness_histogram.png"
	CSVFileName        = "analyzed_data.csv"
)

// Canonical column names
const (
	ColumnAbsolutePath = "Absolute path"
	ColumnRelativePath = "Relative path"
)

// Channels analysed per image, in plotting order
var Channels = []string{"r", "g", "b"}

// DefaultSortChannel is the channel whose range column orders the output table
const DefaultSortChannel = "r"

// MeanColumn returns the numeric brightness column for a channel (e.g. "r_mean")
func MeanColumn(channel string) string {
	return channel + "_mean"
}

// StdColumn returns the standard deviation column for a channel (e.g. "r_std")
func StdColumn(channel string) string {
	return channel + "_std"
}

// RangeColumn returns the bucket label column for a channel (e.g. "r_range")
func RangeColumn(channel string) string {
	return channel + "_range"
}

// Image analysis
const (
	// Images with a longer side than this are downscaled before sampling
	AnalysisMaxDim = 512
)

// Chart layout
const (
	ChartWidth        = 1280 // Width of the whole histogram image
	ChartPanelHeight  = 360  // Height of each per-channel panel
	ChartTitleHeight  = 72   // Height of the title banner above the panels
	ChartTitleSize    = 32   // Title font size in points
	ChartBarWidth     = 60   // Preferred bar width in pixels
	ChartPanelPadding = 16   // Padding around each panel
)

// Appearance
const (
	// Channel bar colours
	RedColorR   = 214
	RedColorG   = 39
	RedColorB   = 40
	GreenColorR = 44
	GreenColorG = 160
	GreenColorB = 44
	BlueColorR  = 31
	BlueColorG  = 119
	BlueColorB  = 180

	// Title text colour, brand yellow #F8B31D
	TextColorR = 248
	TextColorG = 179
	TextColorB = 29

	// Banner background, near black
	BannerColorR = 24
	BannerColorG = 24
	BannerColorB = 24
)
