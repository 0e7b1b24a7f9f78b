package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// TestParseHexColor_ValidInputs verifies that ParseHexColor correctly parses
// valid hex colour formats, catching case sensitivity issues, prefix handling,
// and byte ordering bugs.
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{name: "FF0000 (uppercase red, no hash)", input: "FF0000", wantR: 255},
		{name: "ff0000 (lowercase red, no hash)", input: "ff0000", wantR: 255},
		{name: "#FF0000 (uppercase red, with hash)", input: "#FF0000", wantR: 255},
		{name: "Ff00fF (mixed case magenta)", input: "Ff00fF", wantR: 255, wantB: 255},
		{name: "00FF00 (green)", input: "00FF00", wantG: 255},
		{name: "0000FF (blue)", input: "0000FF", wantB: 255},
		{name: "000000 (black)", input: "000000"},
		{name: "#F8B31D (brand yellow)", input: "#F8B31D", wantR: 248, wantG: 179, wantB: 29},
		{name: "010203 (low values)", input: "010203", wantR: 1, wantG: 2, wantB: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}

			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

// TestParseHexColor_InvalidInputs verifies that malformed colours are rejected
func TestParseHexColor_InvalidInputs(t *testing.T) {
	inputs := []string{
		"FFF",
		"#FFF",
		"FFFFFFF",
		"GGGGGG",
		"FF00GG",
		"",
		"#",
		"FF 000",
		"FF#000",
		"##FF0000",
		"FF0000\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, _, _, err := ParseHexColor(input); err == nil {
				t.Errorf("ParseHexColor(%q) expected error, got nil", input)
			}
		})
	}
}

// TestRuntimeConfig_Defaults verifies that an empty config resolves every
// accessor to the compiled-in constants.
func TestRuntimeConfig_Defaults(t *testing.T) {
	c := &RuntimeConfig{}

	if got := c.GetBinsString(); got != DefaultBinsString {
		t.Errorf("GetBinsString() = %q, want %q", got, DefaultBinsString)
	}
	if got := c.GetExtensions(); !slices.Equal(got, SupportedExtensions()) {
		t.Errorf("GetExtensions() = %v, want %v", got, SupportedExtensions())
	}
	if got := c.GetSortChannel(); got != DefaultSortChannel {
		t.Errorf("GetSortChannel() = %q, want %q", got, DefaultSortChannel)
	}
	if got := c.GetPlotFile(); got != PlotFileName {
		t.Errorf("GetPlotFile() = %q, want %q", got, PlotFileName)
	}
	if got := c.GetCSVFile(); got != CSVFileName {
		t.Errorf("GetCSVFile() = %q, want %q", got, CSVFileName)
	}
	if got := c.GetChartWidth(); got != ChartWidth {
		t.Errorf("GetChartWidth() = %d, want %d", got, ChartWidth)
	}
	if got := c.GetChartPanelHeight(); got != ChartPanelHeight {
		t.Errorf("GetChartPanelHeight() = %d, want %d", got, ChartPanelHeight)
	}

	r, g, b := c.GetTextColor()
	if r != TextColorR || g != TextColorG || b != TextColorB {
		t.Errorf("GetTextColor() = (%d, %d, %d), want defaults", r, g, b)
	}
}

func TestRuntimeConfig_GetChannelColor(t *testing.T) {
	testCases := []struct {
		name    string
		config  *RuntimeConfig
		channel string
		wantR   uint8
		wantG   uint8
		wantB   uint8
	}{
		{
			name:    "Red default",
			config:  &RuntimeConfig{},
			channel: "r",
			wantR:   RedColorR, wantG: RedColorG, wantB: RedColorB,
		},
		{
			name:    "Green override",
			config:  &RuntimeConfig{GreenColor: "#00FF00"},
			channel: "g",
			wantR:   0, wantG: 255, wantB: 0,
		},
		{
			name:    "Invalid blue falls back",
			config:  &RuntimeConfig{BlueColor: "nope"},
			channel: "b",
			wantR:   BlueColorR, wantG: BlueColorG, wantB: BlueColorB,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := tc.config.GetChannelColor(tc.channel)
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("GetChannelColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.channel, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumabin.yaml")
	data := []byte(`bins: "80,160,240"
extensions: [PNG, ".Jpg"]
sort_by: G
text_color: "#FFFFFF"
chart_width: 900
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if c.GetBinsString() != "80,160,240" {
		t.Errorf("bins = %q", c.GetBinsString())
	}
	if want := []string{".png", ".jpg"}; !slices.Equal(c.GetExtensions(), want) {
		t.Errorf("extensions = %v, want %v", c.GetExtensions(), want)
	}
	if c.GetSortChannel() != "g" {
		t.Errorf("sort channel = %q, want g", c.GetSortChannel())
	}
	if c.GetChartWidth() != 900 {
		t.Errorf("chart width = %d, want 900", c.GetChartWidth())
	}
	if r, g, b := c.GetTextColor(); r != 255 || g != 255 || b != 255 {
		t.Errorf("text colour = (%d, %d, %d), want white", r, g, b)
	}
}

func TestLoadFile_EmptyPath(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error: %v", err)
	}
	if c.GetSortChannel() != DefaultSortChannel {
		t.Errorf("expected defaults for empty path")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "bad sort channel", body: "sort_by: alpha\n"},
		{name: "bad colour", body: "red_color: \"#12\"\n"},
		{name: "negative width", body: "chart_width: -5\n"},
		{name: "malformed yaml", body: "bins: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Errorf("LoadFile() expected error for %s", tc.name)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() expected error for missing file")
	}
}
