package annotation

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/linuxmatters/lumabin/internal/table"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// TestLocate_ExistingFile verifies that an existing annotation.csv is returned
// untouched and that the directory is not scanned or modified.
func TestLocate_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, config.AnnotationFileName)
	content := []byte("custom,content\n1,2\n")
	if err := os.WriteFile(existing, content, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Locate(dir, config.SupportedExtensions())
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if res.Path != existing {
		t.Errorf("Path = %q, want %q", res.Path, existing)
	}
	if res.Created {
		t.Error("Created = true for existing file")
	}

	data, _ := os.ReadFile(existing)
	if string(data) != string(content) {
		t.Error("existing annotation file was modified")
	}
	if names := dirNames(t, dir); len(names) != 1 {
		t.Errorf("directory gained files: %v", names)
	}
}

func TestLocate_NoImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")
	touch(t, dir, "data.json")
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Locate(dir, config.SupportedExtensions())
	if !errors.Is(err, ErrNoImages) {
		t.Fatalf("Locate() error = %v, want ErrNoImages", err)
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
	if _, err := os.Stat(filepath.Join(dir, config.AnnotationFileName)); !os.IsNotExist(err) {
		t.Error("annotation.csv was created without images")
	}
}

func TestLocate_CreatesAnnotation(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.PNG")
	touch(t, dir, "a.jpg")
	touch(t, dir, "c.webp")
	touch(t, dir, "readme.md")
	touch(t, dir, "noext")

	res, err := Locate(dir, config.SupportedExtensions())
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if !res.Created || res.Images != 3 {
		t.Errorf("Result = %+v, want Created with 3 images", res)
	}

	tbl, err := table.ReadCSV(res.Path)
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	wantHeader := []string{config.ColumnAbsolutePath, config.ColumnRelativePath}
	if !slices.Equal(tbl.Header, wantHeader) {
		t.Errorf("header = %q, want %q", tbl.Header, wantHeader)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}

	wantRel := []string{"a.jpg", "b.PNG", "c.webp"}
	if got := tbl.Values(config.ColumnRelativePath); !slices.Equal(got, wantRel) {
		t.Errorf("relative paths = %q, want %q", got, wantRel)
	}
	for i, abs := range tbl.Values(config.ColumnAbsolutePath) {
		if !filepath.IsAbs(abs) {
			t.Errorf("row %d: %q is not absolute", i, abs)
		}
		if filepath.Base(abs) != wantRel[i] {
			t.Errorf("row %d: absolute %q does not match %q", i, abs, wantRel[i])
		}
	}

	// A second call finds the file it just wrote
	again, err := Locate(dir, config.SupportedExtensions())
	if err != nil || again.Created {
		t.Errorf("second Locate() = %+v, %v; want existing file", again, err)
	}
}

func TestLocate_MissingDir(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "absent"), config.SupportedExtensions())
	if err == nil || errors.Is(err, ErrNoImages) {
		t.Errorf("Locate() error = %v, want listing error", err)
	}
}

func TestHasSupportedExtension(t *testing.T) {
	exts := config.SupportedExtensions()
	testCases := []struct {
		name string
		want bool
	}{
		{"photo.png", true},
		{"PHOTO.JPEG", true},
		{"scan.Tiff", true},
		{"img.bmp", true},
		{"img.webp", true},
		{"img.gif", false},
		{"img.tif", false},
		{"png", false},
		{"archive.png.zip", false},
	}

	for _, tc := range testCases {
		if got := HasSupportedExtension(tc.name, exts); got != tc.want {
			t.Errorf("HasSupportedExtension(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
