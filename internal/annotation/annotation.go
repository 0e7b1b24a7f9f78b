// Package annotation finds or creates the annotation.csv that lists the
// images of a directory.
package annotation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/linuxmatters/lumabin/internal/config"
	"github.com/linuxmatters/lumabin/internal/table"
)

// ErrNoImages means the directory has neither an annotation file nor any
// supported image. It is an expected outcome, not a failure of the tool.
var ErrNoImages = errors.New("no annotation file and no supported images")

// Result describes where the annotation file came from
type Result struct {
	Path    string // Annotation file path
	Created bool   // True when the file was synthesised by this run
	Images  int    // Number of rows written when Created
}

// Locate returns dir/annotation.csv if it exists. Otherwise it scans dir
// (non-recursively) for files with one of exts and writes a new annotation
// file listing them. ErrNoImages is returned when there is nothing to list.
func Locate(dir string, exts []string) (Result, error) {
	path := filepath.Join(dir, config.AnnotationFileName)

	// Existing file wins, no scan
	if _, err := os.Stat(path); err == nil {
		return Result{Path: path}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("checking %s: %w", path, err)
	}

	names, err := ListImages(dir, exts)
	if err != nil {
		return Result{}, err
	}
	if len(names) == 0 {
		return Result{}, ErrNoImages
	}

	tbl, err := Build(dir, names)
	if err != nil {
		return Result{}, err
	}
	if err := tbl.WriteCSV(path); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", config.AnnotationFileName, err)
	}

	return Result{Path: path, Created: true, Images: len(names)}, nil
}

// ListImages returns the names of regular files in dir whose extension is in
// exts (case-insensitive), in directory listing order. Symlinks are followed.
func ListImages(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !HasSupportedExtension(entry.Name(), exts) {
			continue
		}

		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// HasSupportedExtension reports whether name ends in one of exts
func HasSupportedExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// Build creates the two-column annotation table for names inside dir
func Build(dir string, names []string) (*table.Table, error) {
	tbl := table.New(config.ColumnAbsolutePath, config.ColumnRelativePath)
	for _, name := range names {
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}
		tbl.Append(abs, name)
	}
	return tbl, nil
}
