// =============================================================================
// NFSe Importer - Source Enumerator
// =============================================================================
//
// This module enumerates XML payloads from a loosely specified input: a
// single .xml file, a .zip archive, or a directory tree holding both. The
// produced sequence is deterministic so that two runs over the same input
// see the same documents in the same order:
//
//   1. Loose .xml files, ascending case-insensitive order of full path.
//   2. For every .zip found (same ordering), its .xml entries in ascending
//      case-insensitive entry-name order.
//
// ZIP-contained documents are named "<archive-name>:<entry-name>" so error
// messages can be traced back to a physical location. Archive handles are
// opened, drained and closed per archive; they are never held across the
// whole batch.
//
// =============================================================================

package loader

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when the input path does not exist.
var ErrNotFound = errors.New("input path not found")

// ErrUnsupportedInput is returned when the input path exists but is neither
// a directory, a .zip file nor an .xml file.
var ErrUnsupportedInput = errors.New("unsupported input type (expected directory, .zip or .xml)")

// WalkFunc receives one XML payload. Returning a non-nil error stops the
// enumeration; the error is propagated to the ForEachXML caller.
type WalkFunc func(name string, data []byte) error

// =============================================================================
// INPUT CLASSIFICATION
// =============================================================================

type inputKind int

const (
	inputDir inputKind = iota
	inputZip
	inputXML
)

// classify validates the input path and decides how it will be walked.
func classify(inputPath string) (inputKind, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, inputPath)
		}
		return 0, fmt.Errorf("stat %s: %w", inputPath, err)
	}
	if info.IsDir() {
		return inputDir, nil
	}
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".zip":
		return inputZip, nil
	case ".xml":
		return inputXML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedInput, inputPath)
}

// =============================================================================
// ENUMERATION
// =============================================================================

// ForEachXML calls fn once per XML payload found under inputPath, in the
// deterministic order documented at the top of this file. Calling it twice
// on an unchanged input produces the same sequence.
func ForEachXML(inputPath string, fn WalkFunc) error {
	kind, err := classify(inputPath)
	if err != nil {
		return err
	}

	switch kind {
	case inputZip:
		return forEachZipXML(inputPath, fn)

	case inputXML:
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inputPath, err)
		}
		return fn(inputPath, data)

	case inputDir:
		xmlFiles, zipFiles, err := scanDir(inputPath)
		if err != nil {
			return err
		}
		for _, p := range xmlFiles {
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("reading %s: %w", p, err)
			}
			if err := fn(p, data); err != nil {
				return err
			}
		}
		for _, p := range zipFiles {
			if err := forEachZipXML(p, fn); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// ListEntries returns the logical names ForEachXML would visit, in the same
// order, without reading any payload. Used for progress and counting.
func ListEntries(inputPath string) ([]string, error) {
	kind, err := classify(inputPath)
	if err != nil {
		return nil, err
	}

	switch kind {
	case inputZip:
		return zipEntryNames(inputPath)

	case inputXML:
		return []string{inputPath}, nil

	case inputDir:
		xmlFiles, zipFiles, err := scanDir(inputPath)
		if err != nil {
			return nil, err
		}
		entries := append([]string{}, xmlFiles...)
		for _, p := range zipFiles {
			names, err := zipEntryNames(p)
			if err != nil {
				return nil, err
			}
			entries = append(entries, names...)
		}
		return entries, nil
	}
	return nil, nil
}

// CountXML returns the number of XML payloads under inputPath, including
// those inside .zip archives.
func CountXML(inputPath string) (int, error) {
	entries, err := ListEntries(inputPath)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// =============================================================================
// DIRECTORY SCAN
// =============================================================================

// scanDir walks root recursively and returns the loose .xml files and the
// .zip archives, each sorted ascending case-insensitively by full path.
func scanDir(root string) (xmlFiles, zipFiles []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xml":
			xmlFiles = append(xmlFiles, path)
		case ".zip":
			zipFiles = append(zipFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sortCaseInsensitive(xmlFiles)
	sortCaseInsensitive(zipFiles)
	return xmlFiles, zipFiles, nil
}

func sortCaseInsensitive(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		a, b := strings.ToLower(paths[i]), strings.ToLower(paths[j])
		if a != b {
			return a < b
		}
		return paths[i] < paths[j]
	})
}

// =============================================================================
// ZIP HANDLING
// =============================================================================

// sortedXMLEntries returns the archive's .xml entries (case-insensitive
// suffix match, directories skipped) in ascending entry-name order.
func sortedXMLEntries(r *zip.ReadCloser) []*zip.File {
	var files []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		a, b := strings.ToLower(files[i].Name), strings.ToLower(files[j].Name)
		if a != b {
			return a < b
		}
		return files[i].Name < files[j].Name
	})
	return files
}

// entryName builds the traceable "<archive-name>:<entry-name>" form.
func entryName(zipPath, name string) string {
	return filepath.Base(zipPath) + ":" + name
}

// forEachZipXML opens one archive, feeds every XML entry to fn and closes
// the archive before returning, even when fn stops the walk early.
func forEachZipXML(zipPath string, fn WalkFunc) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	for _, f := range sortedXMLEntries(r) {
		data, err := readZipEntry(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", entryName(zipPath, f.Name), err)
		}
		if err := fn(entryName(zipPath, f.Name), data); err != nil {
			return err
		}
	}
	return nil
}

// zipEntryNames lists the logical names of an archive's XML entries without
// reading their content.
func zipEntryNames(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	var names []string
	for _, f := range sortedXMLEntries(r) {
		names = append(names, entryName(zipPath, f.Name))
	}
	return names, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
