package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when the scan root exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".go", ".py").
	// Matching is case-insensitive. An empty list includes every file.
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeNames is a list of exact, case-sensitive file names to skip
	ExcludeNames []string
	// ExcludePaths is a list of file paths to skip, compared after resolving
	// them to absolute paths
	ExcludePaths []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files, in walk order
	Files []string
	// Errors contains non-fatal errors for entries below the root
	Errors []error
}

// ScanDirectory walks dir and returns the regular files matching opts.
//
// Entries are visited in lexical order within each directory, so the order of
// Files is stable across runs over an unchanged tree. Failure to stat or list
// dir itself is returned as an error; failures below it are collected in
// ScanResult.Errors and the affected subtree is skipped.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	nameMap := make(map[string]bool)
	for _, name := range opts.ExcludeNames {
		if name != "" {
			nameMap[name] = true
		}
	}

	pathMap := make(map[string]bool)
	for _, p := range opts.ExcludePaths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve excluded path %s: %w", p, err)
		}
		pathMap[abs] = true
	}

	// WalkDir does not descend into a symlinked root; a trailing separator
	// makes it resolve the link while child paths stay under root.
	walkRoot := root
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == walkRoot {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		filename := d.Name()
		if nameMap[filename] {
			return nil
		}

		if len(extMap) > 0 {
			// filepath.Ext is everything from the final dot; no dot means no extension.
			ext := strings.ToLower(filepath.Ext(filename))
			if ext == "" || !extMap[ext] {
				return nil
			}
		}

		if pathMap[path] {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// isRegular reports whether the entry is a regular file, following a symlink
// one hop to find out.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
