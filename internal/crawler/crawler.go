package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Crawler finds Python source files.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a crawler that skips the given directory names.
func NewCrawler(ignored []string) *Crawler {
	return &Crawler{ignored: ignored}
}

// IsPython reports whether path names a Python source or stub file.
func IsPython(path string) bool {
	switch filepath.Ext(path) {
	case ".py", ".pyi":
		return true
	}
	return false
}

// ScanProject walks root and streams every Python file to onFile. A root
// that is itself a file is passed through regardless of its extension.
func (c *Crawler) ScanProject(root string, onFile func(path string)) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		onFile(root)
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && c.isIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsPython(path) {
			onFile(path)
		}
		return nil
	})
}

// Collect scans every root and returns the de-duplicated, sorted file list.
func (c *Crawler) Collect(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		err := c.ScanProject(root, func(path string) {
			path = filepath.Clean(path)
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	// Hidden directories such as .mypy_cache are never source trees.
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
