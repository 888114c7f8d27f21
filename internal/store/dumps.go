package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTMLDumps writes rendered mockup documents to a directory for debugging
type HTMLDumps struct {
	dir string
}

// NewHTMLDumps creates a dumper rooted at dir. The directory is created on first write.
func NewHTMLDumps(dir string) *HTMLDumps {
	return &HTMLDumps{dir: dir}
}

// Dir is where documents are written
func (d *HTMLDumps) Dir() string {
	return d.dir
}

// generateFilename creates a timestamped filename for name
func generateFilename(name string) string {
	return time.Now().Format("2006-01-02T15-04-05") + "-" + name + ".html"
}

// DumpHTML saves a rendered document.
// Returns the path to the saved file.
func (d *HTMLDumps) DumpHTML(name, html string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dump dir: %w", err)
	}

	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	path := filepath.Join(d.dir, generateFilename(name))

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write html dump: %w", err)
	}

	return path, nil
}

// Latest returns the path to the most recent dump.
// os.ReadDir sorts by name, which is chronological for our timestamps.
func (d *HTMLDumps) Latest() (string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no html dumps in %s", d.dir)
		}
		return "", err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no html dumps in %s", d.dir)
	}

	return filepath.Join(d.dir, files[len(files)-1]), nil
}
