package simrepo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flightsim-go/simconnect/internal/logger"
)

const defaultFileName = "simobjects.yaml"

// resolvePath returns filePath if set, otherwise path/simobjects.yaml.
func (r *Repository) resolvePath(filePath string) string {
	if filePath != "" {
		return filePath
	}
	return filepath.Join(r.path, defaultFileName)
}

// Load replaces the repository's contents with entries parsed from
// filePath (or the repository's default file, if filePath is empty).
// The format is a simplified, newline-delimited YAML-like layout: each
// entry starts with "- id: <id>" and is followed by up to four indented
// "  key: value" lines (tag, type, title, livery); blank lines and lines
// starting with '#' are ignored, per spec §6.3.
func (r *Repository) Load(filePath string) error {
	path := r.resolvePath(filePath)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("simrepo: open %q: %w", path, err)
	}
	defer f.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()

	var current Info
	inObject := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "- id:"):
			if inObject && current.ID != "" {
				r.setLocked(current)
			}
			inObject = true
			current = Info{ID: strings.TrimSpace(line[len("- id:"):])}
		case inObject && strings.HasPrefix(line, "  tag:"):
			current.Tag = strings.TrimSpace(line[len("  tag:"):])
		case inObject && strings.HasPrefix(line, "  type:"):
			current.Type = ParseType(strings.TrimSpace(line[len("  type:"):]))
		case inObject && strings.HasPrefix(line, "  title:"):
			current.Title = strings.TrimSpace(line[len("  title:"):])
		case inObject && strings.HasPrefix(line, "  livery:"):
			current.Livery = strings.TrimSpace(line[len("  livery:"):])
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("simrepo: read %q: %w", path, err)
	}
	if inObject && current.ID != "" {
		r.setLocked(current)
	}

	logger.Debug("simrepo: loaded", "path", path, "count", len(r.objects))
	return nil
}

// Save writes every entry to filePath (or the repository's default
// file, if filePath is empty), creating parent directories as needed.
func (r *Repository) Save(filePath string) error {
	path := r.resolvePath(filePath)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("simrepo: create %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simrepo: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# SimObject repository")
	fmt.Fprintln(w)

	r.mu.RLock()
	for _, info := range r.objects {
		fmt.Fprintf(w, "- id: %s\n", info.ID)
		if info.Tag != "" {
			fmt.Fprintf(w, "  tag: %s\n", info.Tag)
		}
		fmt.Fprintf(w, "  type: %s\n", info.Type.String())
		fmt.Fprintf(w, "  title: %s\n", info.Title)
		if info.Livery != "" {
			fmt.Fprintf(w, "  livery: %s\n", info.Livery)
		}
		fmt.Fprintln(w)
	}
	r.mu.RUnlock()

	return w.Flush()
}
