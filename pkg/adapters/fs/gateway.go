// Package fs implements the persistence gateway on the local filesystem.
//
// Each memo set owns two sibling artifacts in the project root: a structured
// record file `<title>.<suffix>.json` (the authoritative, round-trippable
// form) and a narrative file `<title>.<suffix>.md` (a regenerated Markdown
// export). Every write is a whole-file overwrite: update and delete rewrite
// history, which an append-only log could not represent.
package fs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/render"
)

// DefaultSuffix is the marker token in memo set file names.
const DefaultSuffix = "code_memo"

// Config holds the configuration for the filesystem gateway.
type Config struct {
	Root      string // project root directory
	Suffix    string // file name marker, e.g. "code_memo"
	MustExist bool
	Logger    *slog.Logger
}

// Gateway translates between the in-memory store shape and the per-set
// on-disk artifacts. It implements core.Gateway.
type Gateway struct {
	root   string
	suffix string
	config Config
	logger *slog.Logger

	mu            sync.RWMutex
	watcherActive bool
}

// NewGateway creates a filesystem gateway rooted at the project directory.
func NewGateway(config Config) *Gateway {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}
	return &Gateway{
		root:   config.Root,
		suffix: config.Suffix,
		config: config,
		logger: config.Logger,
	}
}

// Initialize ensures the project root is usable.
func (g *Gateway) Initialize() error {
	if g.config.MustExist {
		info, err := os.Stat(g.root)
		if os.IsNotExist(err) {
			return fmt.Errorf("project root does not exist: %s", g.root)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("project root is not a directory: %s", g.root)
		}
		return nil
	}

	if err := os.MkdirAll(g.root, 0755); err != nil {
		return fmt.Errorf("failed to create project root: %w", err)
	}
	return nil
}

// structuredPattern matches memo set record file names for this gateway.
func (g *Gateway) structuredPattern() string {
	return "*." + g.suffix + ".json"
}

func (g *Gateway) structuredMarker() string {
	return "." + g.suffix + ".json"
}

func (g *Gateway) narrativeMarker() string {
	return "." + g.suffix + ".md"
}

// DiscoverTitles lists the titles of all memo sets present in the project
// root, in directory order (sorted by file name).
func (g *Gateway) DiscoverTitles() ([]string, error) {
	entries, err := os.ReadDir(g.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read project root: %w", err)
	}

	var titles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(g.structuredPattern(), entry.Name()); !ok {
			continue
		}
		titles = append(titles, strings.TrimSuffix(entry.Name(), g.structuredMarker()))
	}
	return titles, nil
}

// LoadAll reads every memo set record file in the project root, tags each
// record with its set title, and re-indexes the result by file path, the
// exact shape Store.Seed consumes.
//
// A malformed record file is skipped with a warning so one corrupt set never
// blocks session startup.
func (g *Gateway) LoadAll() (map[string][]core.Tagged, error) {
	entries, err := os.ReadDir(g.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read project root: %w", err)
	}

	index := make(map[string][]core.Tagged)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(g.structuredPattern(), entry.Name()); !ok {
			continue
		}

		title := strings.TrimSuffix(entry.Name(), g.structuredMarker())
		path := filepath.Join(g.root, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			if g.logger != nil {
				g.logger.Warn("failed to read memo set file, skipping", "path", path, "error", err)
			}
			continue
		}

		var records []core.Record
		if err := json.Unmarshal(data, &records); err != nil {
			if g.logger != nil {
				g.logger.Warn("malformed memo set file, skipping", "path", path, "error", err)
			}
			continue
		}

		for _, rec := range records {
			index[rec.FilePath] = append(index[rec.FilePath], core.Tagged{Set: title, Record: rec})
		}
	}

	return index, nil
}

// WriteSet overwrites both artifacts for one memo set with the given
// complete, current record list. The structured file is pretty-printed JSON
// in full fidelity; the narrative file is regenerated from scratch so it can
// never drift from the structured data. It returns both resulting paths.
func (g *Gateway) WriteSet(title string, records []core.Record) (string, string, error) {
	normalized := core.NormalizeTitle(title)
	structuredPath := filepath.Join(g.root, normalized+g.structuredMarker())
	narrativePath := filepath.Join(g.root, normalized+g.narrativeMarker())

	if records == nil {
		records = []core.Record{} // an emptied set serializes as [], not null
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize memo set %q: %w", title, err)
	}
	if err := writeFileAtomic(structuredPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write record file: %w", err)
	}

	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, render.Markdown(rec))
	}
	narrative := "# " + title + "\n" + strings.Join(blocks, "\n")
	if err := writeFileAtomic(narrativePath, []byte(narrative), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write narrative file: %w", err)
	}

	if g.logger != nil {
		g.logger.Debug("memo set written", "set", title, "records", len(records), "path", structuredPath)
	}
	return structuredPath, narrativePath, nil
}

func (g *Gateway) setWatcherActive(active bool) {
	g.mu.Lock()
	g.watcherActive = active
	g.mu.Unlock()
}

var _ core.Gateway = (*Gateway)(nil)
