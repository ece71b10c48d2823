// Package guidelines loads and caches the static guideline documents served
// to the calling assistant.
//
// A guideline document is markdown with YAML frontmatter. The frontmatter
// must carry a description; the body is served verbatim. One document, the
// Conventional Commits guide, is compiled into the binary so the server works
// with no configuration at all; a configured directory can add or override
// documents.
package guidelines

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"commitkit/internal/logging"

	_ "embed"

	"github.com/adrg/frontmatter"
)

//go:embed docs/conventional-commits.md
var bundledConventionalCommits []byte

// DefaultIdentifier names the bundled Conventional Commits guideline.
const DefaultIdentifier = "conventional-commits"

var (
	// ErrGuidelineNotFound indicates no document exists for the identifier.
	ErrGuidelineNotFound = errors.New("guideline not found")

	// ErrGuidelineRead indicates the backing file exists but could not be
	// read or parsed. Both conditions are deployment defects, not transient.
	ErrGuidelineRead = errors.New("guideline read failed")
)

// DocumentFrontmatter is the YAML frontmatter expected in guideline files
type DocumentFrontmatter struct {
	Identifier  string `yaml:"identifier,omitempty"`
	Description string `yaml:"description"`
}

// Document is a parsed guideline, immutable once loaded.
type Document struct {
	Identifier  string
	Description string

	// Content is the document body with frontmatter stripped.
	Content string

	// SourcePath is the file the document came from, or "builtin" for the
	// bundled guide.
	SourcePath string
}

// Store loads guideline documents and caches them for the process lifetime.
// Documents are treated as immutable configuration: they are read once and
// never live-reloaded. Concurrent first loads may each read the file; all
// converge on equal content and the last cache write wins.
type Store struct {
	dir    string
	logger *logging.AppLogger

	mu    sync.RWMutex
	cache map[string]Document
}

// NewStore creates a Store. dir may be empty, in which case only the bundled
// document is available.
func NewStore(dir string, logger *logging.AppLogger) *Store {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Store{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]Document),
	}
}

// Load returns the guideline document for identifier, reading it from disk at
// most once per process lifetime.
func (s *Store) Load(identifier string) (Document, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		identifier = DefaultIdentifier
	}

	s.mu.RLock()
	doc, ok := s.cache[identifier]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	doc, err := s.read(identifier)
	if err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	s.cache[identifier] = doc
	s.mu.Unlock()

	s.logger.Debug("Guideline loaded",
		"identifier", doc.Identifier,
		"source", doc.SourcePath,
	)
	return doc, nil
}

// Identifiers lists every loadable document: the bundled guide plus any .md
// files in the configured directory.
func (s *Store) Identifiers() []string {
	seen := map[string]bool{DefaultIdentifier: true}

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			s.logger.Warn("Failed to scan guideline directory", "dir", s.dir, "error", err)
		} else {
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
					continue
				}
				seen[strings.TrimSuffix(e.Name(), ".md")] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// read resolves and parses a document without touching the cache.
// A configured directory takes precedence over the bundled document so
// deployments can override the default guide.
func (s *Store) read(identifier string) (Document, error) {
	if s.dir != "" {
		path := filepath.Join(s.dir, identifier+".md")
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			return parseDocument(identifier, path, raw)
		case !os.IsNotExist(err):
			return Document{}, fmt.Errorf("%w: %s: %v", ErrGuidelineRead, path, err)
		}
	}

	if identifier == DefaultIdentifier {
		return parseDocument(identifier, "builtin", bundledConventionalCommits)
	}

	return Document{}, fmt.Errorf("%w: %s", ErrGuidelineNotFound, identifier)
}

// parseDocument splits frontmatter from body and validates required fields.
func parseDocument(identifier, sourcePath string, raw []byte) (Document, error) {
	var matter DocumentFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: no valid frontmatter: %v", ErrGuidelineRead, sourcePath, err)
	}

	if strings.TrimSpace(matter.Description) == "" {
		return Document{}, fmt.Errorf("%w: %s: missing required 'description' field", ErrGuidelineRead, sourcePath)
	}

	if matter.Identifier != "" {
		identifier = matter.Identifier
	}

	return Document{
		Identifier:  identifier,
		Description: matter.Description,
		Content:     string(body),
		SourcePath:  sourcePath,
	}, nil
}
