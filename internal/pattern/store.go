// Package pattern provides read-only access to the pattern library: reference
// snippets addressed by hierarchical key, each optionally carrying metadata
// lines that tell the engine where derived files belong.
package pattern

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const cacheSize = 256

var (
	outputDirRe  = regexp.MustCompile(`@output-dir\s+(.+)`)
	fileNamingRe = regexp.MustCompile(`@file-naming\s+(.+)`)
)

// Metadata is the placement information declared inside a pattern body.
type Metadata struct {
	OutputDir  string
	FileNaming string
}

// DefaultMetadata applies when a pattern declares no placement lines.
func DefaultMetadata() Metadata {
	return Metadata{OutputDir: "output", FileNaming: "{resource}.js"}
}

// Store loads pattern bodies from a directory tree. Keys are relative paths
// without the extension, e.g. "javascript/express/routes/get-users-auth".
// Bodies are cached; a filesystem watcher drops the cache when the tree
// changes underneath a running session.
type Store struct {
	root    string
	ext     string
	logger  *zap.Logger
	cache   *lru.Cache[string, string]
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore opens a pattern store rooted at the given directory. The watcher
// is best-effort; if it cannot be created the store still works, just
// without invalidation.
func NewStore(root, ext string, logger *zap.Logger) (*Store, error) {
	if ext == "" {
		ext = ".js"
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		root:   root,
		ext:    ext,
		logger: logger,
		cache:  cache,
		done:   make(chan struct{}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("pattern watcher unavailable, cache will not invalidate",
			zap.Error(err))
		return s, nil
	}
	s.watcher = watcher
	if err := watcher.Add(root); err != nil {
		logger.Debug("pattern root not watchable", zap.String("root", root), zap.Error(err))
	}
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			watcher.Add(path)
		}
		return nil
	})
	go s.watch()

	return s, nil
}

func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.invalidate()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Debug("pattern watcher error", zap.Error(err))
		}
	}
}

// invalidate drops every cached body. The next Load re-reads from disk.
func (s *Store) invalidate() {
	s.cache.Purge()
}

// Close stops the watcher goroutine.
func (s *Store) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Load returns the pattern body for a key. A missing pattern is signaled by
// ok=false; the caller decides whether to skip or fall back.
func (s *Store) Load(key string) (string, bool) {
	if body, ok := s.cache.Get(key); ok {
		return body, true
	}

	path, ok := s.keyPath(key)
	if !ok {
		s.logger.Warn("pattern key escapes pattern root", zap.String("key", key))
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	body := string(data)
	s.cache.Add(key, body)
	return body, true
}

// Metadata parses the placement declarations out of a pattern body. Absent
// declarations fall back to defaults; a missing pattern returns ok=false.
func (s *Store) Metadata(key string) (Metadata, bool) {
	body, ok := s.Load(key)
	if !ok {
		return Metadata{}, false
	}
	return ParseMetadata(body), true
}

// ParseMetadata extracts placement declarations from a pattern body.
func ParseMetadata(body string) Metadata {
	meta := DefaultMetadata()
	if m := outputDirRe.FindStringSubmatch(body); m != nil {
		meta.OutputDir = strings.TrimSpace(m[1])
	}
	if m := fileNamingRe.FindStringSubmatch(body); m != nil {
		meta.FileNaming = strings.TrimSpace(m[1])
	}
	return meta
}

// FileName resolves the naming template for a resource.
func (m Metadata) FileName(resource string) string {
	return strings.ReplaceAll(m.FileNaming, "{resource}", resource)
}

// List enumerates every pattern key under the root, sorted by walk order.
func (s *Store) List() []string {
	var keys []string
	filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, s.ext) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), s.ext)
		keys = append(keys, key)
		return nil
	})
	return keys
}

// keyPath maps a key to an on-disk path, rejecting traversal outside the
// root.
func (s *Store) keyPath(key string) (string, bool) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	path := filepath.Join(s.root, cleaned+s.ext)

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", false
	}
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if pathAbs != rootAbs && !strings.HasPrefix(pathAbs, rootAbs+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}
