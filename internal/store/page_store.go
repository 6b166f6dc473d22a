package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// PageExt is the extension of every generated page file.
const PageExt = ".html"

var (
	ErrExists      = errors.New("page file already exists")
	ErrInvalidName = errors.New("invalid page filename")
	ErrNotDir      = errors.New("pages path is not a directory")
)

// Entry describes one stored page file.
type Entry struct {
	Filename string
	ModTime  time.Time
}

type pageFile interface {
	io.StringWriter
	io.Closer
}

// PageStore keeps generated pages as files in a single directory.
type PageStore struct {
	dir string

	initOnce sync.Once
	initErr  error

	openExclusive func(path string) (pageFile, error)
}

// NewPageStore returns a store rooted at dir. The directory is not touched
// until EnsureDirectory is called.
func NewPageStore(dir string) *PageStore {
	return &PageStore{dir: dir, openExclusive: openExclusive}
}

func openExclusive(path string) (pageFile, error) {
	file, err := s.openExclusive(path)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Dir returns the directory pages are written to.
func (s *PageStore) Dir() string {
	return s.dir
}

// EnsureDirectory creates the pages directory and its parents if missing.
// Concurrent callers share a single attempt.
func (s *PageStore) EnsureDirectory() error {
	s.initOnce.Do(func() {
		s.initErr = ensureDir(s.dir)
	})
	return s.initErr
}

// Write creates or overwrites filename with html.
func (s *PageStore) Write(filename, html string) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", filename, err)
	}
	return nil
}

// Create writes html to a new file and fails with ErrExists when filename
// is already taken. A file that could not be fully written is removed.
func (s *PageStore) Create(filename, html string) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}

	file, err := s.openExclusive(path)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("create page %s: %w", filename, ErrExists)
		}
		return fmt.Errorf("create page %s: %w", filename, err)
	}

	if _, err := file.WriteString(html); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("write page %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close page %s: %w", filename, err)
	}
	return nil
}

// List returns stored page files, newest modification time first.
func (s *PageStore) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, item := range dirEntries {
		if !item.Type().IsRegular() || !strings.HasSuffix(item.Name(), PageExt) {
			continue
		}
		info, err := item.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat page %s: %w", item.Name(), err)
		}
		entries = append(entries, Entry{Filename: item.Name(), ModTime: info.ModTime()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].Filename > entries[j].Filename
		}
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

func (s *PageStore) path(filename string) (string, error) {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return filepath.Join(s.dir, filename), nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDir, dir)
		}
		return nil
	}

	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return fmt.Errorf("create pages dir: %w", mkErr)
		}
		return nil
	}

	return fmt.Errorf("stat pages dir: %w", err)
}
