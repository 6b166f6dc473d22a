package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestEnsureDirectoryCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "pages")
	s := NewPageStore(dir)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.EnsureDirectory(); err != nil {
				t.Errorf("ensure directory failed: %v", err)
			}
		}()
	}
	wg.Wait()

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected pages dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected pages path to be a directory")
	}

	if err := NewPageStore(dir).EnsureDirectory(); err != nil {
		t.Fatalf("expected existing directory to be accepted: %v", err)
	}
}

func TestEnsureDirectoryRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	err := NewPageStore(path).EnsureDirectory()
	if !errors.Is(err, ErrNotDir) {
		t.Fatalf("expected ErrNotDir, got %v", err)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := NewPageStore(t.TempDir())

	if err := s.Write("a.html", "first"); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := s.Write("a.html", "second"); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "a.html"))
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", data)
	}
}

func TestWriteFailsWhenDirectoryMissing(t *testing.T) {
	s := NewPageStore(filepath.Join(t.TempDir(), "missing"))
	if err := s.Write("a.html", "x"); err == nil {
		t.Fatalf("expected write into missing directory to fail")
	}
}

func TestCreateIsExclusive(t *testing.T) {
	s := NewPageStore(t.TempDir())

	if err := s.Create("page-1.html", "one"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := s.Create("page-1.html", "two")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), "page-1.html"))
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("expected original content to survive, got %q", data)
	}
}

type shortWriteFile struct {
	*os.File
	err error
}

func (f shortWriteFile) WriteString(s string) (int, error) {
	n, _ := f.File.WriteString(s[:len(s)/2])
	return n, f.err
}

func TestCreateRemovesPartialFile(t *testing.T) {
	s := NewPageStore(t.TempDir())
	diskFull := errors.New("no space left on device")
	s.openExclusive = func(path string) (pageFile, error) {
		file, err := openExclusive(path)
		if err != nil {
			return nil, err
		}
		return shortWriteFile{File: file, err: diskFull}, nil
	}

	if err := s.Create("a.html", "<p>complete page</p>"); !errors.Is(err, diskFull) {
		t.Fatalf("expected write error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), "a.html")); !os.IsNotExist(err) {
		t.Fatalf("expected partial file to be removed, stat returned %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no listed pages, got %+v", entries)
	}
}

func TestRejectsInvalidNames(t *testing.T) {
	s := NewPageStore(t.TempDir())
	for _, name := range []string{"", ".", "..", "../escape.html", "nested/a.html", `back\slash.html`} {
		if err := s.Write(name, "x"); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName for %q, got %v", name, err)
		}
		if err := s.Create(name, "x"); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName from create for %q, got %v", name, err)
		}
	}
}

func TestListSortsByModTimeDescending(t *testing.T) {
	s := NewPageStore(t.TempDir())
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	files := []struct {
		name string
		age  time.Duration
	}{
		{name: "old.html", age: 3 * time.Hour},
		{name: "newest.html", age: 0},
		{name: "middle.html", age: time.Hour},
	}
	for _, f := range files {
		if err := s.Write(f.name, f.name); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		mtime := base.Add(-f.age)
		if err := os.Chtimes(filepath.Join(s.Dir(), f.name), mtime, mtime); err != nil {
			t.Fatalf("chtimes failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatalf("failed to write non-page file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "dir.html"), 0o755); err != nil {
		t.Fatalf("failed to create directory fixture: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	expected := []string{"newest.html", "middle.html", "old.html"}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, name := range expected {
		if entries[i].Filename != name {
			t.Fatalf("expected %s at %d, got %s", name, i, entries[i].Filename)
		}
	}
}

func TestListBreaksTiesByName(t *testing.T) {
	s := NewPageStore(t.TempDir())
	mtime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"a.html", "c.html", "b.html"} {
		if err := s.Write(name, name); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if err := os.Chtimes(filepath.Join(s.Dir(), name), mtime, mtime); err != nil {
			t.Fatalf("chtimes failed: %v", err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if entries[0].Filename != "c.html" || entries[2].Filename != "a.html" {
		t.Fatalf("unexpected tie order: %+v", entries)
	}
}

func TestListFailsForMissingDirectory(t *testing.T) {
	s := NewPageStore(filepath.Join(t.TempDir(), "missing"))
	if _, err := s.List(); err == nil {
		t.Fatalf("expected list of missing directory to fail")
	}
}
