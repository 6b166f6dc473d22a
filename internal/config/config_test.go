package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "STATIC_ROOT", "PAGES_DIR", "PAGES_URL_PATH", "PAGE_THEME", "SANITIZE_FIELDS", "ARTICLE_MARKDOWN", "GIN_MODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.ListenAddr != ":3000" {
		t.Fatalf("expected listen addr :3000, got %q", cfg.ListenAddr)
	}
	if cfg.StaticRoot != "public" {
		t.Fatalf("expected static root public, got %q", cfg.StaticRoot)
	}
	if cfg.PagesDir != filepath.Join("public", "pages") {
		t.Fatalf("unexpected pages dir %q", cfg.PagesDir)
	}
	if cfg.PagesURLPath != "/pages" {
		t.Fatalf("unexpected pages url path %q", cfg.PagesURLPath)
	}
	if cfg.PageTheme != "release" {
		t.Fatalf("expected release theme by default, got %q", cfg.PageTheme)
	}
	if cfg.SanitizeFields || cfg.ArticleMarkdown {
		t.Fatalf("expected sanitize and markdown to be off by default")
	}
	if cfg.GinMode != "release" {
		t.Fatalf("expected gin release mode, got %q", cfg.GinMode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("STATIC_ROOT", "site")
	t.Setenv("PAGES_DIR", "")
	t.Setenv("PAGES_URL_PATH", "landing/")
	t.Setenv("PAGE_THEME", " Article ")
	t.Setenv("SANITIZE_FIELDS", "true")
	t.Setenv("ARTICLE_MARKDOWN", "not-a-bool")
	t.Setenv("GIN_MODE", "debug")

	cfg := Load()

	if cfg.ListenAddr != ":8081" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.ListenAddr)
	}
	if cfg.PagesDir != filepath.Join("site", "pages") {
		t.Fatalf("expected pages dir under static root, got %q", cfg.PagesDir)
	}
	if cfg.PagesURLPath != "/landing" {
		t.Fatalf("expected normalized url path, got %q", cfg.PagesURLPath)
	}
	if cfg.PageTheme != "article" {
		t.Fatalf("expected article theme, got %q", cfg.PageTheme)
	}
	if !cfg.SanitizeFields {
		t.Fatalf("expected sanitize to be enabled")
	}
	if cfg.ArticleMarkdown {
		t.Fatalf("expected invalid bool to fall back to false")
	}
	if cfg.GinMode != "debug" {
		t.Fatalf("expected gin debug mode, got %q", cfg.GinMode)
	}
}
