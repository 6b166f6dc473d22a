package handler

import (
	"path/filepath"
	"strings"

	"github.com/landingpages/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages      *service.PageService
	staticRoot string
	pagesDir   string
	pagesURL   string
}

// NewAPI constructs a handler set. Requests under pagesURL are resolved
// against pagesDir, every other static request against staticRoot.
func NewAPI(pages *service.PageService, staticRoot, pagesDir, pagesURL string) *API {
	return &API{
		pages:      pages,
		staticRoot: filepath.Clean(staticRoot),
		pagesDir:   filepath.Clean(pagesDir),
		pagesURL:   "/" + strings.Trim(pagesURL, "/"),
	}
}
