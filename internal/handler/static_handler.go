package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const notFoundBody = "404 page not found"

// ServeStatic resolves unmatched GET and HEAD requests against the static
// root. Generated pages are looked up in the pages directory. Directories
// serve their index.html; dotfiles and misses are 404.
func (a *API) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, notFoundBody)
		return
	}

	full, ok := a.resolveStatic(c.Request.URL.Path)
	if !ok {
		c.String(http.StatusNotFound, notFoundBody)
		return
	}

	file, err := os.Open(full)
	if err != nil {
		c.String(http.StatusNotFound, notFoundBody)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		c.String(http.StatusNotFound, notFoundBody)
		return
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
}

func (a *API) resolveStatic(urlPath string) (string, bool) {
	cleaned := path.Clean("/" + urlPath)
	for _, segment := range strings.Split(cleaned, "/") {
		if strings.HasPrefix(segment, ".") {
			return "", false
		}
	}

	root, rel := a.staticRoot, cleaned
	if cleaned == a.pagesURL || strings.HasPrefix(cleaned, a.pagesURL+"/") {
		root, rel = a.pagesDir, strings.TrimPrefix(cleaned, a.pagesURL)
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
