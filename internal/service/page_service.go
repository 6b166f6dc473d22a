package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/landingpages/internal/metrics"
	"github.com/landingpages/internal/store"
	"github.com/landingpages/internal/view"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	fallbackSlug      = "page"
	maxCreateAttempts = 16
)

var (
	ErrTitleMissing  = errors.New("page title is required")
	ErrSlugExhausted = errors.New("no free page filename")
)

// PageRenderer produces the HTML document for a page.
type PageRenderer interface {
	Render(fields view.Fields) (string, error)
	Theme() view.Theme
}

// PageFiles persists rendered pages.
type PageFiles interface {
	Create(filename, html string) error
	List() ([]store.Entry, error)
}

// PageRef identifies a newly generated page.
type PageRef struct {
	Slug     string `json:"slug"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// PageItem is one entry of the page listing.
type PageItem struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	ModifiedAt time.Time `json:"-"`
}

// PageService generates landing pages and lists the ones on disk.
type PageService struct {
	renderer PageRenderer
	files    PageFiles
	urlPath  string
	now      func() time.Time
}

// NewPageService returns a new PageService instance. urlPath is the public
// prefix generated pages are served under.
func NewPageService(renderer PageRenderer, files PageFiles, urlPath string) *PageService {
	return &PageService{
		renderer: renderer,
		files:    files,
		urlPath:  "/" + strings.Trim(urlPath, "/"),
		now:      time.Now,
	}
}

// CreatePage renders fields and writes them to a new file named after the
// title slug and the current unix millisecond. A taken filename moves the
// timestamp forward by one millisecond.
func (s *PageService) CreatePage(fields view.Fields) (*PageRef, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return nil, ErrTitleMissing
	}

	base := Slugify(fields.Title)
	if base == "" {
		base = fallbackSlug
	}

	started := time.Now()
	html, err := s.renderer.Render(fields)
	metrics.RenderSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.PageErrors.WithLabelValues("render").Inc()
		return nil, fmt.Errorf("render page: %w", err)
	}

	stamp := s.now().UnixMilli()
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		slug := fmt.Sprintf("%s-%d", base, stamp+int64(attempt))
		filename := slug + store.PageExt

		err := s.files.Create(filename, html)
		if err == nil {
			metrics.PagesCreated.WithLabelValues(string(s.renderer.Theme())).Inc()
			return &PageRef{Slug: slug, Filename: filename, URL: s.pageURL(filename)}, nil
		}
		if !errors.Is(err, store.ErrExists) {
			metrics.PageErrors.WithLabelValues("write").Inc()
			return nil, err
		}
	}

	metrics.PageErrors.WithLabelValues("write").Inc()
	return nil, fmt.Errorf("%w: %s", ErrSlugExhausted, base)
}

// ListPages returns generated pages, most recently modified first.
func (s *PageService) ListPages() ([]PageItem, error) {
	entries, err := s.files.List()
	if err != nil {
		metrics.PageErrors.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("list pages: %w", err)
	}

	items := make([]PageItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, PageItem{
			Filename:   entry.Filename,
			URL:        s.pageURL(entry.Filename),
			ModifiedAt: entry.ModTime,
		})
	}
	return items, nil
}

func (s *PageService) pageURL(filename string) string {
	return path.Join(s.urlPath, filename)
}

// Slugify lower-cases title and joins its runs of ASCII letters, digits and
// Han characters with single hyphens.
func Slugify(title string) string {
	folded := norm.NFKC.String(strings.TrimSpace(title))
	lowered := cases.Lower(language.Und).String(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range lowered {
		if !isSlugRune(r) {
			pendingHyphen = true
			continue
		}
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.Is(unicode.Han, r)
}
