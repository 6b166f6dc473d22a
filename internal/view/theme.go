package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// UntitledPlaceholder is rendered when a page has no title.
const UntitledPlaceholder = "無標題"

// Theme names one of the fixed page layouts.
type Theme string

const (
	// ThemeArticle is the light article layout.
	ThemeArticle Theme = "article"
	// ThemeRelease is the dark release layout with cover art and credits.
	ThemeRelease Theme = "release"
)

// ErrUnknownTheme is returned by ParseTheme for unsupported names.
var ErrUnknownTheme = errors.New("unknown page theme")

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// ParseTheme resolves a configured theme name. An empty name selects the
// release layout.
func ParseTheme(raw string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ThemeRelease), "dark":
		return ThemeRelease, nil
	case string(ThemeArticle), "light":
		return ThemeArticle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, raw)
	}
}

// Fields is the caller supplied data interpolated into a page. Which
// fields are used depends on the theme.
type Fields struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Credits       string `json:"credits"`
	Intro         string `json:"intro"`
	Link1         string `json:"link1"`
	Link2         string `json:"link2"`
	CoverImageURL string `json:"coverImageUrl"`
}

// Options toggles optional processing of interpolated fields.
type Options struct {
	// SanitizeFields escapes text fields and drops unsafe URLs. Off by
	// default: fields are interpolated verbatim.
	SanitizeFields bool
	// ArticleMarkdown renders article content as Markdown.
	ArticleMarkdown bool
}

// Renderer turns Fields into a standalone HTML document.
type Renderer struct {
	theme    Theme
	options  Options
	tmpl     *template.Template
	markdown goldmark.Markdown
	strict   *bluemonday.Policy
	ugc      *bluemonday.Policy
}

// New builds a renderer for the given theme.
func New(theme Theme, options Options) (*Renderer, error) {
	var name string
	switch theme {
	case ThemeArticle:
		name = "article.html.tmpl"
	case ThemeRelease:
		name = "release.html.tmpl"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	tmpl, err := template.New(name).Option("missingkey=zero").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return &Renderer{
		theme:    theme,
		options:  options,
		tmpl:     tmpl,
		markdown: newMarkdownEngine(),
		strict:   bluemonday.StrictPolicy(),
		ugc:      bluemonday.UGCPolicy(),
	}, nil
}

// Theme reports the layout this renderer produces.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render interpolates fields into the theme template. The output depends
// only on fields and the renderer options.
func (r *Renderer) Render(fields Fields) (string, error) {
	var data interface{}
	switch r.theme {
	case ThemeArticle:
		content, err := r.articleContent(fields.Content)
		if err != nil {
			return "", err
		}
		data = articlePage{
			Title:   r.text(titleOrPlaceholder(fields.Title)),
			Content: content,
			Links:   r.links(fields.Link1, fields.Link2),
		}
	default:
		credits := splitCredits(fields.Credits)
		for i, line := range credits {
			credits[i] = r.text(line)
		}
		data = releasePage{
			Title:         r.text(titleOrPlaceholder(fields.Title)),
			Intro:         r.text(fields.Intro),
			Credits:       credits,
			CoverImageURL: r.url(fields.CoverImageURL),
			Links:         r.links(fields.Link1, fields.Link2),
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s page: %w", r.theme, err)
	}
	return buf.String(), nil
}

type pageLink struct {
	Label string
	URL   string
	Icon  string
}

type articlePage struct {
	Title   string
	Content string
	Links   []pageLink
}

type releasePage struct {
	Title         string
	Intro         string
	Credits       []string
	CoverImageURL string
	Links         []pageLink
}

func titleOrPlaceholder(title string) string {
	if strings.TrimSpace(title) == "" {
		return UntitledPlaceholder
	}
	return title
}

// splitCredits breaks the credits field into display lines, dropping blanks.
func splitCredits(credits string) []string {
	normalized := strings.ReplaceAll(credits, "\r\n", "\n")
	lines := make([]string, 0, strings.Count(normalized, "\n")+1)
	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func (r *Renderer) links(link1, link2 string) []pageLink {
	links := make([]pageLink, 0, 2)
	for i, raw := range []string{link1, link2} {
		target := r.url(raw)
		if target == "" {
			continue
		}
		links = append(links, pageLink{
			Label: fmt.Sprintf("連結%d", i+1),
			URL:   target,
			Icon:  LinkIconSVG(target),
		})
	}
	return links
}
