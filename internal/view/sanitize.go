package view

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var allowedURLSchemes = map[string]bool{
	"":       true,
	"http":   true,
	"https":  true,
	"mailto": true,
}

// cssURLEscaper percent-encodes characters that could end a url('...')
// value inside an inline style attribute.
var cssURLEscaper = strings.NewReplacer(
	"'", "%27",
	`"`, "%22",
	"(", "%28",
	")", "%29",
	`\`, "%5C",
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
	"\f", "%0C",
)

func newMarkdownEngine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
}

// text returns value as-is unless sanitizing is enabled.
func (r *Renderer) text(value string) string {
	if !r.options.SanitizeFields {
		return value
	}
	return r.strict.Sanitize(value)
}

// url trims a link or image address. With sanitizing enabled, addresses
// using schemes other than http, https and mailto are dropped, and quotes,
// parentheses, backslashes and whitespace are percent-encoded.
func (r *Renderer) url(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !r.options.SanitizeFields {
		return trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || !allowedURLSchemes[strings.ToLower(parsed.Scheme)] {
		return ""
	}
	return r.strict.Sanitize(cssURLEscaper.Replace(trimmed))
}

func (r *Renderer) articleContent(content string) (string, error) {
	if !r.options.ArticleMarkdown {
		return r.text(content), nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	if r.options.SanitizeFields {
		return r.ugc.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}
