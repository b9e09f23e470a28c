package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-article/pkg/interfaces"
)

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var defaultExtensions = []string{"gfm", "linkify", "tasklist"}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[normalizeExtension(name)]
	return ok
}

// GoldmarkParser renders article previews with goldmark. Engines are built
// once per distinct option set and reused; a parser is safe for concurrent
// use.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engines  sync.Map // engineKey -> goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser constructs a parser with the supplied defaults. An empty
// extension list enables GFM, linkify and task lists.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaults: defaults}
}

// Parse renders markdown with the parser's defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

// ParseWithOptions renders markdown with opts. SafeMode replaces raw HTML
// with a placeholder comment. Sanitize keeps raw HTML but strips scripts,
// embedded frames, event handler attributes and script URLs. SafeMode wins
// when both are set.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine(opts).Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	if opts.SafeMode || !opts.Sanitize {
		return buf.Bytes(), nil
	}
	return SanitizeHTML(buf.Bytes())
}

type engineKey struct {
	extensions string
	hardWraps  bool
	unsafe     bool
}

func (p *GoldmarkParser) engine(opts interfaces.ParseOptions) goldmark.Markdown {
	names := resolveExtensions(opts.Extensions)
	key := engineKey{
		extensions: strings.Join(names, ","),
		hardWraps:  opts.HardWraps,
		unsafe:     !opts.SafeMode,
	}
	if cached, ok := p.engines.Load(key); ok {
		return cached.(goldmark.Markdown)
	}

	var rendererOptions []renderer.Option
	if key.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if key.unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	extenders := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		extenders = append(extenders, extensionRegistry[name])
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	actual, _ := p.engines.LoadOrStore(key, engine)
	return actual.(goldmark.Markdown)
}

// resolveExtensions returns the known, normalized extension names in first
// seen order.
func resolveExtensions(names []string) []string {
	if len(names) == 0 {
		return defaultExtensions
	}
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		key := normalizeExtension(name)
		if _, ok := extensionRegistry[key]; !ok || slices.Contains(resolved, key) {
			continue
		}
		resolved = append(resolved, key)
	}
	return resolved
}

func normalizeExtension(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var droppedElements = "script, style, iframe, frame, frameset, object, embed, form, input, button, textarea, select, link, meta, base"

// SanitizeHTML removes active content from an HTML fragment: script-like
// elements, on* attributes and javascript:, vbscript: or data: URLs in href
// and src.
func SanitizeHTML(fragment []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("markdown sanitize: %w", err)
	}
	doc.Find(droppedElements).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		var drop []string
		for _, attr := range s.Nodes[0].Attr {
			key := strings.ToLower(attr.Key)
			switch {
			case strings.HasPrefix(key, "on"):
				drop = append(drop, attr.Key)
			case (key == "href" || key == "src" || key == "xlink:href") && unsafeURL(attr.Val):
				drop = append(drop, attr.Key)
			}
		}
		for _, key := range drop {
			s.RemoveAttr(key)
		}
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("markdown sanitize: %w", err)
	}
	return []byte(body), nil
}

func unsafeURL(value string) bool {
	v := strings.ToLower(strings.Join(strings.Fields(value), ""))
	return strings.HasPrefix(v, "javascript:") ||
		strings.HasPrefix(v, "vbscript:") ||
		strings.HasPrefix(v, "data:")
}
