package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// ErrHyperlinksUnsupported is reported to the logger when the writer has no
// hyperlink capability and links degrade to underlined text.
var ErrHyperlinksUnsupported = errors.New("convert: writer does not support hyperlinks")

const (
	defaultRuleGlyph = "─"
	defaultRuleWidth = 50
)

// Options tunes how blocks are rendered.
type Options struct {
	// RuleGlyph is repeated RuleWidth times to draw a horizontal rule.
	RuleGlyph string
	RuleWidth int
	Logger    interfaces.Logger
}

// Stats summarises a conversion.
type Stats struct {
	Blocks        int
	Links         int
	LinkFallbacks int
}

// Converter drives the block parser, span resolver and emphasis formatter
// against a DocumentWriter. A Converter holds no per-conversion state and is
// safe for concurrent use.
type Converter struct {
	rule   string
	logger interfaces.Logger
}

// New returns a Converter with defaults filled in.
func New(opts Options) *Converter {
	glyph := opts.RuleGlyph
	if glyph == "" {
		glyph = defaultRuleGlyph
	}
	width := opts.RuleWidth
	if width <= 0 {
		width = defaultRuleWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Converter{
		rule:   strings.Repeat(glyph, width),
		logger: logger,
	}
}

// Convert emits one element per non-skip block of markdown into w.
// Malformed markup never fails the conversion.
func (c *Converter) Convert(markdown string, w interfaces.DocumentWriter) Stats {
	var stats Stats
	for block := range Blocks(markdown) {
		stats.Blocks++
		switch block.Kind {
		case BlockRule:
			w.AddParagraph(interfaces.ParagraphBody)
			w.AddRun(c.rule, interfaces.RunStyle{})
		case BlockTitle:
			w.AddHeading(block.Level, interfaces.AlignCenter)
			c.emitEmphasis(w, block.Text)
		case BlockHeading:
			w.AddHeading(block.Level, interfaces.AlignDefault)
			c.emitEmphasis(w, block.Text)
		case BlockBullet:
			w.AddParagraph(interfaces.ParagraphBullet)
			c.emitInline(w, block.Text, &stats)
		case BlockNumbered:
			w.AddParagraph(interfaces.ParagraphNumbered)
			c.emitInline(w, block.Text, &stats)
		case BlockParagraph:
			w.AddParagraph(interfaces.ParagraphBody)
			c.emitInline(w, block.Text, &stats)
		}
	}
	c.logger.Debug("convert.completed",
		"blocks", stats.Blocks,
		"links", stats.Links,
		"link_fallbacks", stats.LinkFallbacks,
	)
	return stats
}

func (c *Converter) emitInline(w interfaces.DocumentWriter, text string, stats *Stats) {
	for _, span := range ResolveSpans(text) {
		if span.Kind == SpanLink {
			stats.Links++
			if !c.emitHyperlink(w, span.URL, span.Text) {
				stats.LinkFallbacks++
			}
			continue
		}
		c.emitEmphasis(w, span.Text)
	}
}

func (c *Converter) emitEmphasis(w interfaces.DocumentWriter, text string) {
	for _, run := range Emphasize(text) {
		w.AddRun(run.Text, run.Style)
	}
}

// emitHyperlink appends a clickable link, or the underlined display text
// when the writer cannot build one. It reports whether a real link was added.
func (c *Converter) emitHyperlink(w interfaces.DocumentWriter, url, text string) bool {
	err := ErrHyperlinksUnsupported
	if hw, ok := w.(interfaces.HyperlinkWriter); ok {
		err = addHyperlink(hw, url, text)
	}
	if err == nil {
		return true
	}
	c.logger.Warn("convert.hyperlink.fallback", "url", url, "error", err)
	w.AddRun(text, interfaces.RunStyle{Underline: true})
	return false
}

func addHyperlink(hw interfaces.HyperlinkWriter, url, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("convert: hyperlink construction panicked: %v", r)
		}
	}()
	return hw.AddHyperlink(url, text)
}
