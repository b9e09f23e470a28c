package markdown

import (
	"io"
	"regexp"
	"strings"

	"github.com/goliatone/go-article/pkg/interfaces"
)

type elementKind int

const (
	elementBody elementKind = iota
	elementHeading
	elementBullet
	elementNumbered
)

type element struct {
	kind  elementKind
	level int
	text  strings.Builder
}

// Writer is a DocumentWriter that renders a converted article as normalized
// CommonMark. Runs are escaped so stray emphasis markers stay literal, and
// fallback runs (underline only) are written as plain text.
type Writer struct {
	elements []*element
}

var (
	_ interfaces.DocumentWriter  = (*Writer)(nil)
	_ interfaces.HyperlinkWriter = (*Writer)(nil)
)

// NewWriter returns an empty markdown writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddHeading opens an ATX heading. Alignment has no markdown form.
func (w *Writer) AddHeading(level int, _ interfaces.Alignment) {
	w.elements = append(w.elements, &element{kind: elementHeading, level: min(max(level, 1), 6)})
}

// AddParagraph opens a body paragraph or a list item.
func (w *Writer) AddParagraph(kind interfaces.ParagraphKind) {
	el := &element{kind: elementBody}
	switch kind {
	case interfaces.ParagraphBullet:
		el.kind = elementBullet
	case interfaces.ParagraphNumbered:
		el.kind = elementNumbered
	}
	w.elements = append(w.elements, el)
}

// AddRun appends text to the open element.
func (w *Writer) AddRun(text string, style interfaces.RunStyle) {
	if text == "" {
		return
	}
	el := w.current()
	marker := ""
	switch {
	case style.Bold:
		marker = "**"
	case style.Italic:
		marker = "*"
	}
	escaped := escapeText(text)
	if marker == "" && el.text.Len() == 0 {
		escaped = escapeLeadingMarker(escaped)
	}
	el.text.WriteString(marker)
	el.text.WriteString(escaped)
	el.text.WriteString(marker)
}

// AddHyperlink appends an inline link.
func (w *Writer) AddHyperlink(url, text string) error {
	el := w.current()
	el.text.WriteString("[")
	el.text.WriteString(escapeText(text))
	el.text.WriteString("](")
	if strings.ContainsAny(url, " <>") {
		el.text.WriteString("<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(url) + ">")
	} else {
		el.text.WriteString(url)
	}
	el.text.WriteString(")")
	return nil
}

func (w *Writer) current() *element {
	if len(w.elements) == 0 {
		w.AddParagraph(interfaces.ParagraphBody)
	}
	return w.elements[len(w.elements)-1]
}

// String renders the accumulated elements. Consecutive list items of the
// same kind stay in one list; everything else is separated by a blank line.
func (w *Writer) String() string {
	var b strings.Builder
	for i, el := range w.elements {
		if i > 0 {
			prev := w.elements[i-1]
			if el.kind == prev.kind && (el.kind == elementBullet || el.kind == elementNumbered) {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		switch el.kind {
		case elementHeading:
			b.WriteString(strings.Repeat("#", el.level) + " ")
		case elementBullet:
			b.WriteString("- ")
		case elementNumbered:
			b.WriteString("1. ")
		}
		b.WriteString(el.text.String())
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTo writes the rendered markdown to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.String())
	return int64(n), err
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
	"<", `\<`,
)

func escapeText(text string) string {
	return textEscaper.Replace(text)
}

// leadingMarker matches text that CommonMark would read as a heading,
// blockquote or list item when it opens a line. Each alternative captures
// the punctuation to escape.
var leadingMarker = regexp.MustCompile(`^[ \t]*(?:\d{1,9}([.)])(?:[ \t]|$)|([#>])|([+-])(?:[ \t]|$))`)

// escapeLeadingMarker keeps an element's opening text a plain paragraph.
func escapeLeadingMarker(text string) string {
	m := leadingMarker.FindStringSubmatchIndex(text)
	if m == nil {
		return text
	}
	for i := 2; i < len(m); i += 2 {
		if m[i] >= 0 {
			return text[:m[i]] + `\` + text[m[i]:]
		}
	}
	return text
}
