package convert

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SpanKind distinguishes plain text from hyperlinks inside a block.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanLink
)

// Span is a contiguous fragment of a block's text. Text spans may still carry
// emphasis markers; link spans carry the display text and target URL.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// TextSpan builds a plain text span.
func TextSpan(text string) Span { return Span{Kind: SpanText, Text: text} }

// LinkSpan builds a hyperlink span.
func LinkSpan(text, url string) Span { return Span{Kind: SpanLink, Text: text, URL: url} }

// citationWindow is how many characters before a bare URL are searched for
// the citation marker.
const citationWindow = 15

const citationMarker = "Source:"

var (
	// "Further reading Link (https://x)" is a common generation artifact.
	linkWithURL  = regexp.MustCompile(`Link\s+\(([^)]+)\)`)
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://[^\s\)\],]+`)
)

// NormalizeLinkArtifacts rewrites every "Link (URL)" occurrence to "URL".
func NormalizeLinkArtifacts(text string) string {
	return linkWithURL.ReplaceAllString(text, "$1")
}

// ResolveSpans splits a block's text into ordered text and link spans.
// Markdown links and bare URLs are never mixed in one block: when the text
// holds at least one [text](url) link, bare URLs stay plain text.
func ResolveSpans(text string) []Span {
	text = NormalizeLinkArtifacts(text)

	matches := markdownLink.FindAllStringSubmatchIndex(text, -1)
	processedLinks := len(matches) > 0

	var spans []Span
	pos := 0
	if processedLinks {
		for _, m := range matches {
			if m[0] > pos {
				spans = append(spans, TextSpan(text[pos:m[0]]))
			}
			spans = append(spans, LinkSpan(text[m[2]:m[3]], text[m[4]:m[5]]))
			pos = m[1]
		}
	} else {
		for _, m := range bareURL.FindAllStringIndex(text, -1) {
			if isCitation(text, m[0]) {
				continue
			}
			if m[0] > pos {
				spans = append(spans, TextSpan(text[pos:m[0]]))
			}
			url := text[m[0]:m[1]]
			spans = append(spans, LinkSpan(url, url))
			pos = m[1]
		}
	}

	if pos < len(text) || len(spans) == 0 {
		spans = append(spans, TextSpan(text[pos:]))
	}
	return spans
}

// isCitation reports whether the characters preceding offset contain the
// "Source:" marker, so "[Source: https://...]" stays unlinked.
func isCitation(text string, offset int) bool {
	start := offset
	for n := 0; n < citationWindow && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	return strings.Contains(text[start:offset], citationMarker)
}
