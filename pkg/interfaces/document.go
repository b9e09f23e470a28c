package interfaces

import "io"

// Alignment controls horizontal placement of a heading or paragraph.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignCenter
)

// ParagraphKind selects the structural role of a paragraph element.
type ParagraphKind int

const (
	ParagraphBody ParagraphKind = iota
	ParagraphBullet
	ParagraphNumbered
)

// String returns the identifier used in logs.
func (k ParagraphKind) String() string {
	switch k {
	case ParagraphBullet:
		return "bullet"
	case ParagraphNumbered:
		return "numbered"
	default:
		return "body"
	}
}

// RunStyle describes the character formatting applied to a single run.
type RunStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// DocumentWriter is the capability set the conversion pipeline needs from an
// output format. Every Add* call opens a new element (heading or paragraph)
// and subsequent runs are appended to that element until the next one opens.
type DocumentWriter interface {
	AddHeading(level int, align Alignment)
	AddParagraph(kind ParagraphKind)
	AddRun(text string, style RunStyle)
	WriteTo(w io.Writer) (int64, error)
}

// HyperlinkWriter is implemented by writers that can embed clickable links.
// Writers without it receive the display text as an underlined run instead.
type HyperlinkWriter interface {
	AddHyperlink(url, text string) error
}
