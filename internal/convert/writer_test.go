package convert

import (
	"io"

	"github.com/goliatone/go-article/pkg/interfaces"
)

type element struct {
	kind    string
	level   int
	align   interfaces.Alignment
	para    interfaces.ParagraphKind
	runs    []Run
	links   []Span
	ordered []string
}

// recordingWriter captures elements without hyperlink support.
type recordingWriter struct {
	elements []*element
}

func (r *recordingWriter) AddHeading(level int, align interfaces.Alignment) {
	r.elements = append(r.elements, &element{kind: "heading", level: level, align: align})
}

func (r *recordingWriter) AddParagraph(kind interfaces.ParagraphKind) {
	r.elements = append(r.elements, &element{kind: "paragraph", para: kind})
}

func (r *recordingWriter) AddRun(text string, style interfaces.RunStyle) {
	el := r.current()
	el.runs = append(el.runs, Run{Text: text, Style: style})
	el.ordered = append(el.ordered, "run:"+text)
}

func (r *recordingWriter) WriteTo(io.Writer) (int64, error) { return 0, nil }

func (r *recordingWriter) current() *element {
	if len(r.elements) == 0 {
		r.elements = append(r.elements, &element{kind: "implicit"})
	}
	return r.elements[len(r.elements)-1]
}

// linkingWriter adds hyperlink support; fail forces errors and panicking
// forces a panic from AddHyperlink.
type linkingWriter struct {
	recordingWriter
	fail      error
	panicking bool
}

func (l *linkingWriter) AddHyperlink(url, text string) error {
	if l.panicking {
		panic("relationship table corrupted")
	}
	if l.fail != nil {
		return l.fail
	}
	el := l.current()
	el.links = append(el.links, LinkSpan(text, url))
	el.ordered = append(el.ordered, "link:"+text)
	return nil
}
