package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// MIMEType is the media type of a WordprocessingML package.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DefaultHyperlinkColor is the hex RGB applied to hyperlink runs.
const DefaultHyperlinkColor = "0563C1"

var (
	// ErrNoParagraph is returned when a hyperlink is added before any element.
	ErrNoParagraph = errors.New("docx: hyperlink requires an open paragraph")
	// ErrInvalidHyperlink is returned for targets that cannot be stored as an
	// external relationship.
	ErrInvalidHyperlink = errors.New("docx: invalid hyperlink target")
)

// Options configures document styling and core properties.
type Options struct {
	HyperlinkColor string
	Title          string
	Subject        string
	Creator        string
	Keywords       []string
	Now            func() time.Time
	Logger         interfaces.Logger
}

// Document accumulates paragraphs and hyperlink relationships and serializes
// them as a .docx package. A Document is built by a single goroutine.
type Document struct {
	opts       Options
	paragraphs []*paragraph
	links      []relationship
	linkIDs    map[string]string
	logger     interfaces.Logger
}

type paragraph struct {
	style   string
	align   interfaces.Alignment
	content []inline
}

// inline is either a plain run or a run wrapped in a hyperlink (relID set).
type inline struct {
	text  string
	style interfaces.RunStyle
	relID string
}

type relationship struct {
	id     string
	target string
}

var (
	_ interfaces.DocumentWriter  = (*Document)(nil)
	_ interfaces.HyperlinkWriter = (*Document)(nil)
)

// New returns an empty document.
func New(opts Options) *Document {
	if opts.HyperlinkColor == "" {
		opts.HyperlinkColor = DefaultHyperlinkColor
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Document{
		opts:    opts,
		linkIDs: map[string]string{},
		logger:  logger,
	}
}

// AddHeading opens a Heading1..Heading3 paragraph.
func (d *Document) AddHeading(level int, align interfaces.Alignment) {
	level = min(max(level, 1), 3)
	d.paragraphs = append(d.paragraphs, &paragraph{
		style: "Heading" + strconv.Itoa(level),
		align: align,
	})
}

// AddParagraph opens a body or list paragraph.
func (d *Document) AddParagraph(kind interfaces.ParagraphKind) {
	p := &paragraph{}
	switch kind {
	case interfaces.ParagraphBullet:
		p.style = "ListBullet"
	case interfaces.ParagraphNumbered:
		p.style = "ListNumber"
	}
	d.paragraphs = append(d.paragraphs, p)
}

// AddRun appends a styled run to the open paragraph, opening a body
// paragraph when none exists.
func (d *Document) AddRun(text string, style interfaces.RunStyle) {
	if text == "" {
		return
	}
	p := d.current()
	if p == nil {
		d.AddParagraph(interfaces.ParagraphBody)
		p = d.current()
	}
	p.content = append(p.content, inline{text: text, style: style})
}

// AddHyperlink appends a clickable, colored, underlined run pointing at
// target. Identical targets share one relationship.
func (d *Document) AddHyperlink(target, text string) error {
	p := d.current()
	if p == nil {
		return ErrNoParagraph
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("%w: empty target", ErrInvalidHyperlink)
	}
	if _, err := url.Parse(target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHyperlink, err)
	}

	id, ok := d.linkIDs[target]
	if !ok {
		id = "rId" + strconv.Itoa(firstHyperlinkRel+len(d.links))
		d.links = append(d.links, relationship{id: id, target: target})
		d.linkIDs[target] = id
	}
	p.content = append(p.content, inline{
		text:  text,
		style: interfaces.RunStyle{Underline: true},
		relID: id,
	})
	return nil
}

// Paragraphs reports how many paragraphs have been opened.
func (d *Document) Paragraphs() int {
	return len(d.paragraphs)
}

// Hyperlinks reports how many distinct hyperlink targets the document holds.
func (d *Document) Hyperlinks() int {
	return len(d.links)
}

func (d *Document) current() *paragraph {
	if len(d.paragraphs) == 0 {
		return nil
	}
	return d.paragraphs[len(d.paragraphs)-1]
}

// WriteTo serializes the package as a zip archive.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/app.xml", []byte(appXML)},
		{"docProps/core.xml", d.coreXML()},
		{"word/document.xml", d.documentXML()},
		{"word/styles.xml", d.stylesXML()},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
	}

	modified := d.opts.Now()
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("docx: create %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.body); err != nil {
			return cw.n, fmt.Errorf("docx: write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("docx: finalize package: %w", err)
	}

	d.logger.Debug("docx.package.written",
		"paragraphs", len(d.paragraphs),
		"hyperlinks", len(d.links),
		"bytes", cw.n,
	)
	return cw.n, nil
}

// Bytes serializes the package into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
