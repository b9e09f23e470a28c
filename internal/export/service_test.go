package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-article/internal/docx"
	"github.com/goliatone/go-article/pkg/interfaces"
)

const article = `# **AI Trends** in 2025

## Key developments

Models got *smaller* and **faster**.

- Read [the report](https://example.com/report?a=1&b=2)
- Visit https://go.dev today

---

[Source: https://example.com/citation]
`

var fixedTime = time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...ServiceOption) *service {
	t.Helper()
	opts = append([]ServiceOption{
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() uuid.UUID { return uuid.MustParse("11111111-2222-3333-4444-555555555555") }),
	}, opts...)
	svc, ok := NewService(DefaultConfig(), opts...).(*service)
	require.True(t, ok)
	return svc
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestExportDefaultFormats(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), Request{Topic: "AI Trends in 2025!", Markdown: article})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Artifacts, 2)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", result.ID.String())
	assert.Equal(t, "ai_trends_in_2025", result.BaseName)
	assert.Equal(t, "AI Trends in 2025", result.Title)
	assert.NotEmpty(t, result.Slug)
	assert.NotContains(t, result.Slug, " ")

	md, ok := result.Artifact("md")
	require.True(t, ok)
	assert.Equal(t, "ai_trends_in_2025_article.md", md.Filename)
	assert.Equal(t, MIMEMarkdown, md.MIMEType)
	assert.Equal(t, article, string(md.Data))

	word, ok := result.Artifact("docx")
	require.True(t, ok)
	assert.Equal(t, "ai_trends_in_2025_article.docx", word.Filename)
	assert.Equal(t, docx.MIMEType, word.MIMEType)

	document := readPart(t, word.Data, "word/document.xml")
	assert.Contains(t, document, `<w:pStyle w:val="Heading1"/><w:jc w:val="center"/>`)
	assert.Contains(t, document, `<w:t xml:space="preserve">`+strings.Repeat("─", 50)+`</w:t>`)
	assert.Contains(t, document, `[Source: https://example.com/citation]`)

	rels := readPart(t, word.Data, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Target="https://example.com/report?a=1&amp;b=2"`)
	assert.Contains(t, rels, `Target="https://go.dev"`)
	assert.NotContains(t, rels, "citation")

	core := readPart(t, word.Data, "docProps/core.xml")
	assert.Contains(t, core, "<dc:title>AI Trends in 2025</dc:title>")
	assert.Contains(t, core, "2025-05-04T10:30:00Z")
	assert.Contains(t, core, "<dc:creator>go-article</dc:creator>")

	assert.Equal(t, 2, result.Stats.Links)
	assert.Zero(t, result.Stats.LinkFallbacks)
}

func TestExportStripsFrontMatter(t *testing.T) {
	source := "---\ntitle: Header Title\nslug: custom-slug\ntopic: Edge AI\nauthor: Research Desk\ntags: [ai, edge]\n---\nPlain body without a title line.\n"
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), Request{Markdown: source, Formats: []string{"docx"}})
	require.NoError(t, err)

	assert.Equal(t, "Edge AI", result.Topic)
	assert.Equal(t, "edge_ai", result.BaseName)
	assert.Equal(t, "custom-slug", result.Slug)
	assert.Equal(t, "Header Title", result.Title)
	assert.Equal(t, []string{"ai", "edge"}, result.FrontMatter.Tags)

	word, ok := result.Artifact("docx")
	require.True(t, ok)
	document := readPart(t, word.Data, "word/document.xml")
	assert.NotContains(t, document, "slug:")
	assert.Contains(t, document, "Plain body without a title line.")

	core := readPart(t, word.Data, "docProps/core.xml")
	assert.Contains(t, core, "<dc:creator>Research Desk</dc:creator>")
	assert.Contains(t, core, "<cp:keywords>ai, edge, custom-slug</cp:keywords>")
}

func TestExportKeepsLeadingRule(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), Request{
		Topic:    "t",
		Markdown: "---\n# My Title\n---\nBody text here.\n",
		Formats:  []string{"docx"},
	})
	require.NoError(t, err)

	assert.Equal(t, "My Title", result.Title)
	assert.Equal(t, 4, result.Stats.Blocks)
	assert.Empty(t, result.FrontMatter.Raw)

	word, ok := result.Artifact("docx")
	require.True(t, ok)
	document := readPart(t, word.Data, "word/document.xml")
	assert.Equal(t, 2, strings.Count(document, strings.Repeat("─", 50)))
	assert.Contains(t, document, "My Title")
	assert.Contains(t, document, "Body text here.")
}

func TestExportTitleFallsBackToTopic(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), Request{Topic: "Quantum", Markdown: "No title here.\n"})
	require.NoError(t, err)
	assert.Equal(t, "Quantum", result.Title)

	cfg := DefaultConfig()
	cfg.TitleFallback = false
	result, err = NewService(cfg).Export(context.Background(), Request{Topic: "Quantum", Markdown: "No title here.\n"})
	require.NoError(t, err)
	assert.Empty(t, result.Title)
}

func TestExportHTMLPreview(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Export(context.Background(), Request{Topic: "AI Trends", Markdown: article, Formats: []string{"html"}})
	require.NoError(t, err)

	preview, ok := result.Artifact("html")
	require.True(t, ok)
	assert.Equal(t, "ai_trends_article.html", preview.Filename)
	assert.Equal(t, MIMEHTML, preview.MIMEType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(preview.Data))
	require.NoError(t, err)
	assert.Equal(t, "AI Trends in 2025", doc.Find("head title").Text())
	assert.Equal(t, "AI Trends in 2025", doc.Find("article h1").Text())
	assert.Equal(t, "Key developments", doc.Find("article h2").Text())
	assert.Equal(t, "smaller", doc.Find("article em").Text())
	assert.Equal(t, "faster", doc.Find("article strong").Text())

	href, ok := doc.Find("article li a").First().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/report?a=1&b=2", href)
}

func TestExportKeepsMarkdownWhenDOCXFails(t *testing.T) {
	svc := newTestService(t)
	svc.pack = func(*docx.Document) ([]byte, error) {
		return nil, errors.New("disk full")
	}

	result, err := svc.Export(context.Background(), Request{Topic: "AI", Markdown: article})
	require.NoError(t, err)

	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "ai_article.md", result.Artifacts[0].Filename)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], ErrDOCXGeneration)
	assert.ErrorContains(t, result.Err(), "disk full")
}

func TestExportRecoversFromDOCXPanic(t *testing.T) {
	svc := newTestService(t)
	svc.pack = func(*docx.Document) ([]byte, error) {
		panic("boom")
	}

	result, err := svc.Export(context.Background(), Request{Topic: "AI", Markdown: article, Formats: []string{"docx"}})
	require.ErrorIs(t, err, ErrDOCXGeneration)
	require.NotNil(t, result)
	assert.Empty(t, result.Artifacts)
}

type failingParser struct{}

func (failingParser) Parse([]byte) ([]byte, error) { return nil, errors.New("renderer down") }
func (failingParser) ParseWithOptions([]byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, errors.New("renderer down")
}

func TestExportHTMLFailureIsReported(t *testing.T) {
	svc := newTestService(t, WithParser(failingParser{}))

	result, err := svc.Export(context.Background(), Request{Topic: "AI", Markdown: article, Formats: []string{"markdown", "html"}})
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 1)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], ErrHTMLGeneration)
}

func TestExportValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Export(context.Background(), Request{Topic: "AI", Markdown: "  \n"})
	assert.ErrorIs(t, err, ErrEmptyArticle)

	_, err = svc.Export(context.Background(), Request{Topic: "AI", Markdown: article, Formats: []string{"pdf"}})
	assert.ErrorIs(t, err, ErrFormatUnknown)
}

func TestExportHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(t).Export(ctx, Request{Topic: "AI", Markdown: article})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportDeduplicatesFormats(t *testing.T) {
	result, err := newTestService(t).Export(context.Background(), Request{
		Topic:    "AI",
		Markdown: article,
		Formats:  []string{"md", "markdown", "Word", "docx"},
	})
	require.NoError(t, err)

	var formats []string
	for _, a := range result.Artifacts {
		formats = append(formats, a.Format)
	}
	assert.Equal(t, []string{"markdown", "docx"}, formats)
}

func TestExportPlaceholderName(t *testing.T) {
	result, err := newTestService(t).Export(context.Background(), Request{Topic: "???", Markdown: "Body.\n", Formats: []string{"md"}})
	require.NoError(t, err)
	assert.Equal(t, "article_article.md", result.Artifacts[0].Filename)
}

func TestMarkdownToDOCX(t *testing.T) {
	data, err := MarkdownToDOCX("# Title\n\nCheck [OpenAI](https://openai.com).\n")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")))

	document := readPart(t, data, "word/document.xml")
	assert.Contains(t, document, `<w:hyperlink r:id="rId3" w:history="1">`)
	assert.Contains(t, readPart(t, data, "docProps/core.xml"), "<dc:title>Title</dc:title>")
}
