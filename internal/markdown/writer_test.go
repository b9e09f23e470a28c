package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-article/internal/convert"
	"github.com/goliatone/go-article/pkg/interfaces"
)

const sampleArticle = `# **AI Trends** in 2025

## Overview

This is *important* and **bold**.

- Check [OpenAI](https://openai.com)
- Visit https://go.dev today

1. First
2. Second

---

Source list [Source: https://example.com/report]
`

func renderArticle(t *testing.T, source string) string {
	t.Helper()
	w := NewWriter()
	convert.New(convert.Options{}).Convert(source, w)
	return w.String()
}

func TestWriterNormalizesConvertedArticle(t *testing.T) {
	want := "# AI Trends in 2025\n\n" +
		"## Overview\n\n" +
		"This is *important* and **bold**.\n\n" +
		"- Check [OpenAI](https://openai.com)\n" +
		"- Visit [https://go.dev](https://go.dev) today\n\n" +
		"1. First\n" +
		"1. Second\n\n" +
		strings.Repeat("─", 50) + "\n\n" +
		`Source list \[Source: https://example.com/report\]` + "\n"

	assert.Equal(t, want, renderArticle(t, sampleArticle))
}

func TestWriterPreviewRendersStructure(t *testing.T) {
	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse([]byte(renderArticle(t, sampleArticle)))
	require.NoError(t, err)

	doc := mustDocument(t, html)
	assert.Equal(t, "AI Trends in 2025", doc.Find("h1").Text())
	assert.Equal(t, "Overview", doc.Find("h2").Text())
	assert.Equal(t, "important", doc.Find("p em").Text())
	assert.Equal(t, "bold", doc.Find("p strong").Text())
	assert.Equal(t, 2, doc.Find("ul > li").Length())
	assert.Equal(t, 2, doc.Find("ol > li").Length())

	openai, ok := doc.Find("ul > li").First().Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://openai.com", openai)

	golang, ok := doc.Find("ul > li").Last().Find("a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", golang)
}

func TestWriterKeepsStrayMarkersLiteral(t *testing.T) {
	out := renderArticle(t, "Check **[OpenAI](https://openai.com)** for more_info.\n")
	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse([]byte(out))
	require.NoError(t, err)

	doc := mustDocument(t, html)
	assert.Equal(t, 0, doc.Find("strong").Length())
	assert.Equal(t, "Check **OpenAI** for more_info.", doc.Find("p").Text())
}

func TestWriterEscapesLeadingHash(t *testing.T) {
	w := NewWriter()
	w.AddParagraph(interfaces.ParagraphBody)
	w.AddRun("#hashtag trends", interfaces.RunStyle{})

	assert.Equal(t, "\\#hashtag trends\n", w.String())
}

func TestWriterEscapesLeadingBlockMarkers(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "blockquote", text: "> quoted remark", want: "\\> quoted remark\n"},
		{name: "plus bullet", text: "+ extra point", want: "\\+ extra point\n"},
		{name: "paren ordinal", text: "1) first step", want: "1\\) first step\n"},
		{name: "dot ordinal", text: "2025. was busy", want: "2025\\. was busy\n"},
		{name: "year without marker", text: "2025 was busy", want: "2025 was busy\n"},
		{name: "inner marker", text: "a > b + c", want: "a > b + c\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter()
			w.AddParagraph(interfaces.ParagraphBody)
			w.AddRun(tc.text, interfaces.RunStyle{})
			assert.Equal(t, tc.want, w.String())
		})
	}
}

func TestWriterLeadingMarkersStayParagraphsInPreview(t *testing.T) {
	out := renderArticle(t, "> not a quote\n\n+ not a list\n\n1) not ordered\n")
	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse([]byte(out))
	require.NoError(t, err)

	doc := mustDocument(t, html)
	assert.Equal(t, 0, doc.Find("blockquote").Length())
	assert.Equal(t, 0, doc.Find("ul, ol").Length())
	require.Equal(t, 3, doc.Find("p").Length())
	assert.Equal(t, "> not a quote", doc.Find("p").Eq(0).Text())
	assert.Equal(t, "+ not a list", doc.Find("p").Eq(1).Text())
	assert.Equal(t, "1) not ordered", doc.Find("p").Eq(2).Text())
}

func TestWriterUnderlineRunIsPlainText(t *testing.T) {
	w := NewWriter()
	w.AddRun("OpenAI", interfaces.RunStyle{Underline: true})

	assert.Equal(t, "OpenAI\n", w.String())
}

func TestWriterWrapsTargetsWithSpaces(t *testing.T) {
	w := NewWriter()
	w.AddParagraph(interfaces.ParagraphBody)
	require.NoError(t, w.AddHyperlink("http://open ai.com", "OpenAI"))

	assert.Equal(t, "[OpenAI](<http://open ai.com>)\n", w.String())
}

func TestWriterEmpty(t *testing.T) {
	var b strings.Builder
	n, err := NewWriter().WriteTo(&b)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, b.String())
}
