package article_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	article "github.com/goliatone/go-article"
	"github.com/goliatone/go-article/internal/di"
	"github.com/goliatone/go-article/pkg/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleArticle = `# AI Trends in 2025

## Overview

AI adoption is **accelerating** across *every* sector.

- Read [the report](https://example.com/report)
- Visit https://go.dev for tooling

---

Data from surveys [Source: https://example.com/survey]
`

type captureSink struct {
	artifacts []interfaces.Artifact
}

func (s *captureSink) Deliver(_ context.Context, artifacts []interfaces.Artifact) error {
	s.artifacts = append(s.artifacts, artifacts...)
	return nil
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

func TestModuleExportsDefaultFormats(t *testing.T) {
	module, err := article.New(article.DefaultConfig())
	require.NoError(t, err)
	defer module.Close()

	result, err := module.ExportArticle(context.Background(), article.ExportRequest{
		Topic:    "AI Trends in 2025!",
		Markdown: sampleArticle,
	})
	require.NoError(t, err)

	assert.Equal(t, "ai_trends_in_2025", result.BaseName)
	assert.Equal(t, "AI Trends in 2025", result.Title)
	require.Len(t, result.Artifacts, 2)

	md, ok := result.Artifact(article.FormatMarkdown)
	require.True(t, ok)
	assert.Equal(t, "ai_trends_in_2025_article.md", md.Filename)
	assert.Equal(t, sampleArticle, string(md.Data))

	doc, ok := result.Artifact(article.FormatDOCX)
	require.True(t, ok)
	assert.Equal(t, "ai_trends_in_2025_article.docx", doc.Filename)

	body := readPart(t, doc.Data, "word/document.xml")
	assert.Contains(t, body, `<w:pStyle w:val="Heading1"/><w:jc w:val="center"/>`)
	assert.Contains(t, body, "accelerating")
	assert.Contains(t, body, "[Source: https://example.com/survey]")

	rels := readPart(t, doc.Data, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Target="https://example.com/report"`)
	assert.Contains(t, rels, `Target="https://go.dev"`)
	assert.NotContains(t, rels, "example.com/survey")
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := article.DefaultConfig()
	cfg.Document.RuleWidth = -1

	_, err := article.New(cfg)
	assert.ErrorIs(t, err, article.ErrRuleWidthInvalid)
}

func TestModuleEmptyArticle(t *testing.T) {
	module, err := article.New(article.DefaultConfig())
	require.NoError(t, err)

	_, err = module.Export().Export(context.Background(), article.ExportRequest{Topic: "Empty", Markdown: "  \n"})
	assert.True(t, errors.Is(err, article.ErrEmptyArticle), "got %v", err)
}

func TestModuleExportHandlerDeliversToSink(t *testing.T) {
	sink := &captureSink{}
	module, err := article.New(article.DefaultConfig(), di.WithArtifactSink(sink))
	require.NoError(t, err)
	defer module.Close()

	handler := module.ExportHandler()
	require.NotNil(t, handler)

	err = handler.Execute(context.Background(), article.ExportArticleCommand{
		Topic:    "Quantum Computing",
		Markdown: "# Quantum Computing\n\nQubits *everywhere*.\n",
		Formats:  []string{"docx"},
	})
	require.NoError(t, err)
	require.Len(t, sink.artifacts, 1)
	assert.Equal(t, "quantum_computing_article.docx", sink.artifacts[0].Filename)
}

func TestModuleExportHandlerNilWhenCommandsDisabled(t *testing.T) {
	cfg := article.DefaultConfig()
	cfg.Features.Commands = false

	module, err := article.New(cfg)
	require.NoError(t, err)
	assert.Nil(t, module.ExportHandler())
}

func TestMarkdownToDOCX(t *testing.T) {
	data, err := article.MarkdownToDOCX("# Title\n\nBody with **bold**.\n")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("PK")))

	body := readPart(t, data, "word/document.xml")
	assert.Contains(t, body, "<w:b/>")
	assert.True(t, strings.Contains(body, ">Title<"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "ai_trends_in_2025", article.SanitizeFilename("AI Trends in 2025!"))
	assert.Equal(t, "article", article.SanitizeFilename("?!"))
}
