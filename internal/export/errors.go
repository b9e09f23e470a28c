package export

import "errors"

var (
	// ErrEmptyArticle is returned when the article source produced no text.
	ErrEmptyArticle = errors.New("export: article is empty")
	// ErrFormatUnknown is returned for formats outside docx, markdown and html.
	ErrFormatUnknown = errors.New("export: unknown format")
	// ErrDOCXGeneration wraps any failure while building the Word document.
	// Other artifacts of the same export are still returned.
	ErrDOCXGeneration = errors.New("export: docx generation failed")
	// ErrHTMLGeneration wraps preview rendering failures.
	ErrHTMLGeneration = errors.New("export: html generation failed")
)
