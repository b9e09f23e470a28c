// Package export turns a generated article into downloadable artifacts:
// the raw markdown, a Word document and an HTML preview.
package export
