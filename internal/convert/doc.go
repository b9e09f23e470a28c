// Package convert turns the markdown produced by the writing agent into a
// sequence of document elements. Lines are classified one at a time
// (headings, list items, rules, paragraphs), each block's text is split into
// link and text spans, and text spans are split into bold, italic and plain
// runs. Output goes to any interfaces.DocumentWriter, so the same pipeline
// feeds the DOCX writer and the markdown passthrough writer.
package convert
