// Package markdown holds the goldmark-backed HTML preview renderer, front
// matter extraction for generated articles, a filesystem article source and
// a DocumentWriter that renders converted articles back into normalized
// markdown.
package markdown
