// Package docx writes WordprocessingML (.docx) packages. Document implements
// interfaces.DocumentWriter and interfaces.HyperlinkWriter so the conversion
// pipeline can target it directly; it knows nothing about markdown.
package docx
