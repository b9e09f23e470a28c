package convert

import (
	"strings"

	"github.com/goliatone/go-article/pkg/interfaces"
)

// Run is a piece of text with the character style it is emitted with.
type Run struct {
	Text  string
	Style interfaces.RunStyle
}

// Emphasize resolves **bold** and then *italic* markup into styled runs.
// Bold is split first; only the non-bold fragments are rescanned for italics,
// so the two never nest. "***x***" is not recognized as bold italic and keeps
// its stray asterisks. Fragments that end up empty produce no run.
func Emphasize(text string) []Run {
	var runs []Run
	for i, part := range splitBold(text) {
		if i%2 == 1 {
			if part != "" {
				runs = append(runs, Run{Text: part, Style: interfaces.RunStyle{Bold: true}})
			}
			continue
		}
		for j, piece := range splitItalic(part) {
			if piece == "" {
				continue
			}
			runs = append(runs, Run{Text: piece, Style: interfaces.RunStyle{Italic: j%2 == 1}})
		}
	}
	return runs
}

// splitBold splits around non-greedy **...** pairs. Odd indexes hold the
// bold content; the slice always has an odd length.
func splitBold(text string) []string {
	matches := boldMarkup.FindAllStringSubmatchIndex(text, -1)
	parts := make([]string, 0, len(matches)*2+1)
	pos := 0
	for _, m := range matches {
		parts = append(parts, text[pos:m[0]], text[m[2]:m[3]])
		pos = m[1]
	}
	return append(parts, text[pos:])
}

// splitItalic splits around *x* pairs where neither asterisk touches another
// asterisk and the content holds no asterisk. Odd indexes hold the italic
// content.
func splitItalic(text string) []string {
	var parts []string
	pos := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '*' || (i > 0 && text[i-1] == '*') {
			continue
		}
		end := strings.IndexByte(text[i+1:], '*')
		if end <= 0 {
			continue
		}
		closing := i + 1 + end
		if closing+1 < len(text) && text[closing+1] == '*' {
			continue
		}
		parts = append(parts, text[pos:i], text[i+1:closing])
		pos = closing + 1
		i = closing
	}
	return append(parts, text[pos:])
}
