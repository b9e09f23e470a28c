package convert

import (
	"iter"
	"regexp"
	"strings"
)

// BlockKind classifies a single markdown line.
type BlockKind int

const (
	BlockSkip BlockKind = iota
	BlockTitle
	BlockHeading
	BlockBullet
	BlockNumbered
	BlockRule
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockHeading:
		return "heading"
	case BlockBullet:
		return "bullet"
	case BlockNumbered:
		return "numbered"
	case BlockRule:
		return "rule"
	case BlockParagraph:
		return "paragraph"
	default:
		return "skip"
	}
}

// Block is the classified form of one markdown line. Level is the output
// heading level (1 for titles, 2 or 3 for headings) and zero otherwise.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+\.\s`)
	numberedStrip  = regexp.MustCompile(`^\d+\.\s+`)
	boldMarkup     = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// headingPrefixes is checked in order; "#### " must win over "### ".
var headingPrefixes = []struct {
	prefix string
	kind   BlockKind
	level  int
}{
	{"# ", BlockTitle, 1},
	{"#### ", BlockHeading, 3},
	{"### ", BlockHeading, 2},
	{"## ", BlockHeading, 2},
}

// ClassifyLine turns one raw line into a Block. The result depends on the
// line alone.
func ClassifyLine(line string) Block {
	line = strings.TrimSpace(line)
	if line == "" {
		return Block{Kind: BlockSkip}
	}

	if strings.HasPrefix(line, "---") {
		return Block{Kind: BlockRule}
	}

	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			text := strings.TrimSpace(line[len(h.prefix):])
			return Block{Kind: h.kind, Level: h.level, Text: StripBold(text)}
		}
	}

	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return Block{Kind: BlockBullet, Text: strings.TrimSpace(line[2:])}
	}

	if numberedPrefix.MatchString(line) {
		return Block{Kind: BlockNumbered, Text: strings.TrimSpace(numberedStrip.ReplaceAllString(line, ""))}
	}

	if !strings.HasPrefix(line, "#") {
		return Block{Kind: BlockParagraph, Text: line}
	}
	return Block{Kind: BlockSkip}
}

// StripBold removes **bold** markers and keeps their content.
func StripBold(text string) string {
	return boldMarkup.ReplaceAllString(text, "$1")
}

// Blocks yields the non-skip blocks of markdown in source order. The sequence
// splits lines as it goes, so a consumer that stops early never classifies
// the remainder.
func Blocks(markdown string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for line := range strings.Lines(markdown) {
			block := ClassifyLine(line)
			if block.Kind == BlockSkip {
				continue
			}
			if !yield(block) {
				return
			}
		}
	}
}
