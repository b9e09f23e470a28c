package convert

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Block
	}{
		{"title", "# My Title", Block{Kind: BlockTitle, Level: 1, Text: "My Title"}},
		{"title strips bold", "# **Big** News", Block{Kind: BlockTitle, Level: 1, Text: "Big News"}},
		{"h2", "## Section", Block{Kind: BlockHeading, Level: 2, Text: "Section"}},
		{"h3 maps to level 2", "### Sub **section**", Block{Kind: BlockHeading, Level: 2, Text: "Sub section"}},
		{"h4 maps to level 3", "#### Detail", Block{Kind: BlockHeading, Level: 3, Text: "Detail"}},
		{"h5 is skipped", "##### Too deep", Block{Kind: BlockSkip}},
		{"hashtag is skipped", "#golang", Block{Kind: BlockSkip}},
		{"rule", "---", Block{Kind: BlockRule}},
		{"rule prefix", "-----", Block{Kind: BlockRule}},
		{"rule beats bullet", "--- not a bullet", Block{Kind: BlockRule}},
		{"dash bullet", "- Item one", Block{Kind: BlockBullet, Text: "Item one"}},
		{"star bullet", "*  Item two ", Block{Kind: BlockBullet, Text: "Item two"}},
		{"numbered", "1. First", Block{Kind: BlockNumbered, Text: "First"}},
		{"numbered keeps no digit", "42.   Answer", Block{Kind: BlockNumbered, Text: "Answer"}},
		{"number without space is paragraph", "3.14 is pi", Block{Kind: BlockParagraph, Text: "3.14 is pi"}},
		{"paragraph trimmed", "   Plain text here  ", Block{Kind: BlockParagraph, Text: "Plain text here"}},
		{"italic paragraph is not a bullet", "*emphasis* first", Block{Kind: BlockParagraph, Text: "*emphasis* first"}},
		{"blank", "   \t", Block{Kind: BlockSkip}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLine(tt.line))
		})
	}
}

func TestClassifyLineIsIndependentOfNeighbours(t *testing.T) {
	lines := []string{"# Title", "- bullet", "", "1. one", "---", "text", "##### skip"}

	first := make([]Block, len(lines))
	for i, line := range lines {
		first[i] = ClassifyLine(line)
	}

	reversed := slices.Clone(lines)
	slices.Reverse(reversed)
	for i, line := range reversed {
		assert.Equal(t, first[len(lines)-1-i], ClassifyLine(line), "line %q", line)
	}
}

func TestBlocksDropsSkipLinesAndKeepsOrder(t *testing.T) {
	markdown := "# Title\n\nIntro line\r\n##### hidden\n- a\n2. b\n---\n"

	got := slices.Collect(Blocks(markdown))

	require.Len(t, got, 5)
	kinds := make([]BlockKind, len(got))
	for i, b := range got {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []BlockKind{BlockTitle, BlockParagraph, BlockBullet, BlockNumbered, BlockRule}, kinds)
	assert.Equal(t, "Intro line", got[1].Text)
}

func TestBlocksWrappedParagraphBecomesSeveralBlocks(t *testing.T) {
	got := slices.Collect(Blocks("first half of a sentence\nsecond half"))

	require.Len(t, got, 2)
	assert.Equal(t, "first half of a sentence", got[0].Text)
	assert.Equal(t, "second half", got[1].Text)
}

func TestBlocksStopsWhenConsumerStops(t *testing.T) {
	var seen []string
	for block := range Blocks("one\ntwo\nthree") {
		seen = append(seen, block.Text)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, seen)
}
