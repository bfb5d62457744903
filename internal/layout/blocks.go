package layout

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fabricadebestseller/bookforge/internal/manuscript"
)

// Alignment is a paragraph justification value, using the container
// format's vocabulary.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Block is a typed renderable unit. The concrete types are Paragraph,
// Image, TwoColumnTable and BlankMarker.
type Block interface {
	isBlock()
}

// Run is a styled text span within a paragraph. TabBefore emits a tab
// character ahead of the text, used by TOC entries to reach the
// right-aligned page number through the dotted leader.
type Run struct {
	Text      string
	Bold      bool
	Style     Style
	TabBefore bool
}

// TabStop positions a custom tab within a paragraph.
type TabStop struct {
	Pos    int    // twips from the left margin
	Align  string // "left", "right", "center"
	Leader string // "dot", "none"
}

// Paragraph is the general text block. Zero values mean: left aligned,
// single spacing, no indent, no breaks.
type Paragraph struct {
	Runs            []Run
	Align           Alignment
	FirstLineIndent int // twips
	LineSpacing     int // 240ths of a line; 0 = single
	SpaceBefore     int // twips
	SpaceAfter      int // twips
	PageBreakBefore bool
	TabStops        []TabStop
}

func (Paragraph) isBlock() {}

// Image is a centered inline raster image. Width and Height are pixels
// at 96dpi.
type Image struct {
	Data   []byte
	Width  int
	Height int
}

func (Image) isBlock() {}

// TwoColumnTable is the copyright/credits page layout: a single
// borderless row with two equal columns of nested blocks.
type TwoColumnTable struct {
	Left  []Block
	Right []Block
}

func (TwoColumnTable) isBlock() {}

// BlankMarker renders as an empty paragraph. It exists only so a page can
// exist and stay empty, preserving parity for the following section.
type BlankMarker struct{}

func (BlankMarker) isBlock() {}

var upperCaser = cases.Upper(language.Und)

// BodyParagraphs sanitizes and splits raw text on blank-line boundaries
// into justified, indented, 1.5-spaced body paragraphs. Empty paragraphs
// are dropped. Empty input yields no blocks; callers substitute a
// placeholder so the physical page is never silently missing.
func BodyParagraphs(text string) []Block {
	clean := manuscript.Sanitize(text)

	var blocks []Block
	for _, para := range strings.Split(clean, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		runs := manuscript.Tokenize(para)
		if len(runs) == 0 {
			continue
		}
		blocks = append(blocks, Paragraph{
			Runs:            styledRuns(runs, BodyStyle),
			Align:           AlignJustify,
			FirstLineIndent: FirstLineIndent,
			LineSpacing:     BodyLineSpacing,
		})
	}
	return blocks
}

// TitleBlock builds a single large centered bold line.
func TitleBlock(text string, pageBreak bool) Block {
	return Paragraph{
		Runs:            []Run{{Text: text, Bold: true, Style: HeadingStyle}},
		Align:           AlignCenter,
		SpaceAfter:      CmToTwips(1),
		PageBreakBefore: pageBreak,
	}
}

// ChapterHeading builds the two stacked centered heading lines:
// "CHAPTER N" followed by the uppercased chapter title.
func ChapterHeading(number int, title string) []Block {
	return []Block{
		Paragraph{
			Runs:        []Run{{Text: fmt.Sprintf("CHAPTER %d", number), Bold: true, Style: HeadingStyle}},
			Align:       AlignCenter,
			SpaceBefore: CmToTwips(3),
		},
		Paragraph{
			Runs:       []Run{{Text: upperCaser.String(title), Bold: true, Style: HeadingStyle}},
			Align:      AlignCenter,
			SpaceAfter: CmToTwips(2),
		},
	}
}

// bodyStartPage is where arabic numbering restarts, matching the fixed
// page count of the front-matter sequence.
const bodyStartPage = 11

// tocPlaceholderPage projects a page number for TOC entry i (0 = the
// introduction). The numbers are a positional formula, not real
// pagination: the container format does not expose page counts before
// rendering. Known limitation, preserved deliberately.
func tocPlaceholderPage(i int) int {
	return bodyStartPage + i*2
}

// TOCEntries generates the table-of-contents entry blocks: one for the
// introduction label plus one per chapter, in input order, each with a
// dotted right-tab leader to its projected page number.
func TOCEntries(introLabel string, chapters []manuscript.Chapter) []Block {
	labels := make([]string, 0, len(chapters)+1)
	labels = append(labels, introLabel)
	for _, ch := range chapters {
		labels = append(labels, ch.Title)
	}

	blocks := make([]Block, 0, len(labels))
	for i, label := range labels {
		blocks = append(blocks, Paragraph{
			Runs: []Run{
				{Text: label, Style: TOCStyle},
				{Text: fmt.Sprintf("%d", tocPlaceholderPage(i)), Style: TOCStyle, TabBefore: true},
			},
			LineSpacing: BodyLineSpacing,
			TabStops: []TabStop{
				{Pos: ContentWidth(), Align: "right", Leader: "dot"},
			},
		})
	}
	return blocks
}

// Placeholder builds a single centered paragraph with bracketed
// instructional text, used wherever optional manuscript text is missing.
func Placeholder(instruction string) Block {
	return Paragraph{
		Runs:        []Run{{Text: "[" + instruction + "]", Style: BodyStyle}},
		Align:       AlignCenter,
		LineSpacing: BodyLineSpacing,
	}
}

// CenteredText builds one centered paragraph in the given style.
func CenteredText(text string, style Style, spaceBefore int) Block {
	return Paragraph{
		Runs:        []Run{{Text: text, Bold: style.Bold, Style: style}},
		Align:       AlignCenter,
		SpaceBefore: spaceBefore,
	}
}

func styledRuns(runs []manuscript.Run, style Style) []Run {
	out := make([]Run, len(runs))
	for i, r := range runs {
		out[i] = Run{Text: r.Text, Bold: r.Bold, Style: style}
	}
	return out
}
