package layout

// BreakType controls which physical page a section's first page may land
// on. Odd-page breaks make the renderer emit a blank page when needed.
type BreakType string

const (
	BreakNextPage BreakType = "nextPage"
	BreakOddPage  BreakType = "oddPage"
	BreakEvenPage BreakType = "evenPage"
)

// NumberFormat is a page-number rendering format.
type NumberFormat string

const (
	NumberLowerRoman NumberFormat = "lowerRoman"
	NumberDecimal    NumberFormat = "decimal"
)

// PageNumbering sets the numbering format for a section. Start > 0
// restarts the count at that value; Start == 0 continues from the
// previous section.
type PageNumbering struct {
	Format NumberFormat
	Start  int
}

// HeaderSet holds the running-header text variants for a section,
// following the mirrored-book convention: the odd (recto) header shows
// the book title, the even (verso) header the author name.
type HeaderSet struct {
	Odd  string
	Even string
}

// Section is one physically contiguous run of pages sharing a single
// page-geometry and header/footer configuration. All sections share the
// fixed trim size and mirrored margin set from geometry.go; only breaks,
// numbering and header content vary.
type Section struct {
	Blocks []Block

	// Break declares how this section's first page lands.
	Break BreakType

	// Numbering, when non-nil, sets or restarts the page number format.
	Numbering *PageNumbering

	// Headers, when non-nil, enables alternating running headers.
	Headers *HeaderSet

	// FirstPageBare suppresses the header on the section's first page
	// (chapter openings carry no header).
	FirstPageBare bool

	// PageFooter enables the centered page-number footer.
	PageFooter bool
}
