// Package layout models the fixed print-publishing page grammar of the
// book: typed blocks, sections with page geometry and header/footer
// variants, and the structural sequence that forces blank leaves onto the
// correct page parity.
package layout

import "math"

// The container format's native length unit is the twip (1/20 point,
// 1440 per inch). All geometry below is declared in centimeters or inches
// and converted exactly once, here, to keep unit mixing out of the
// assembly code.
const (
	twipsPerInch = 1440
	cmPerInch    = 2.54

	// emuPerPixel converts raster pixels at 96dpi to English Metric Units
	// for embedded image extents (914400 EMU per inch / 96).
	emuPerPixel = 9525
)

// CmToTwips converts centimeters to twips, rounded to the nearest unit.
func CmToTwips(cm float64) int {
	return int(math.Round(cm * twipsPerInch / cmPerInch))
}

// InchesToTwips converts inches to twips.
func InchesToTwips(in float64) int {
	return int(math.Round(in * twipsPerInch))
}

// PixelsToEMU converts image pixels to EMU for drawing extents.
func PixelsToEMU(px int) int64 {
	return int64(px) * emuPerPixel
}

// Fixed trim size: 6in x 9in, the standard trade paperback.
var (
	PageWidth  = InchesToTwips(6)
	PageHeight = InchesToTwips(9)
)

// Mirrored margin set. Inside is larger than outside to leave room for
// binding; the container's mirror-margins setting flips inside/outside
// between odd and even pages.
var (
	MarginTop     = CmToTwips(1.9)
	MarginBottom  = CmToTwips(1.9)
	MarginOutside = CmToTwips(1.9)
	MarginInside  = CmToTwips(2.54)
	MarginHeader  = CmToTwips(1.27)
	MarginFooter  = CmToTwips(1.27)
)

// ContentWidth is the usable text width between the inside and outside
// margins, used for tab stop positions and table widths.
func ContentWidth() int {
	return PageWidth - MarginInside - MarginOutside
}

// Style is a named run format. Every run in the document uses one
// typeface at one of two sizes, so styles are engine constants rather
// than per-run configuration.
type Style struct {
	Font string
	Size int // half-points
	Bold bool
}

var (
	// BodyStyle is the default run format for body text.
	BodyStyle = Style{Font: "Garamond", Size: 24}

	// HeadingStyle is used for titles and chapter heading lines.
	HeadingStyle = Style{Font: "Garamond", Size: 36, Bold: true}

	// TOCStyle is used for table-of-contents entries.
	TOCStyle = Style{Font: "Garamond", Size: 24}
)

// BodyLineSpacing is 1.5 line spacing in the container's 240ths-of-a-line
// unit.
const BodyLineSpacing = 360

// FirstLineIndent is the body paragraph first-line indent.
var FirstLineIndent = CmToTwips(0.75)
