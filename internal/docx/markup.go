package docx

import (
	"fmt"
	"strings"

	"github.com/fabricadebestseller/bookforge/internal/layout"
)

// buildDocument emits word/document.xml. Every section's properties go
// into a sectPr: embedded in a trailing paragraph for all but the last
// section, and as a direct body child for the last one, per the
// wordprocessingML section model.
func (w *Writer) buildDocument() (string, error) {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR +
		`" xmlns:wp="` + nsWP + `" xmlns:a="` + nsA + `" xmlns:pic="` + nsPic + `">`)
	b.WriteString("<w:body>")

	last := len(w.cfg.Sections) - 1
	for i, s := range w.cfg.Sections {
		for _, block := range s.Blocks {
			if err := w.writeBlock(&b, block); err != nil {
				return "", fmt.Errorf("section %d: %w", i, err)
			}
		}
		sectPr := w.sectPrXML(s)
		if i == last {
			b.WriteString(sectPr)
		} else {
			b.WriteString("<w:p><w:pPr>" + sectPr + "</w:pPr></w:p>")
		}
	}

	b.WriteString("</w:body></w:document>")
	return b.String(), nil
}

func (w *Writer) writeBlock(b *strings.Builder, block layout.Block) error {
	switch v := block.(type) {
	case layout.Paragraph:
		writeParagraph(b, v)
	case layout.BlankMarker:
		b.WriteString("<w:p/>")
	case layout.Image:
		w.writeImage(b, v)
	case layout.TwoColumnTable:
		if err := w.writeTable(b, v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown block type %T", block)
	}
	return nil
}

// sectPrXML emits the section properties. Child order is fixed by the
// schema: header/footer references, type, pgSz, pgMar, pgNumType, titlePg.
func (w *Writer) sectPrXML(s layout.Section) string {
	var b strings.Builder
	b.WriteString("<w:sectPr>")

	if s.Headers != nil {
		odd, even := w.headerRefs(*s.Headers)
		fmt.Fprintf(&b, `<w:headerReference w:type="default" r:id="%s"/>`, odd)
		fmt.Fprintf(&b, `<w:headerReference w:type="even" r:id="%s"/>`, even)
		if s.FirstPageBare {
			fmt.Fprintf(&b, `<w:headerReference w:type="first" r:id="%s"/>`, w.firstHeaderRef())
		}
	}
	if s.PageFooter {
		ftr := w.footerRef()
		fmt.Fprintf(&b, `<w:footerReference w:type="default" r:id="%s"/>`, ftr)
		fmt.Fprintf(&b, `<w:footerReference w:type="even" r:id="%s"/>`, ftr)
		fmt.Fprintf(&b, `<w:footerReference w:type="first" r:id="%s"/>`, ftr)
	}

	fmt.Fprintf(&b, `<w:type w:val="%s"/>`, s.Break)
	fmt.Fprintf(&b, `<w:pgSz w:w="%d" w:h="%d"/>`, layout.PageWidth, layout.PageHeight)

	// With mirror-margins enabled, left means inside and right means
	// outside; the renderer flips them on even pages.
	fmt.Fprintf(&b, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="%d" w:footer="%d" w:gutter="0"/>`,
		layout.MarginTop, layout.MarginOutside, layout.MarginBottom,
		layout.MarginInside, layout.MarginHeader, layout.MarginFooter)

	if s.Numbering != nil {
		if s.Numbering.Start > 0 {
			fmt.Fprintf(&b, `<w:pgNumType w:fmt="%s" w:start="%d"/>`, s.Numbering.Format, s.Numbering.Start)
		} else {
			fmt.Fprintf(&b, `<w:pgNumType w:fmt="%s"/>`, s.Numbering.Format)
		}
	}
	if s.FirstPageBare {
		b.WriteString("<w:titlePg/>")
	}

	b.WriteString("</w:sectPr>")
	return b.String()
}

func writeParagraph(b *strings.Builder, p layout.Paragraph) {
	b.WriteString("<w:p>")

	var pr strings.Builder
	if p.PageBreakBefore {
		pr.WriteString("<w:pageBreakBefore/>")
	}
	if len(p.TabStops) > 0 {
		pr.WriteString("<w:tabs>")
		for _, ts := range p.TabStops {
			leader := ts.Leader
			if leader == "" {
				leader = "none"
			}
			fmt.Fprintf(&pr, `<w:tab w:val="%s" w:leader="%s" w:pos="%d"/>`, ts.Align, leader, ts.Pos)
		}
		pr.WriteString("</w:tabs>")
	}
	if p.LineSpacing > 0 || p.SpaceBefore > 0 || p.SpaceAfter > 0 {
		pr.WriteString("<w:spacing")
		if p.SpaceBefore > 0 {
			fmt.Fprintf(&pr, ` w:before="%d"`, p.SpaceBefore)
		}
		if p.SpaceAfter > 0 {
			fmt.Fprintf(&pr, ` w:after="%d"`, p.SpaceAfter)
		}
		if p.LineSpacing > 0 {
			fmt.Fprintf(&pr, ` w:line="%d" w:lineRule="auto"`, p.LineSpacing)
		}
		pr.WriteString("/>")
	}
	if p.FirstLineIndent > 0 {
		fmt.Fprintf(&pr, `<w:ind w:firstLine="%d"/>`, p.FirstLineIndent)
	}
	if p.Align != "" && p.Align != layout.AlignLeft {
		fmt.Fprintf(&pr, `<w:jc w:val="%s"/>`, p.Align)
	}
	if pr.Len() > 0 {
		b.WriteString("<w:pPr>" + pr.String() + "</w:pPr>")
	}

	for _, r := range p.Runs {
		writeRun(b, r)
	}
	b.WriteString("</w:p>")
}

func writeRun(b *strings.Builder, r layout.Run) {
	b.WriteString("<w:r>")

	style := r.Style
	if style.Font != "" {
		b.WriteString("<w:rPr>")
		fmt.Fprintf(b, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, esc(style.Font), esc(style.Font))
		if r.Bold || style.Bold {
			b.WriteString("<w:b/>")
		}
		fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, style.Size, style.Size)
		b.WriteString("</w:rPr>")
	} else if r.Bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}

	if r.TabBefore {
		b.WriteString("<w:tab/>")
	}
	if r.Text != "" {
		b.WriteString(`<w:t xml:space="preserve">` + esc(r.Text) + "</w:t>")
	}
	b.WriteString("</w:r>")
}

// writeImage emits a centered paragraph holding one inline drawing.
// Extents are in EMU, converted from 96dpi pixels.
func (w *Writer) writeImage(b *strings.Builder, img layout.Image) {
	rid := w.addMedia(img.Data)
	id := len(w.media)
	cx := layout.PixelsToEMU(img.Width)
	cy := layout.PixelsToEMU(img.Height)

	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing>`)
	fmt.Fprintf(b, `<wp:inline distT="0" distB="0" distL="0" distR="0">`)
	fmt.Fprintf(b, `<wp:extent cx="%d" cy="%d"/>`, cx, cy)
	fmt.Fprintf(b, `<wp:docPr id="%d" name="image%d"/>`, id, id)
	b.WriteString(`<a:graphic><a:graphicData uri="` + nsPic + `">`)
	fmt.Fprintf(b, `<pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="image%d"/><pic:cNvPicPr/></pic:nvPicPr>`, id, id)
	fmt.Fprintf(b, `<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`, rid)
	fmt.Fprintf(b, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, cx, cy)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr></pic:pic>`)
	b.WriteString(`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
}

// writeTable emits the borderless two-column credits table.
func (w *Writer) writeTable(b *strings.Builder, tbl layout.TwoColumnTable) error {
	total := layout.ContentWidth()
	half := total / 2

	b.WriteString("<w:tbl><w:tblPr>")
	fmt.Fprintf(b, `<w:tblW w:w="%d" w:type="dxa"/>`, total)
	b.WriteString(`<w:tblLayout w:type="fixed"/>`)
	b.WriteString("</w:tblPr>")
	fmt.Fprintf(b, `<w:tblGrid><w:gridCol w:w="%d"/><w:gridCol w:w="%d"/></w:tblGrid>`, half, total-half)

	widths := []int{half, total - half}
	b.WriteString("<w:tr>")
	for ci, cell := range [][]layout.Block{tbl.Left, tbl.Right} {
		b.WriteString("<w:tc><w:tcPr>")
		fmt.Fprintf(b, `<w:tcW w:w="%d" w:type="dxa"/>`, widths[ci])
		b.WriteString("</w:tcPr>")
		if len(cell) == 0 {
			b.WriteString("<w:p/>")
		}
		for _, block := range cell {
			if _, ok := block.(layout.TwoColumnTable); ok {
				return fmt.Errorf("nested tables are not supported")
			}
			if err := w.writeBlock(b, block); err != nil {
				return err
			}
		}
		b.WriteString("</w:tc>")
	}
	b.WriteString("</w:tr></w:tbl>")
	return nil
}
