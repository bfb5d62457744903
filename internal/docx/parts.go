package docx

import (
	"fmt"
	"strings"

	"github.com/fabricadebestseller/bookforge/internal/layout"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// wordprocessingML namespaces
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// relationship types
const (
	relTypeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeStyles   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeSettings = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relTypeHeader   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relTypeImage    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// part content types
const (
	ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctSettings = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	ctHeader   = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	ctFooter   = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	ctCore     = "application/vnd.openxmlformats-package.core-properties+xml"
)

// esc escapes text for embedding in XML character data and attributes.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func esc(s string) string {
	return escaper.Replace(s)
}

// contentTypesXML lists every part in the package. Header and footer
// parts are enumerated individually; media falls under the png default.
func (w *Writer) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	fmt.Fprintf(&b, `<Override PartName="/word/document.xml" ContentType="%s"/>`, ctDocument)
	fmt.Fprintf(&b, `<Override PartName="/word/styles.xml" ContentType="%s"/>`, ctStyles)
	fmt.Fprintf(&b, `<Override PartName="/word/settings.xml" ContentType="%s"/>`, ctSettings)
	fmt.Fprintf(&b, `<Override PartName="/docProps/core.xml" ContentType="%s"/>`, ctCore)
	for _, hf := range w.hfParts {
		ct := ctHeader
		if hf.kind == "footer" {
			ct = ctFooter
		}
		fmt.Fprintf(&b, `<Override PartName="/word/%s" ContentType="%s"/>`, hf.name, ct)
	}
	b.WriteString("</Types>")
	return b.String()
}

const rootRelsXML = xmlDecl +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relTypeDocument + `" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="` + relTypeCore + `" Target="docProps/core.xml"/>` +
	`</Relationships>`

func (w *Writer) documentRelsXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range w.rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.ID, r.Type, r.Target)
	}
	b.WriteString("</Relationships>")
	return b.String()
}

// stylesXML sets the document defaults: the single typeface at body size
// and 1.5 line spacing, so plain runs inherit the book's look.
func stylesXML() string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<w:styles xmlns:w="` + nsW + `">`)
	b.WriteString("<w:docDefaults><w:rPrDefault><w:rPr>")
	fmt.Fprintf(&b, `<w:rFonts w:ascii="%s" w:hAnsi="%s"/>`, esc(layout.BodyStyle.Font), esc(layout.BodyStyle.Font))
	fmt.Fprintf(&b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, layout.BodyStyle.Size, layout.BodyStyle.Size)
	b.WriteString("</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr>")
	fmt.Fprintf(&b, `<w:spacing w:line="%d" w:lineRule="auto"/>`, layout.BodyLineSpacing)
	b.WriteString("</w:pPr></w:pPrDefault></w:docDefaults>")
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)
	b.WriteString("</w:styles>")
	return b.String()
}

// settingsXML enables mirrored margins (inside/outside flip by parity)
// and distinct odd/even running headers, both package-level capabilities.
const settingsXML = xmlDecl +
	`<w:settings xmlns:w="` + nsW + `">` +
	`<w:mirrorMargins/>` +
	`<w:evenAndOddHeaders/>` +
	`</w:settings>`

func corePropsXML(title, subtitle, creator string) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	fmt.Fprintf(&b, "<dc:title>%s</dc:title>", esc(title))
	if subtitle != "" {
		fmt.Fprintf(&b, "<dc:description>%s</dc:description>", esc(subtitle))
	}
	fmt.Fprintf(&b, "<dc:creator>%s</dc:creator>", esc(creator))
	b.WriteString("</cp:coreProperties>")
	return b.String()
}

// headerXML builds a running-header part with one centered line.
func headerXML(text string) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<w:hdr xmlns:w="` + nsW + `">`)
	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
	b.WriteString(`<w:r><w:t xml:space="preserve">` + esc(text) + `</w:t></w:r>`)
	b.WriteString("</w:p></w:hdr>")
	return b.String()
}

// emptyHeaderXML is referenced by the bare first page of body sections.
const emptyHeaderXML = xmlDecl + `<w:hdr xmlns:w="` + nsW + `"><w:p/></w:hdr>`

// pageFooterXML renders the current page number centered, using a PAGE
// field so the section's numbering format applies.
const pageFooterXML = xmlDecl +
	`<w:ftr xmlns:w="` + nsW + `">` +
	`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>` +
	`<w:fldSimple w:instr=" PAGE "><w:r><w:t>1</w:t></w:r></w:fldSimple>` +
	`</w:p></w:ftr>`
