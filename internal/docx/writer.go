// Package docx assembles and serializes the OOXML wordprocessingML
// container: a ZIP archive of XML parts plus embedded media. It consumes
// the layout section model and owns every byte of the package, including
// relationships, content types and the document-level settings that
// enable mirrored margins and odd/even headers.
package docx

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/fabricadebestseller/bookforge/internal/layout"
)

// WriterConfig holds the document-level properties and the ordered
// section list to serialize.
type WriterConfig struct {
	Title    string
	Subtitle string
	Creator  string
	Sections []layout.Section
}

// Writer assembles and writes a complete DOCX package.
type Writer struct {
	cfg WriterConfig

	relSeq    int
	rels      []relationship
	hfParts   []hfPart
	media     []mediaPart
	headerIDs map[layout.HeaderSet][2]string
	firstID   string
	footerID  string
}

type relationship struct {
	ID     string
	Type   string
	Target string
}

type hfPart struct {
	name string // part file name under word/
	kind string // "header" or "footer"
	xml  string
}

type mediaPart struct {
	name string // file name under word/media/
	data []byte
}

// NewWriter validates the section structure and creates a Writer.
// Structural problems surface here or in WriteTo as errors; they indicate
// a defect in section assembly and are never silently absorbed.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("document requires at least one section")
	}
	for i, s := range cfg.Sections {
		if len(s.Blocks) == 0 {
			return nil, fmt.Errorf("section %d has no blocks", i)
		}
		if err := validateBlocks(i, s.Blocks); err != nil {
			return nil, err
		}
	}
	return &Writer{cfg: cfg}, nil
}

func validateBlocks(section int, blocks []layout.Block) error {
	for _, b := range blocks {
		switch v := b.(type) {
		case layout.Paragraph, layout.BlankMarker:
		case layout.Image:
			if len(v.Data) == 0 {
				return fmt.Errorf("section %d: image block has no data", section)
			}
			if v.Width <= 0 || v.Height <= 0 {
				return fmt.Errorf("section %d: image block has invalid dimensions %dx%d", section, v.Width, v.Height)
			}
		case layout.TwoColumnTable:
			if err := validateBlocks(section, v.Left); err != nil {
				return err
			}
			if err := validateBlocks(section, v.Right); err != nil {
				return err
			}
		default:
			return fmt.Errorf("section %d: unknown block type %T", section, b)
		}
	}
	return nil
}

// WriteTo serializes the whole package to out and returns the number of
// bytes written.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	w.reset()

	// Build the document body first: it registers header, footer and
	// media parts as it encounters them.
	body, err := w.buildDocument()
	if err != nil {
		return 0, fmt.Errorf("failed to build document body: %w", err)
	}

	cw := &countingWriter{w: out}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(w.contentTypesXML())},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"docProps/core.xml", []byte(corePropsXML(w.cfg.Title, w.cfg.Subtitle, w.cfg.Creator))},
		{"word/document.xml", []byte(body)},
		{"word/styles.xml", []byte(stylesXML())},
		{"word/settings.xml", []byte(settingsXML)},
		{"word/_rels/document.xml.rels", []byte(w.documentRelsXML())},
	}
	for _, hf := range w.hfParts {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/" + hf.name, []byte(hf.xml)})
	}
	for _, m := range w.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + m.name, m.data})
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return cw.n, fmt.Errorf("failed to create part %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return cw.n, fmt.Errorf("failed to write part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to finalize package: %w", err)
	}
	return cw.n, nil
}

func (w *Writer) reset() {
	w.relSeq = 0
	w.rels = nil
	w.hfParts = nil
	w.media = nil
	w.headerIDs = make(map[layout.HeaderSet][2]string)
	w.firstID = ""
	w.footerID = ""

	w.addRel(relTypeStyles, "styles.xml")     // rId1
	w.addRel(relTypeSettings, "settings.xml") // rId2
}

func (w *Writer) addRel(relType, target string) string {
	w.relSeq++
	id := fmt.Sprintf("rId%d", w.relSeq)
	w.rels = append(w.rels, relationship{ID: id, Type: relType, Target: target})
	return id
}

// headerRefs returns the odd/even header relationship IDs for the given
// header set, registering the parts on first use.
func (w *Writer) headerRefs(set layout.HeaderSet) (string, string) {
	if ids, ok := w.headerIDs[set]; ok {
		return ids[0], ids[1]
	}
	odd := w.addHeaderFooter("header", headerXML(set.Odd))
	even := w.addHeaderFooter("header", headerXML(set.Even))
	w.headerIDs[set] = [2]string{odd, even}
	return odd, even
}

// firstHeaderRef returns the shared empty header used for bare first
// pages of body sections.
func (w *Writer) firstHeaderRef() string {
	if w.firstID == "" {
		w.firstID = w.addHeaderFooter("header", emptyHeaderXML)
	}
	return w.firstID
}

// footerRef returns the shared page-number footer.
func (w *Writer) footerRef() string {
	if w.footerID == "" {
		w.footerID = w.addHeaderFooter("footer", pageFooterXML)
	}
	return w.footerID
}

func (w *Writer) addHeaderFooter(kind, xmlBody string) string {
	seq := 1
	for _, p := range w.hfParts {
		if p.kind == kind {
			seq++
		}
	}
	name := fmt.Sprintf("%s%d.xml", kind, seq)
	relType := relTypeHeader
	if kind == "footer" {
		relType = relTypeFooter
	}
	id := w.addRel(relType, name)
	w.hfParts = append(w.hfParts, hfPart{name: name, kind: kind, xml: xmlBody})
	return id
}

// addMedia registers an image payload as a media part and returns its
// relationship ID. All embedded images are PNG by the time they reach
// the writer.
func (w *Writer) addMedia(data []byte) string {
	name := fmt.Sprintf("image%d.png", len(w.media)+1)
	id := w.addRel(relTypeImage, "media/"+name)
	w.media = append(w.media, mediaPart{name: name, data: data})
	return id
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
