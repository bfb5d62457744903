package generator

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/fabricadebestseller/bookforge/internal/manuscript"
)

// --- Test helpers ---

// failingFetcher always reports assets as unavailable.
type failingFetcher struct{}

func (failingFetcher) TryFetch(ctx context.Context, rawURL string) ([]byte, bool) {
	return nil, false
}

// stubFetcher serves the same payload for every URL and records requests.
// Fetches for one document run concurrently, so recording is locked.
type stubFetcher struct {
	payload []byte

	mu   sync.Mutex
	urls []string
}

func (s *stubFetcher) TryFetch(ctx context.Context, rawURL string) ([]byte, bool) {
	s.mu.Lock()
	s.urls = append(s.urls, rawURL)
	s.mu.Unlock()
	return s.payload, true
}

func (s *stubFetcher) fetchedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func scenarioMeta() manuscript.Metadata {
	return manuscript.Metadata{
		AuthorName: "Jane Doe",
		BookTitle:  "Atomic Focus",
		SubTitle:   "Getting Things Done Fast",
	}
}

func scenarioContent() manuscript.Content {
	return manuscript.Content{
		Introduction: "Focus matters.",
		Chapters: []manuscript.Chapter{
			{ID: 1, Title: "Start", Content: "Begin the work."},
			{ID: 2, Title: "Build", Content: "Keep building."},
			{ID: 3, Title: "Ship", Content: "Release it."},
		},
	}
}

func generate(t *testing.T, meta manuscript.Metadata, content manuscript.Content) []byte {
	t.Helper()
	g := New(Options{Fetcher: failingFetcher{}})
	blob, err := g.Generate(context.Background(), meta, content)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("Generate returned empty blob")
	}
	return blob
}

func readPart(t *testing.T, blob []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("blob is not a valid zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", name, err)
		}
		defer rc.Close()
		var b bytes.Buffer
		if _, err := b.ReadFrom(rc); err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		return b.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func mediaCount(t *testing.T, blob []byte) int {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("blob is not a valid zip: %v", err)
	}
	n := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			n++
		}
	}
	return n
}

// --- End-to-end scenarios ---

func TestGenerate_ThreeChaptersNoConclusion(t *testing.T) {
	blob := generate(t, scenarioMeta(), scenarioContent())
	doc := readPart(t, blob, "word/document.xml")

	for _, want := range []string{"CHAPTER 1", "START", "CHAPTER 2", "BUILD", "CHAPTER 3", "SHIP"} {
		if !strings.Contains(doc, ">"+want+"<") {
			t.Errorf("document missing heading text %q", want)
		}
	}
	// Order must match input.
	if !(strings.Index(doc, ">START<") < strings.Index(doc, ">BUILD<") &&
		strings.Index(doc, ">BUILD<") < strings.Index(doc, ">SHIP<")) {
		t.Error("chapter headings out of order")
	}
	if strings.Contains(doc, ">Conclusion<") {
		t.Error("conclusion section present despite empty conclusion text")
	}
	if !strings.Contains(doc, ">About the Author<") {
		t.Error("about-the-author section missing")
	}
	if !strings.Contains(doc, "[insert author bio here]") {
		t.Error("author bio placeholder missing")
	}
}

func TestGenerate_DedicationText(t *testing.T) {
	content := scenarioContent()
	content.Dedication = "To my family."
	blob := generate(t, scenarioMeta(), content)
	doc := readPart(t, blob, "word/document.xml")

	if !strings.Contains(doc, ">To my family.<") {
		t.Error("dedication text missing")
	}
	if strings.Contains(doc, "[insert dedication here]") {
		t.Error("dedication placeholder present despite provided text")
	}
}

func TestGenerate_BoldTokenization(t *testing.T) {
	content := scenarioContent()
	content.Chapters = []manuscript.Chapter{
		{ID: 1, Title: "Only", Content: "**Important:** read this.\n\nSecond paragraph."},
	}
	blob := generate(t, scenarioMeta(), content)
	doc := readPart(t, blob, "word/document.xml")

	if !strings.Contains(doc, `<w:b/><w:sz w:val="24"/><w:szCs w:val="24"/></w:rPr><w:t xml:space="preserve">Important:</w:t>`) {
		t.Error("bold run for 'Important:' not emitted")
	}
	if !strings.Contains(doc, `<w:t xml:space="preserve"> read this.</w:t>`) {
		t.Error("plain run after bold not emitted")
	}
	if !strings.Contains(doc, `<w:t xml:space="preserve">Second paragraph.</w:t>`) {
		t.Error("second paragraph not emitted")
	}
	if strings.Contains(doc, "**") {
		t.Error("bold markers leaked into output")
	}
}

// --- Degradation tests ---

func TestGenerate_AllOptionalsEmpty(t *testing.T) {
	blob := generate(t, scenarioMeta(), scenarioContent())
	doc := readPart(t, blob, "word/document.xml")

	for _, want := range []string{
		"[insert acknowledgments here]",
		"[insert dedication here]",
		"[insert author bio here]",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing placeholder %q", want)
		}
	}
	// 14 sections (no conclusion): 13 embedded sectPr plus the final body one.
	if got := strings.Count(doc, "<w:sectPr>"); got != 14 {
		t.Errorf("expected 14 sections, got %d", got)
	}
}

func TestGenerate_SectionCountStableAcrossOptionals(t *testing.T) {
	full := scenarioContent()
	full.Dedication = "To all."
	full.Acknowledgments = "Thanks."
	full.AboutAuthor = "Bio."
	full.Conclusion = "Done."

	empty := scenarioContent()

	docFull := readPart(t, generate(t, scenarioMeta(), full), "word/document.xml")
	docEmpty := readPart(t, generate(t, scenarioMeta(), empty), "word/document.xml")

	// Only the conclusion section may disappear.
	gotFull := strings.Count(docFull, "<w:sectPr>")
	gotEmpty := strings.Count(docEmpty, "<w:sectPr>")
	if gotFull != gotEmpty+1 {
		t.Errorf("section counts: full=%d empty=%d, want full = empty+1", gotFull, gotEmpty)
	}
}

// --- Asset handling tests ---

func TestGenerate_AssetFailureFallsBack(t *testing.T) {
	meta := scenarioMeta()
	meta.Contact = &manuscript.Contact{Name: "janedoe"}
	blob := generate(t, meta, scenarioContent())

	if n := mediaCount(t, blob); n != 0 {
		t.Errorf("expected no embedded media on fetch failure, got %d", n)
	}
	doc := readPart(t, blob, "word/document.xml")
	if !strings.Contains(doc, "Fábrica de Bestseller") {
		t.Error("publisher text fallback missing")
	}
	if !strings.Contains(doc, "[scan code unavailable]") {
		t.Error("QR text fallback missing")
	}
}

func TestGenerate_AssetsEmbedded(t *testing.T) {
	meta := scenarioMeta()
	meta.Contact = &manuscript.Contact{Name: "janedoe"}
	fetcher := &stubFetcher{payload: testPNG(t)}

	g := New(Options{Fetcher: fetcher})
	blob, err := g.Generate(context.Background(), meta, scenarioContent())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// logo on title page, thumbnail and QR on copyright page
	if n := mediaCount(t, blob); n != 3 {
		t.Errorf("expected 3 media parts, got %d", n)
	}

	var sawQR bool
	for _, u := range fetcher.fetchedURLs() {
		if strings.Contains(u, "create-qr-code") && strings.Contains(u, "janedoe") {
			sawQR = true
		}
	}
	if !sawQR {
		t.Errorf("QR URL never fetched: %v", fetcher.fetchedURLs())
	}
}

func TestGenerate_NoContactSkipsQR(t *testing.T) {
	fetcher := &stubFetcher{payload: testPNG(t)}
	g := New(Options{Fetcher: fetcher})
	if _, err := g.Generate(context.Background(), scenarioMeta(), scenarioContent()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, u := range fetcher.fetchedURLs() {
		if strings.Contains(u, "create-qr-code") {
			t.Errorf("QR fetched despite missing contact: %s", u)
		}
	}
}

func TestGenerate_UndecodableAssetFallsBack(t *testing.T) {
	fetcher := &stubFetcher{payload: []byte("not an image")}
	g := New(Options{Fetcher: fetcher})
	blob, err := g.Generate(context.Background(), scenarioMeta(), scenarioContent())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if n := mediaCount(t, blob); n != 0 {
		t.Errorf("expected no media for undecodable payload, got %d", n)
	}
}

// --- Document properties ---

func TestGenerate_CoreProperties(t *testing.T) {
	blob := generate(t, scenarioMeta(), scenarioContent())
	core := readPart(t, blob, "docProps/core.xml")
	if !strings.Contains(core, "<dc:title>Atomic Focus</dc:title>") {
		t.Error("title property missing")
	}
	if !strings.Contains(core, "<dc:creator>Jane Doe</dc:creator>") {
		t.Error("creator property missing")
	}
	if !strings.Contains(core, "<dc:description>Getting Things Done Fast</dc:description>") {
		t.Error("subtitle property missing")
	}
}
