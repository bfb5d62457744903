// Package generator is the document packager: the single entry point the
// surrounding workflow calls to turn a manuscript into a downloadable
// DOCX blob.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fabricadebestseller/bookforge/internal/assets"
	"github.com/fabricadebestseller/bookforge/internal/docx"
	"github.com/fabricadebestseller/bookforge/internal/layout"
	"github.com/fabricadebestseller/bookforge/internal/manuscript"
)

const (
	logoMaxWidth   = 220 // title page logo, pixels
	logoThumbWidth = 80  // copyright page thumbnail, pixels
	qrMaxWidth     = 150
)

// Options configures a Generator. The zero value uses the production
// fetcher and logo URL; tests substitute a Fetcher that always fails to
// exercise the fallback path deterministically.
type Options struct {
	Fetcher assets.Fetcher
	LogoURL string
}

// Generator assembles manuscripts into DOCX packages.
type Generator struct {
	opts Options
}

// New creates a Generator, filling in production defaults.
func New(opts Options) *Generator {
	if opts.Fetcher == nil {
		opts.Fetcher = assets.NewHTTPFetcher()
	}
	if opts.LogoURL == "" {
		opts.LogoURL = assets.DefaultLogoURL
	}
	return &Generator{opts: opts}
}

// Generate builds the complete document for the given manuscript and
// returns the serialized DOCX bytes.
//
// Asset fetches are best-effort: a failed logo or QR download degrades to
// a text placeholder and is never surfaced. The only errors returned are
// genuine structural or serialization failures, which indicate a defect
// in section assembly rather than bad input.
func (g *Generator) Generate(ctx context.Context, meta manuscript.Metadata, content manuscript.Content) ([]byte, error) {
	sections := layout.AssembleBook(meta, content, g.fetchAssets(ctx, meta))

	w, err := docx.NewWriter(docx.WriterConfig{
		Title:    meta.BookTitle,
		Subtitle: meta.SubTitle,
		Creator:  meta.AuthorName,
		Sections: sections,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble document: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// fetchAssets downloads the logo and QR code concurrently. The two
// fetches are independent: one failing never cancels or fails the other.
func (g *Generator) fetchAssets(ctx context.Context, meta manuscript.Metadata) layout.Assets {
	var (
		wg               sync.WaitGroup
		logoData, qrData []byte
		logoOK, qrOK     bool
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logoData, logoOK = g.opts.Fetcher.TryFetch(ctx, g.opts.LogoURL)
	}()

	if meta.Contact != nil && meta.Contact.Name != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qrData, qrOK = g.opts.Fetcher.TryFetch(ctx, assets.QRCodeURL(meta.Contact.Name))
		}()
	}
	wg.Wait()

	out := layout.Assets{Year: time.Now().Year()}
	if logoOK {
		out.Logo = normalized("logo", logoData, logoMaxWidth)
		out.LogoThumb = normalized("logo thumbnail", logoData, logoThumbWidth)
	}
	if qrOK {
		out.QR = normalized("QR code", qrData, qrMaxWidth)
	}
	return out
}

// normalized converts fetched bytes into an embeddable asset, or nil when
// the payload is not a decodable image (treated like a failed fetch).
func normalized(name string, data []byte, maxWidth int) *layout.Asset {
	n, err := assets.Normalize(data, maxWidth)
	if err != nil {
		log.Printf("warning: unusable %s image: %v", name, err)
		return nil
	}
	return &layout.Asset{Data: n.Data, Width: n.Width, Height: n.Height}
}
