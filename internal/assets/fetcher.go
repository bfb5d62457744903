// Package assets fetches the static raster images embedded in the
// document (publisher logo, contact QR code). Fetching is best-effort by
// contract: a failure degrades to a text placeholder upstream and never
// aborts document packaging.
package assets

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultLogoURL is the publisher logo asset.
const DefaultLogoURL = "https://fabricadebestseller.com.br/assets/logo.png"

// qrEndpoint renders a QR code PNG for the encoded target link.
const (
	qrEndpoint  = "https://api.qrserver.com/v1/create-qr-code/"
	qrPixelSize = 150
)

// Fetcher retrieves an asset by URL. TryFetch never returns an error:
// the second result reports whether the asset is usable.
type Fetcher interface {
	TryFetch(ctx context.Context, rawURL string) ([]byte, bool)
}

// HTTPFetcher fetches assets over HTTP with a bounded timeout and an
// in-memory TTL cache, so repeated document builds in one process do not
// re-download the same static images.
type HTTPFetcher struct {
	client *http.Client
	cache  *cache.Cache
}

// NewHTTPFetcher creates a fetcher with a 10 second request timeout and
// a 24 hour asset cache.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache.New(24*time.Hour, time.Hour),
	}
}

// TryFetch downloads the URL, returning (data, true) on success. Any
// network error or non-200 status logs a warning and returns false.
func (f *HTTPFetcher) TryFetch(ctx context.Context, rawURL string) ([]byte, bool) {
	if data, ok := f.cache.Get(rawURL); ok {
		return data.([]byte), true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Printf("warning: invalid asset URL %q: %v", rawURL, err)
		return nil, false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("warning: failed to fetch asset %q: %v", rawURL, err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("warning: asset %q returned status %d", rawURL, resp.StatusCode)
		return nil, false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("warning: failed to read asset %q: %v", rawURL, err)
		return nil, false
	}

	f.cache.Set(rawURL, data, cache.DefaultExpiration)
	return data, true
}

// QRCodeURL builds the third-party QR rendering URL for the given social
// handle's profile link.
func QRCodeURL(handle string) string {
	link := "https://instagram.com/" + handle
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", qrPixelSize, qrPixelSize))
	q.Set("data", link)
	return qrEndpoint + "?" + q.Encode()
}
