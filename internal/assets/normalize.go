package assets

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Normalized is a decoded, re-encoded image ready for container
// embedding: always PNG, with known pixel dimensions.
type Normalized struct {
	Data   []byte
	Width  int
	Height int
}

// Normalize decodes any supported raster format, optionally downscales
// to maxWidth (0 keeps the original size), and re-encodes as PNG.
func Normalize(data []byte, maxWidth int) (*Normalized, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &Normalized{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
