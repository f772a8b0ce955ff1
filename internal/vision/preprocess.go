package vision

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	applog "nutrigo/internal/log"
)

const (
	// maxEdge bounds the longer image edge before generative analysis to
	// keep token cost predictable.
	maxEdge        = 512
	targetQuality  = 75
	byteCeiling    = 400 << 10
	retryEdge      = 384
	retryQuality   = 50
	fingerprintLen = 32
)

// Fingerprint returns a stable content hash for an image payload. It is
// computed over the original bytes so identical source images keep hitting
// the cache even if preprocessing parameters change later.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Preprocess downsamples and re-encodes an image to bound the cost of the
// generative call. Processing failures are absorbed: the original bytes are
// returned unchanged so the analyze request never fails here.
func Preprocess(ctx context.Context, data []byte) []byte {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		applog.Warn(ctx, "image decode failed, passing original through", "error", err)
		return data
	}

	encoded, err := scaleAndEncode(img, maxEdge, targetQuality)
	if err != nil {
		applog.Warn(ctx, "image encode failed, passing original through", "format", format, "error", err)
		return data
	}

	if len(encoded) > byteCeiling {
		smaller, err := scaleAndEncode(img, retryEdge, retryQuality)
		if err == nil && len(smaller) < len(encoded) {
			encoded = smaller
		}
	}

	return encoded
}

// Validate reports whether the original bytes decode as an image at all.
// This is the only preprocessing failure that is fatal to an analyze call.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("vision: empty image payload")
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("vision: decode image: %w", err)
	}
	return nil
}

func scaleAndEncode(img image.Image, edge, quality int) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > edge || height > edge {
		if width >= height {
			height = height * edge / width
			width = edge
		} else {
			width = width * edge / height
			height = edge
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
