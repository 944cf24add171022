package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// thumbnailMaxDim caps the longer edge of generated evidence thumbnails.
const thumbnailMaxDim = 320

// ThumbnailJPEG decodes a base64 image (GIF, JPEG, PNG, WebP), scales it
// down to thumbnail size and re-encodes it as base64 JPEG.
func ThumbnailJPEG(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 image data: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > thumbnailMaxDim || height > thumbnailMaxDim {
		var newW, newH int
		if width > height {
			newW = thumbnailMaxDim
			newH = (height * thumbnailMaxDim) / width
		} else {
			newH = thumbnailMaxDim
			newW = (width * thumbnailMaxDim) / height
		}
		if newW == 0 {
			newW = 1
		}
		if newH == 0 {
			newH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode as jpeg: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
