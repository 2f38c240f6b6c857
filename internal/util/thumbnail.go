package util

import (
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MakeThumbnail decodes an image from r, scales its longest side down to size
// (never up) and writes the result as a JPEG at dstPath.
func MakeThumbnail(r io.Reader, dstPath string, size int) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	maxDim := bounds.Dx()
	if bounds.Dy() > maxDim {
		maxDim = bounds.Dy()
	}

	scale := float64(size) / float64(maxDim)
	if scale > 1 {
		scale = 1
	}

	targetWidth := int(math.Round(float64(bounds.Dx()) * scale))
	targetHeight := int(math.Round(float64(bounds.Dy()) * scale))
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	encodeErr := jpeg.Encode(out, dst, &jpeg.Options{Quality: 90})
	closeErr := out.Close()
	if encodeErr != nil {
		return encodeErr
	}

	return closeErr
}
