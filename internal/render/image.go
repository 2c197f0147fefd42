// Package render turns heightmaps into images for export and display.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"terragen/internal/core"
)

// Image renders h with palette p into a new RGBA image of the same size.
func Image(h *core.Heightmap, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.W, h.H))
	fillRGBA(img.Pix, h, p)
	return img
}

// MaskImage renders mask as tint on a transparent background.
func MaskImage(mask *core.Mask, tint color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, mask.W, mask.H))
	fillMaskRGBA(img.Pix, mask, tint)
	return img
}

// Composite draws overlay over base in place.
func Composite(base, overlay *image.RGBA) {
	draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)
}

// Scale returns img enlarged by an integer factor with nearest-neighbour
// sampling. factor <= 1 returns img unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path, replacing any existing file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()
	return WritePNG(f, img)
}
