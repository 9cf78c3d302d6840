// Package rasterfield loads a raster image and converts it into a
// normalized target amplitude grid, the "raster image loading"
// external collaborator spec.md §3 mentions only at the interface
// level. It carries no color-space or calibration modeling — that
// remains a Non-goal.
package rasterfield

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	// Registers additional decoders (BMP, TIFF) beyond stdlib's
	// PNG/JPEG/GIF, the idiomatic way to broaden format coverage
	// without hand-rolling decoders.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/doismellburning/phasefield/internal/field"
	"github.com/doismellburning/phasefield/internal/geometry"
	"github.com/doismellburning/phasefield/internal/solvererr"
)

// Load decodes r as an image and resamples its luminance to an N×N
// target amplitude grid normalized so max(T) = 1, per spec.md §3's
// caller-side normalization requirement.
func Load(r io.Reader, n int) (*field.Real, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, solvererr.Wrap(solvererr.IoError, "decoding raster image", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Non-square source images are padded onto a square canvas before
	// resampling; no aspect-correcting crop is attempted, consistent
	// with this adapter's thin, Non-goal-bounded scope.
	raw := field.NewReal(max(w, h))
	side := raw.N
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := grayOf(img, bounds.Min.X+x, bounds.Min.Y+y)
			raw.Set(x, y, gray)
		}
	}

	var resized *field.Real
	if side == n {
		resized = raw
	} else if side > n {
		resized = geometry.Downsample(raw, n)
	} else {
		resized = geometry.Upsample(raw, n)
	}

	normalize(resized)
	return resized, nil
}

func grayOf(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	// Rec. 601 luma, matching the weighting stdlib's color.GrayModel
	// uses internally.
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535
}

func normalize(g *field.Real) {
	maxV := 0.0
	for _, v := range g.Data {
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		return
	}
	for i := range g.Data {
		g.Data[i] /= maxV
	}
}

