package accumulate

import (
	"image"

	"github.com/user/delogo/pkg/pipeline"
)

// intensityPlane converts a frame to a single channel-mean intensity plane
// on a 0-255 scale. RGB channels are averaged; alpha is ignored.
func intensityPlane(img image.Image) *pipeline.Field {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	f := pipeline.NewField(w, h)

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride:]
			for x := 0; x < w; x++ {
				i := (x + bounds.Min.X - src.Rect.Min.X) * 4
				f.Pix[y*w+x] = (float64(row[i]) + float64(row[i+1]) + float64(row[i+2])) / 3.0
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride:]
			for x := 0; x < w; x++ {
				i := (x + bounds.Min.X - src.Rect.Min.X) * 4
				f.Pix[y*w+x] = (float64(row[i]) + float64(row[i+1]) + float64(row[i+2])) / 3.0
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride:]
			for x := 0; x < w; x++ {
				f.Pix[y*w+x] = float64(row[x+bounds.Min.X-src.Rect.Min.X])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				f.Pix[y*w+x] = (float64(r>>8) + float64(g>>8) + float64(b>>8)) / 3.0
			}
		}
	}

	return f
}

// gradientX computes the discrete derivative along x: central differences
// in the interior, one-sided differences at the left and right borders.
func gradientX(in *pipeline.Field) *pipeline.Field {
	w, h := in.Width, in.Height
	out := pipeline.NewField(w, h)
	if w < 2 {
		return out
	}
	for y := 0; y < h; y++ {
		row := in.Pix[y*w : (y+1)*w]
		dst := out.Pix[y*w : (y+1)*w]
		dst[0] = row[1] - row[0]
		for x := 1; x < w-1; x++ {
			dst[x] = (row[x+1] - row[x-1]) / 2.0
		}
		dst[w-1] = row[w-1] - row[w-2]
	}
	return out
}

// gradientY computes the discrete derivative along y with the same scheme.
func gradientY(in *pipeline.Field) *pipeline.Field {
	w, h := in.Width, in.Height
	out := pipeline.NewField(w, h)
	if h < 2 {
		return out
	}
	for x := 0; x < w; x++ {
		out.Pix[x] = in.Pix[w+x] - in.Pix[x]
		for y := 1; y < h-1; y++ {
			out.Pix[y*w+x] = (in.Pix[(y+1)*w+x] - in.Pix[(y-1)*w+x]) / 2.0
		}
		out.Pix[(h-1)*w+x] = in.Pix[(h-1)*w+x] - in.Pix[(h-2)*w+x]
	}
	return out
}
