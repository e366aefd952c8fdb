package maskbuild

import (
	"math"

	"github.com/user/delogo/pkg/pipeline"
)

// gaussianKernel returns a normalized 1-D Gaussian kernel for the given
// sigma, truncated at 4 standard deviations like the reference detector.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4.0*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * float64(i) * float64(i) / (sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blurSeparable applies an isotropic Gaussian blur as two 1-D convolution
// passes with reflected borders. The convolution is explicit so the result
// does not depend on any numeric library's kernel implementation.
func blurSeparable(in *pipeline.Field, sigma float64) *pipeline.Field {
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	w, h := in.Width, in.Height

	// Horizontal pass.
	tmp := pipeline.NewField(w, h)
	for y := 0; y < h; y++ {
		row := in.Pix[y*w : (y+1)*w]
		dst := tmp.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * row[reflectIndex(x+k, w)]
			}
			dst[x] = acc
		}
	}

	// Vertical pass.
	out := pipeline.NewField(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * tmp.Pix[reflectIndex(y+k, h)*w+x]
			}
			out.Pix[y*w+x] = acc
		}
	}

	return out
}

// reflectIndex maps an out-of-range index back into [0, n) by reflecting
// about the array edges (d c b a | a b c d).
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - 1 - i
		}
	}
	return i
}
