package pipeline

// Field is a dense float64 plane with frame dimensions.
// Pixels are stored row-major; (x, y) maps to Pix[y*Width+x].
type Field struct {
	Width  int
	Height int
	Pix    []float64
}

// NewField allocates a zero-filled field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Pix[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Pix[y*f.Width+x] = v
}

// SameSize reports whether two fields have identical dimensions.
func (f *Field) SameSize(other *Field) bool {
	return other != nil && f.Width == other.Width && f.Height == other.Height
}
