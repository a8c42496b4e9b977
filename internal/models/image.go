package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is returned when the source image cannot be located
	ErrInputNotFound = errors.New("input image not found")

	// ErrShapeMismatch is returned when two grids that must share a shape do not
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrEmptyInput is returned when a transform receives a zero-area grid
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidShape is returned for negative dimensions or when the backing
	// data does not hold rows*cols samples
	ErrInvalidShape = errors.New("invalid shape")

	// ErrLayoutMismatch is returned when a raw spectrum is passed where a
	// centered one is required, or the other way round
	ErrLayoutMismatch = errors.New("spectrum layout mismatch")
)

// Shape is the size of a 2D grid
type Shape struct {
	Rows int
	Cols int
}

// Len returns the number of cells in the grid
func (s Shape) Len() int {
	return s.Rows * s.Cols
}

// Empty reports whether the grid has zero area
func (s Shape) Empty() bool {
	return s.Rows == 0 || s.Cols == 0
}

// Validate checks that both dimensions are non-negative
func (s Shape) Validate() error {
	if s.Rows < 0 || s.Cols < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidShape, s)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rows, s.Cols)
}

// Image is a grayscale image stored row-major.
// Values produced by the loader are in [0,1].
type Image struct {
	Shape

	// Data holds Rows*Cols samples, row-major
	Data []float64
}

// NewImage allocates a zero-valued image of the given shape
func NewImage(shape Shape) (*Image, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Image{Shape: shape, Data: make([]float64, shape.Len())}, nil
}

// NewImageFromData wraps data as an image after checking its length
func NewImageFromData(shape Shape, data []float64) (*Image, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.Len() {
		return nil, fmt.Errorf("%w: %d samples for shape %s", ErrInvalidShape, len(data), shape)
	}
	return &Image{Shape: shape, Data: data}, nil
}

// At returns the sample at row i, column j
func (img *Image) At(i, j int) float64 {
	return img.Data[i*img.Cols+j]
}

// Layout tells where the zero-frequency coefficient of a Spectrum lives
type Layout int

const (
	// Raw keeps the DC term at index [0,0]
	Raw Layout = iota

	// Centered moves the DC term to index [rows/2, cols/2]
	Centered
)

func (l Layout) String() string {
	switch l {
	case Raw:
		return "raw"
	case Centered:
		return "centered"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Spectrum holds 2D Fourier coefficients together with their layout
type Spectrum struct {
	Shape

	// Data holds Rows*Cols coefficients, row-major
	Data []complex128

	// Layout records whether Data is raw or centered
	Layout Layout
}

// At returns the coefficient at row i, column j
func (s *Spectrum) At(i, j int) complex128 {
	return s.Data[i*s.Cols+j]
}

// Require returns ErrLayoutMismatch unless the spectrum is in the given layout
func (s *Spectrum) Require(layout Layout) error {
	if s.Layout != layout {
		return fmt.Errorf("%w: want %s, got %s", ErrLayoutMismatch, layout, s.Layout)
	}
	return nil
}

// Mask is an ideal frequency-domain filter in the centered layout.
// Every value is exactly 0.0 or 1.0.
type Mask struct {
	Shape

	// Data holds Rows*Cols pass (1.0) or block (0.0) values, row-major
	Data []float64
}

// At returns the mask value at row i, column j
func (m *Mask) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Passed counts the cells that let their coefficient through
func (m *Mask) Passed() int {
	n := 0
	for _, v := range m.Data {
		if v == 1.0 {
			n++
		}
	}
	return n
}
