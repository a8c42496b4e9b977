// Package spectrum implements the forward and inverse 2D Fourier transform of
// grayscale images, together with the centering permutation that moves the
// zero-frequency coefficient to the middle of the grid.
package spectrum

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"freqfilter/internal/models"
)

// Forward performs a 2D Fast Fourier Transform on the image and returns the
// centered spectrum.
//
// Parameters:
//   - img: Input image (row-major), any finite real values
//
// Returns:
//   - The spectrum in the Centered layout, same shape as img
//   - ErrEmptyInput if the image has zero rows or columns
func Forward(img *models.Image) (*models.Spectrum, error) {
	if img == nil || img.Empty() {
		return nil, fmt.Errorf("forward transform: %w", models.ErrEmptyInput)
	}
	if len(img.Data) != img.Len() {
		return nil, fmt.Errorf("forward transform: %w", models.ErrInvalidShape)
	}

	data := make([]complex128, img.Len())
	for i, v := range img.Data {
		data[i] = complex(v, 0)
	}
	fft2D(data, img.Rows, img.Cols, true)

	raw := &models.Spectrum{Shape: img.Shape, Data: data, Layout: models.Raw}
	return Center(raw)
}

// Inverse un-centers the spectrum, performs the inverse 2D FFT and returns the
// magnitude of every complex sample. The magnitude, not the real part, is kept
// so that the residual imaginary rounding noise never shows up as negative
// pixel values.
func Inverse(s *models.Spectrum) (*models.Image, error) {
	if s == nil || s.Empty() {
		return nil, fmt.Errorf("inverse transform: %w", models.ErrEmptyInput)
	}
	raw, err := Uncenter(s)
	if err != nil {
		return nil, fmt.Errorf("inverse transform: %w", err)
	}

	// Uncenter already returned a fresh copy, so it is ours to overwrite
	fft2D(raw.Data, raw.Rows, raw.Cols, false)

	n := float64(raw.Len())
	out := make([]float64, raw.Len())
	for i, c := range raw.Data {
		out[i] = cmplx.Abs(c) / n
	}
	return models.NewImageFromData(raw.Shape, out)
}

// fft2D transforms data in place, rows first and then columns.
// Gonum's Sequence is unnormalized; callers scale the inverse themselves.
func fft2D(data []complex128, rows, cols int, forward bool) {
	rowFFT := fourier.NewCmplxFFT(cols)
	colFFT := fourier.NewCmplxFFT(rows)

	// Row-wise FFT, directly on the row sub-slices
	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		if forward {
			rowFFT.Coefficients(row, row)
		} else {
			rowFFT.Sequence(row, row)
		}
	}

	// Column-wise FFT through a scratch buffer
	col := make([]complex128, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = data[i*cols+j]
		}
		if forward {
			colFFT.Coefficients(col, col)
		} else {
			colFFT.Sequence(col, col)
		}
		for i := 0; i < rows; i++ {
			data[i*cols+j] = col[i]
		}
	}
}
