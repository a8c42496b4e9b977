package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"freqfilter/internal/models"
)

// Center moves the zero-frequency coefficient from [0,0] to
// [rows/2, cols/2]. Index k along an axis of length n lands on
// (k + n/2) mod n, with n/2 rounded down for odd lengths.
func Center(s *models.Spectrum) (*models.Spectrum, error) {
	if err := s.Require(models.Raw); err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}
	return shift(s, models.Centered, true), nil
}

// Uncenter is the exact inverse of Center for every shape, even or odd
func Uncenter(s *models.Spectrum) (*models.Spectrum, error) {
	if err := s.Require(models.Centered); err != nil {
		return nil, fmt.Errorf("uncenter: %w", err)
	}
	return shift(s, models.Raw, false), nil
}

// shift performs the cyclic permutation into a new spectrum.
// Forward writes src[k] to dst[(k+h) mod n]; backward reads src[(k+h) mod n] into dst[k].
func shift(s *models.Spectrum, layout models.Layout, forward bool) *models.Spectrum {
	rows, cols := s.Rows, s.Cols
	out := &models.Spectrum{
		Shape:  s.Shape,
		Data:   make([]complex128, len(s.Data)),
		Layout: layout,
	}
	if s.Empty() {
		return out
	}

	hr, hc := rows/2, cols/2
	for i := 0; i < rows; i++ {
		si := (i + hr) % rows
		for j := 0; j < cols; j++ {
			sj := (j + hc) % cols
			if forward {
				out.Data[si*cols+sj] = s.Data[i*cols+j]
			} else {
				out.Data[i*cols+j] = s.Data[si*cols+sj]
			}
		}
	}
	return out
}

// LogMagnitude returns log(1 + |z|) for every coefficient, the usual
// dynamic-range compression for displaying a spectrum
func LogMagnitude(s *models.Spectrum) []float64 {
	out := make([]float64, len(s.Data))
	for i, c := range s.Data {
		out[i] = math.Log1p(cmplx.Abs(c))
	}
	return out
}

// NormalizeMinMax rescales values to [0,1]. A constant input becomes all
// zeros.
func NormalizeMinMax(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	copy(out, values)
	floats.AddConst(-floats.Min(values), out)
	if peak := floats.Max(out); peak != 0 {
		floats.Scale(1/peak, out)
	}
	return out
}
