package spectrum

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freqfilter/internal/models"
)

// randomImage fills an image with reproducible values in [0,1)
func randomImage(t *testing.T, rows, cols int, seed int64) *models.Image {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img, err := models.NewImage(models.Shape{Rows: rows, Cols: cols})
	require.NoError(t, err)
	for i := range img.Data {
		img.Data[i] = rng.Float64()
	}
	return img
}

// TestForwardMatchesReference compares the raw spectrum against an
// independent FFT2 implementation
func TestForwardMatchesReference(t *testing.T) {
	for _, shape := range []models.Shape{{Rows: 4, Cols: 4}, {Rows: 5, Cols: 3}, {Rows: 6, Cols: 9}} {
		img := randomImage(t, shape.Rows, shape.Cols, 7)

		centered, err := Forward(img)
		require.NoError(t, err)
		assert.Equal(t, models.Centered, centered.Layout)

		raw, err := Uncenter(centered)
		require.NoError(t, err)

		grid := make([][]float64, shape.Rows)
		for i := range grid {
			grid[i] = img.Data[i*shape.Cols : (i+1)*shape.Cols]
		}
		want := fft.FFT2Real(grid)

		for i := 0; i < shape.Rows; i++ {
			for j := 0; j < shape.Cols; j++ {
				got := raw.At(i, j)
				if cmplx.Abs(got-want[i][j]) > 1e-9 {
					t.Errorf("shape %s: coefficient [%d,%d] = %v, expected %v", shape, i, j, got, want[i][j])
				}
			}
		}
	}
}

// TestForwardCentersDC verifies that the DC term ends up at [rows/2, cols/2]
func TestForwardCentersDC(t *testing.T) {
	for _, shape := range []models.Shape{{Rows: 4, Cols: 4}, {Rows: 5, Cols: 5}, {Rows: 3, Cols: 6}} {
		img, err := models.NewImage(shape)
		require.NoError(t, err)
		for i := range img.Data {
			img.Data[i] = 1
		}

		s, err := Forward(img)
		require.NoError(t, err)

		dc := s.At(shape.Rows/2, shape.Cols/2)
		assert.InDelta(t, float64(shape.Len()), real(dc), 1e-9, "shape %s", shape)
		for i := 0; i < shape.Rows; i++ {
			for j := 0; j < shape.Cols; j++ {
				if i == shape.Rows/2 && j == shape.Cols/2 {
					continue
				}
				assert.InDelta(t, 0, cmplx.Abs(s.At(i, j)), 1e-9)
			}
		}
	}
}

// TestRoundTrip verifies inverse(forward(x)) == x without any mask
func TestRoundTrip(t *testing.T) {
	shapes := []models.Shape{
		{Rows: 1, Cols: 1},
		{Rows: 4, Cols: 4},
		{Rows: 5, Cols: 5},
		{Rows: 7, Cols: 4},
		{Rows: 16, Cols: 9},
	}
	for k, shape := range shapes {
		img := randomImage(t, shape.Rows, shape.Cols, int64(k))

		s, err := Forward(img)
		require.NoError(t, err)
		back, err := Inverse(s)
		require.NoError(t, err)

		require.Equal(t, img.Shape, back.Shape)
		for i := range img.Data {
			if math.Abs(img.Data[i]-back.Data[i]) > 1e-5 {
				t.Fatalf("shape %s: sample %d = %f, expected %f", shape, i, back.Data[i], img.Data[i])
			}
		}
	}
}

// TestRoundTripZeroImage covers the 4x4 all-zero scenario
func TestRoundTripZeroImage(t *testing.T) {
	img, err := models.NewImage(models.Shape{Rows: 4, Cols: 4})
	require.NoError(t, err)

	s, err := Forward(img)
	require.NoError(t, err)
	back, err := Inverse(s)
	require.NoError(t, err)

	assert.Equal(t, img.Data, back.Data)
}

// TestInverseReturnsMagnitude checks that negative inputs come back as
// their absolute value
func TestInverseReturnsMagnitude(t *testing.T) {
	img, err := models.NewImageFromData(models.Shape{Rows: 2, Cols: 2}, []float64{-0.5, 0.25, 0, 1})
	require.NoError(t, err)

	s, err := Forward(img)
	require.NoError(t, err)
	back, err := Inverse(s)
	require.NoError(t, err)

	expected := []float64{0.5, 0.25, 0, 1}
	for i := range expected {
		assert.InDelta(t, expected[i], back.Data[i], 1e-12)
	}
}

// TestEmptyInput verifies that zero-area input fails clearly
func TestEmptyInput(t *testing.T) {
	img, err := models.NewImage(models.Shape{Rows: 0, Cols: 3})
	require.NoError(t, err)

	_, err = Forward(img)
	assert.ErrorIs(t, err, models.ErrEmptyInput)

	_, err = Inverse(&models.Spectrum{Shape: models.Shape{Rows: 2, Cols: 0}, Layout: models.Centered})
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

// TestInverseRejectsRawSpectrum verifies that layouts are never mixed
func TestInverseRejectsRawSpectrum(t *testing.T) {
	s := &models.Spectrum{
		Shape:  models.Shape{Rows: 2, Cols: 2},
		Data:   make([]complex128, 4),
		Layout: models.Raw,
	}
	_, err := Inverse(s)
	assert.ErrorIs(t, err, models.ErrLayoutMismatch)
}
