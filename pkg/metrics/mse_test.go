package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freqfilter/internal/models"
)

func mustImage(t *testing.T, rows, cols int, data ...float64) *models.Image {
	t.Helper()
	if data == nil {
		data = make([]float64, rows*cols)
	}
	img, err := models.NewImageFromData(models.Shape{Rows: rows, Cols: cols}, data)
	require.NoError(t, err)
	return img
}

// TestMSEIdentity verifies mse(A, A) == 0
func TestMSEIdentity(t *testing.T) {
	zero := mustImage(t, 4, 4)
	got, err := MSE(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	a := mustImage(t, 2, 3, 0.1, 0.7, 0.3, 1, 0, 0.55)
	got, err = MSE(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

// TestMSEValue checks the arithmetic mean of squared differences
func TestMSEValue(t *testing.T) {
	a := mustImage(t, 2, 2, 0, 0, 1, 1)
	b := mustImage(t, 2, 2, 0, 0.5, 0, 1)

	got, err := MSE(a, b)
	require.NoError(t, err)
	assert.InDelta(t, (0.25+1)/4, got, 1e-15)

	// symmetric
	rev, err := MSE(b, a)
	require.NoError(t, err)
	assert.Equal(t, got, rev)
}

// TestMSEShapeMismatch verifies that (4,4) vs (4,5) is rejected
func TestMSEShapeMismatch(t *testing.T) {
	_, err := MSE(mustImage(t, 4, 4), mustImage(t, 4, 5))
	assert.ErrorIs(t, err, models.ErrShapeMismatch)

	// same cell count, different shape
	_, err = MSE(mustImage(t, 2, 8), mustImage(t, 4, 4))
	assert.ErrorIs(t, err, models.ErrShapeMismatch)
}

// TestMSEEmpty verifies that empty images of equal shape score zero
func TestMSEEmpty(t *testing.T) {
	got, err := MSE(mustImage(t, 0, 3), mustImage(t, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}
