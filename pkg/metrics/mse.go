// Package metrics scores reconstructed images against the original.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"freqfilter/internal/models"
)

// MSE computes the mean squared error between two images of identical shape.
// Shapes are compared explicitly; images that differ in shape are never
// broadcast against each other and yield ErrShapeMismatch. Two empty images of
// the same shape score 0.
func MSE(a, b *models.Image) (float64, error) {
	if a.Shape != b.Shape {
		return 0, fmt.Errorf("mse: %w: %s vs %s", models.ErrShapeMismatch, a.Shape, b.Shape)
	}
	if len(a.Data) != a.Len() || len(b.Data) != b.Len() {
		return 0, fmt.Errorf("mse: %w", models.ErrInvalidShape)
	}
	if a.Len() == 0 {
		return 0, nil
	}

	diff := make([]float64, a.Len())
	floats.SubTo(diff, a.Data, b.Data)
	return floats.Dot(diff, diff) / float64(a.Len()), nil
}
