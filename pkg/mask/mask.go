// Package mask builds ideal circular low-pass and high-pass masks in the
// centered frequency layout and applies them to spectra.
package mask

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"freqfilter/internal/models"
)

// Generator builds masks, splitting the rows of the grid across Workers
// goroutines. Each cell depends only on its own coordinates, so the result
// does not depend on the number of workers.
type Generator struct {
	// Workers is the number of goroutines used for the scan.
	// Values below 1 mean runtime.NumCPU().
	Workers int
}

// NewGenerator creates a generator using the given number of workers
func NewGenerator(workers int) *Generator {
	return &Generator{Workers: workers}
}

// LowPass builds an ideal low-pass mask with the package default generator
func LowPass(shape models.Shape, cutoff float64) (*models.Mask, error) {
	return NewGenerator(0).LowPass(shape, cutoff)
}

// HighPass builds an ideal high-pass mask with the package default generator
func HighPass(shape models.Shape, cutoff float64) (*models.Mask, error) {
	return NewGenerator(0).HighPass(shape, cutoff)
}

// LowPass returns a mask that is 1.0 where the distance from
// (rows/2, cols/2) is at most cutoff and 0.0 elsewhere. The boundary is
// inclusive. Cutoff is not clamped: a negative value blocks every cell and a
// value past the grid diagonal passes every cell.
func (g *Generator) LowPass(shape models.Shape, cutoff float64) (*models.Mask, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("low-pass mask: %w", err)
	}

	m := &models.Mask{Shape: shape, Data: make([]float64, shape.Len())}
	if shape.Empty() {
		return m, nil
	}

	crow, ccol := shape.Rows/2, shape.Cols/2
	g.scanRows(shape.Rows, func(i int) {
		di := i - crow
		row := m.Data[i*shape.Cols : (i+1)*shape.Cols]
		for j := range row {
			dj := j - ccol
			if math.Sqrt(float64(di*di+dj*dj)) <= cutoff {
				row[j] = 1.0
			}
		}
	})

	return m, nil
}

// HighPass returns the complement of LowPass: 1.0 - low[i,j] for every cell
func (g *Generator) HighPass(shape models.Shape, cutoff float64) (*models.Mask, error) {
	low, err := g.LowPass(shape, cutoff)
	if err != nil {
		return nil, fmt.Errorf("high-pass mask: %w", err)
	}

	high := &models.Mask{Shape: shape, Data: make([]float64, len(low.Data))}
	for i, v := range low.Data {
		high.Data[i] = 1.0 - v
	}
	return high, nil
}

// scanRows calls fn once for every row index, spreading contiguous row bands
// across the worker goroutines
func (g *Generator) scanRows(rows int, fn func(i int)) {
	workers := g.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}

	if workers <= 1 {
		for i := 0; i < rows; i++ {
			fn(i)
		}
		return
	}

	band := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < rows; start += band {
		end := start + band
		if end > rows {
			end = rows
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Apply multiplies a centered spectrum by a mask, cell by cell, and returns
// the filtered spectrum as a new value
func Apply(s *models.Spectrum, m *models.Mask) (*models.Spectrum, error) {
	if err := s.Require(models.Centered); err != nil {
		return nil, fmt.Errorf("apply mask: %w", err)
	}
	if s.Shape != m.Shape {
		return nil, fmt.Errorf("apply mask: %w: spectrum %s, mask %s", models.ErrShapeMismatch, s.Shape, m.Shape)
	}

	out := &models.Spectrum{
		Shape:  s.Shape,
		Data:   make([]complex128, len(s.Data)),
		Layout: models.Centered,
	}
	for i, c := range s.Data {
		out.Data[i] = c * complex(m.Data[i], 0)
	}
	return out, nil
}
