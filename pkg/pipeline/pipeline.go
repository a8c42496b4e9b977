package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"freqfilter/internal/models"
	"freqfilter/pkg/imageio"
	"freqfilter/pkg/mask"
	"freqfilter/pkg/metrics"
	"freqfilter/pkg/spectrum"
	"freqfilter/pkg/visualization"
)

// Params holds the filtering parameters for one run.
// There is no package-level state; everything the pipeline needs is here.
type Params struct {
	// InputPath is the grayscale image to filter
	InputPath string

	// OutputDir receives the filtered images, spectra, panel and sweep chart.
	// Nothing is written when it is empty.
	OutputDir string

	// Cutoff is the radius of the ideal filters in frequency pixels
	Cutoff float64

	// Workers is the number of goroutines used to build masks (0 = all cores)
	Workers int

	// SaveSpectra writes the normalized log spectra next to the images
	SaveSpectra bool

	// SavePanel writes the 2x3 summary panel
	SavePanel bool

	// SweepCutoffs, when not empty, are scored in addition to Cutoff
	SweepCutoffs []float64

	// Logger receives progress messages. Defaults to the logrus standard logger.
	Logger *logrus.Logger
}

// Result is everything one run produces
type Result struct {
	Cutoff float64

	// Original is the normalized input image
	Original *models.Image

	// LowPass and HighPass are the reconstructed images
	LowPass  *models.Image
	HighPass *models.Image

	// Spectra as log(1+|F|), same shape as Original
	SpectrumBefore []float64
	SpectrumLow    []float64
	SpectrumHigh   []float64

	// LowMSE and HighMSE score each reconstruction against Original
	LowMSE  float64
	HighMSE float64

	// Sweep holds one point per SweepCutoffs entry, sorted by cutoff
	Sweep []visualization.SweepPoint
}

// Pipeline runs load, transform, mask, filter, reconstruct and score
type Pipeline struct {
	params    *Params
	log       *logrus.Logger
	generator *mask.Generator
	result    *Result
}

// NewPipeline creates a pipeline instance with the provided parameters
func NewPipeline(params *Params) *Pipeline {
	log := params.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		params:    params,
		log:       log,
		generator: mask.NewGenerator(params.Workers),
	}
}

// Process runs the complete pipeline on Params.InputPath and writes outputs
// when an output directory is configured
func (p *Pipeline) Process() error {
	p.log.WithField("input", p.params.InputPath).Info("Loading input image")
	img, err := imageio.Load(p.params.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	result, err := p.Filter(img)
	if err != nil {
		return err
	}

	if len(p.params.SweepCutoffs) > 0 {
		p.log.WithField("cutoffs", p.params.SweepCutoffs).Info("Sweeping cutoffs")
		result.Sweep, err = p.Sweep(img, p.params.SweepCutoffs)
		if err != nil {
			return fmt.Errorf("failed to sweep cutoffs: %w", err)
		}
	}
	p.result = result

	if p.params.OutputDir == "" {
		return nil
	}
	return p.save(result)
}

// Filter applies the low-pass and high-pass filters at Params.Cutoff to an
// already loaded image and scores both reconstructions
func (p *Pipeline) Filter(img *models.Image) (*Result, error) {
	cutoff := p.params.Cutoff
	p.log.WithFields(logrus.Fields{
		"shape":  img.Shape.String(),
		"cutoff": cutoff,
	}).Debug("Filtering image")

	centered, err := spectrum.Forward(img)
	if err != nil {
		return nil, fmt.Errorf("failed to transform image: %w", err)
	}

	low, err := p.generator.LowPass(img.Shape, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to build low-pass mask: %w", err)
	}
	high, err := p.generator.HighPass(img.Shape, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to build high-pass mask: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"low_pass_cells":  low.Passed(),
		"high_pass_cells": high.Passed(),
	}).Debug("Masks built")

	lowBand, err := p.reconstruct(img, centered, low)
	if err != nil {
		return nil, fmt.Errorf("low-pass: %w", err)
	}
	highBand, err := p.reconstruct(img, centered, high)
	if err != nil {
		return nil, fmt.Errorf("high-pass: %w", err)
	}

	result := &Result{
		Cutoff:         cutoff,
		Original:       img,
		LowPass:        lowBand.image,
		HighPass:       highBand.image,
		SpectrumBefore: spectrum.LogMagnitude(centered),
		SpectrumLow:    spectrum.LogMagnitude(lowBand.spectrum),
		SpectrumHigh:   spectrum.LogMagnitude(highBand.spectrum),
		LowMSE:         lowBand.mse,
		HighMSE:        highBand.mse,
	}

	p.log.WithFields(logrus.Fields{
		"cutoff":   cutoff,
		"mse_low":  result.LowMSE,
		"mse_high": result.HighMSE,
	}).Info("Filtering complete")

	return result, nil
}

// band is one filtered branch of the pipeline
type band struct {
	spectrum *models.Spectrum
	image    *models.Image
	mse      float64
}

// reconstruct masks the centered spectrum, inverts it and scores the result
func (p *Pipeline) reconstruct(original *models.Image, centered *models.Spectrum, m *models.Mask) (*band, error) {
	filtered, err := mask.Apply(centered, m)
	if err != nil {
		return nil, err
	}
	img, err := spectrum.Inverse(filtered)
	if err != nil {
		return nil, err
	}
	mse, err := metrics.MSE(original, img)
	if err != nil {
		return nil, err
	}
	return &band{spectrum: filtered, image: img, mse: mse}, nil
}

// Sweep scores both filters at every cutoff, reusing one forward transform.
// The points are returned sorted by cutoff.
func (p *Pipeline) Sweep(img *models.Image, cutoffs []float64) ([]visualization.SweepPoint, error) {
	centered, err := spectrum.Forward(img)
	if err != nil {
		return nil, fmt.Errorf("failed to transform image: %w", err)
	}

	sorted := append([]float64(nil), cutoffs...)
	sort.Float64s(sorted)

	points := make([]visualization.SweepPoint, 0, len(sorted))
	for _, cutoff := range sorted {
		low, err := p.generator.LowPass(img.Shape, cutoff)
		if err != nil {
			return nil, err
		}
		high, err := p.generator.HighPass(img.Shape, cutoff)
		if err != nil {
			return nil, err
		}

		lowBand, err := p.reconstruct(img, centered, low)
		if err != nil {
			return nil, err
		}
		highBand, err := p.reconstruct(img, centered, high)
		if err != nil {
			return nil, err
		}

		p.log.WithFields(logrus.Fields{
			"cutoff":   cutoff,
			"mse_low":  lowBand.mse,
			"mse_high": highBand.mse,
		}).Debug("Sweep point")

		points = append(points, visualization.SweepPoint{
			Cutoff:  cutoff,
			LowMSE:  lowBand.mse,
			HighMSE: highBand.mse,
		})
	}
	return points, nil
}

// GetResult returns the result of the last successful Process call
func (p *Pipeline) GetResult() *Result {
	return p.result
}

// save writes every configured output. Failures to write the optional
// panel or chart are logged and do not fail the run.
func (p *Pipeline) save(r *Result) error {
	dir := p.params.OutputDir
	tag := formatCutoff(r.Cutoff)

	images := []struct {
		name string
		img  *models.Image
	}{
		{"original.png", r.Original},
		{fmt.Sprintf("lpf_cutoff_%s.png", tag), r.LowPass},
		{fmt.Sprintf("hpf_cutoff_%s.png", tag), r.HighPass},
	}
	for _, out := range images {
		if err := imageio.SaveGray(filepath.Join(dir, out.name), out.img); err != nil {
			return fmt.Errorf("failed to save %s: %w", out.name, err)
		}
	}

	spectra, err := r.spectrumImages()
	if err != nil {
		return err
	}

	if p.params.SaveSpectra {
		names := []string{
			"spectrum_before.png",
			fmt.Sprintf("spectrum_lpf_%s.png", tag),
			fmt.Sprintf("spectrum_hpf_%s.png", tag),
		}
		for i, name := range names {
			if err := imageio.SaveGray(filepath.Join(dir, name), spectra[i]); err != nil {
				return fmt.Errorf("failed to save %s: %w", name, err)
			}
		}
	}

	if p.params.SavePanel {
		panel := visualization.NewPanel(3)
		panel.Add("Original", r.Original)
		panel.Add(fmt.Sprintf("Low-pass (cutoff=%s)", tag), r.LowPass)
		panel.Add(fmt.Sprintf("High-pass (cutoff=%s)", tag), r.HighPass)
		panel.Add("Spectrum (before, log)", spectra[0])
		panel.Add("Spectrum (LPF, log)", spectra[1])
		panel.Add("Spectrum (HPF, log)", spectra[2])

		path := filepath.Join(dir, fmt.Sprintf("summary_cutoff_%s.png", tag))
		if err := panel.Save(path); err != nil {
			p.log.WithError(err).Warn("Failed to save summary panel")
		}
	}

	if len(r.Sweep) > 1 {
		path := filepath.Join(dir, "mse_sweep.png")
		if err := visualization.SaveSweepChart(r.Sweep, "MSE vs cutoff", path); err != nil {
			p.log.WithError(err).Warn("Failed to save sweep chart")
		}
	}

	p.log.WithField("dir", dir).Info("Results saved")
	return nil
}

// spectrumImages returns the min-max normalized log spectra as images, in the
// order before, low-pass, high-pass
func (r *Result) spectrumImages() ([]*models.Image, error) {
	out := make([]*models.Image, 0, 3)
	for _, s := range [][]float64{r.SpectrumBefore, r.SpectrumLow, r.SpectrumHigh} {
		img, err := models.NewImageFromData(r.Original.Shape, spectrum.NormalizeMinMax(s))
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// formatCutoff renders the cutoff for file names: 40 -> "40", 12.5 -> "12.5"
func formatCutoff(cutoff float64) string {
	return fmt.Sprintf("%g", cutoff)
}
