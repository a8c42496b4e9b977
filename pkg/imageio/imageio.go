// Package imageio loads grayscale images into the [0,1] float representation
// used by the filtering core and writes results back out as 8-bit PNG files.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"freqfilter/internal/models"
)

// Load reads a PNG, JPEG, BMP or TIFF file, converts it to 8-bit grayscale
// and divides every sample by 255.
//
// A missing file yields an error wrapping models.ErrInputNotFound.
func Load(path string) (*models.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return FromImage(src)
}

// FromImage converts any image.Image to a normalized grayscale Image.
// Color sources go through the luma weights of color.GrayModel.
func FromImage(src image.Image) (*models.Image, error) {
	bounds := src.Bounds()
	gray, ok := src.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)
	}
	return Normalize(gray)
}

// Normalize maps 8-bit gray samples in [0,255] to [0,1]
func Normalize(gray *image.Gray) (*models.Image, error) {
	bounds := gray.Bounds()
	img, err := models.NewImage(models.Shape{Rows: bounds.Dy(), Cols: bounds.Dx()})
	if err != nil {
		return nil, err
	}

	for y := 0; y < img.Rows; y++ {
		for x := 0; x < img.Cols; x++ {
			img.Data[y*img.Cols+x] = float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) / 255.0
		}
	}
	return img, nil
}

// ToGray clips values to [0,1] and scales them to 8-bit pixels, rounding to
// the nearest level so that loaded images are written back unchanged.
func ToGray(img *models.Image) *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, img.Cols, img.Rows))
	for y := 0; y < img.Rows; y++ {
		for x := 0; x < img.Cols; x++ {
			v := math.Max(0, math.Min(1, img.Data[y*img.Cols+x]))
			gray.SetGray(x, y, color.Gray{Y: uint8(math.Round(v * 255))})
		}
	}
	return gray
}

// SaveGray writes img as an 8-bit grayscale PNG, creating parent directories
// as needed
func SaveGray(path string, img *models.Image) error {
	return SavePNG(path, ToGray(img))
}

// SavePNG encodes any image as PNG at path
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return file.Close()
}
