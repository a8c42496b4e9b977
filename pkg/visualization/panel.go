// Package visualization renders filtering results for reports: a labelled
// summary panel of images and spectra, and a chart of MSE against cutoff.
package visualization

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"freqfilter/internal/models"
	"freqfilter/pkg/imageio"
)

const (
	// titleHeight is the strip above each tile that holds its label
	titleHeight = 18

	// gap separates neighbouring tiles
	gap = 8
)

// Tile is one labelled cell of a Panel
type Tile struct {
	Title string
	Image *models.Image
}

// Panel lays tiles out on a grid, row by row, like a subplot figure
type Panel struct {
	// Columns is the number of tiles per row
	Columns int

	// Background fills the space between tiles
	Background color.Gray

	tiles []Tile
}

// NewPanel creates an empty panel with the given number of columns
func NewPanel(columns int) *Panel {
	return &Panel{
		Columns:    columns,
		Background: color.Gray{Y: 255},
	}
}

// Add appends a tile. Values are clipped to [0,1] at render time.
func (p *Panel) Add(title string, img *models.Image) {
	p.tiles = append(p.tiles, Tile{Title: title, Image: img})
}

// Len returns the number of tiles added so far
func (p *Panel) Len() int {
	return len(p.tiles)
}

// Render composes the tiles into a single grayscale image. Every cell is
// sized to the largest tile; smaller tiles are drawn at their top-left corner.
func (p *Panel) Render() (*image.Gray, error) {
	if len(p.tiles) == 0 {
		return nil, errors.New("panel has no tiles")
	}
	if p.Columns < 1 {
		return nil, fmt.Errorf("panel columns must be positive, got %d", p.Columns)
	}

	cellW, cellH := 0, 0
	for _, tile := range p.tiles {
		cellW = max(cellW, tile.Image.Cols)
		cellH = max(cellH, tile.Image.Rows)
	}
	cellH += titleHeight

	rows := (len(p.tiles) + p.Columns - 1) / p.Columns
	width := p.Columns*cellW + (p.Columns+1)*gap
	height := rows*cellH + (rows+1)*gap

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	for idx, tile := range p.tiles {
		col := idx % p.Columns
		row := idx / p.Columns
		x0 := gap + col*(cellW+gap)
		y0 := gap + row*(cellH+gap)

		drawLabel(canvas, tile.Title, x0, y0+titleHeight-5)

		src := imageio.ToGray(tile.Image)
		dst := image.Rect(x0, y0+titleHeight, x0+tile.Image.Cols, y0+titleHeight+tile.Image.Rows)
		draw.Draw(canvas, dst, src, image.Point{}, draw.Src)
	}

	return canvas, nil
}

// Save renders the panel and writes it as PNG
func (p *Panel) Save(path string) error {
	img, err := p.Render()
	if err != nil {
		return err
	}
	return imageio.SavePNG(path, img)
}

// drawLabel writes text with its baseline at (x, y)
func drawLabel(dst draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Gray{Y: 0}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
