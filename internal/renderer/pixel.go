// Package renderer turns adjacency matrices into pixel buffers.
//
// Digraph images are 16-bit grayscale: x is the first byte, y the second,
// brightness follows the configured Curve and empty cells are black.
//
// Trigraph images are RGB. Pixel positions come from adjacency.Fold. The
// cell's total count sets brightness, and the three successor bands share
// it out as red (0x00-0x55), green (0x56-0xAA) and blue (0xAB-0xFF), with the
// dominant band at full brightness. Empty cells take the background colour.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/linuxmatters/binviz/internal/adjacency"
	"github.com/linuxmatters/binviz/internal/config"
	"golang.org/x/image/draw"
)

// Options controls the mapping from counts to pixels.
type Options struct {
	Curve      Curve
	Background color.RGBA // Trigraph empty cells
}

// DefaultOptions returns the log curve on the configured background.
func DefaultOptions() Options {
	return Options{
		Curve: CurveLog,
		Background: color.RGBA{
			R: config.BackgroundColorR,
			G: config.BackgroundColorG,
			B: config.BackgroundColorB,
			A: 255,
		},
	}
}

// PixelBuffer is a rendered visualisation, ready for an image writer.
type PixelBuffer struct {
	Mode  adjacency.Mode
	Image image.Image // *image.Gray16 for digraph, *image.RGBA for trigraph

	// Windows is the number of pairs or triples visualised.
	Windows uint64
	// FullScale is the count at which a cell reaches full brightness.
	FullScale float64
}

// Render counts stream in the given mode and renders the result.
func Render(stream []byte, mode adjacency.Mode, opts Options) (*PixelBuffer, error) {
	switch mode {
	case adjacency.ModeDigraph:
		return Gray(adjacency.Digraph(stream), opts)
	case adjacency.ModeTrigraph:
		return Colour(adjacency.Trigraph(stream), opts)
	}
	return nil, fmt.Errorf("%w: unknown visualization mode %d", config.ErrInvalid, int(mode))
}

// Gray renders a digraph matrix as 16-bit grayscale.
func Gray(m *adjacency.Matrix, opts Options) (*PixelBuffer, error) {
	s, err := fitScale(opts.Curve, m.Cells())
	if err != nil {
		return nil, err
	}

	img := image.NewGray16(image.Rect(0, 0, config.MatrixSize, config.MatrixSize))
	for i, count := range m.Cells() {
		v := uint16(math.Round(s.level(count) * math.MaxUint16))
		img.Pix[2*i] = uint8(v >> 8)
		img.Pix[2*i+1] = uint8(v)
	}

	return &PixelBuffer{
		Mode:      adjacency.ModeDigraph,
		Image:     img,
		Windows:   m.Sum(),
		FullScale: s.fullScale,
	}, nil
}

// Colour renders a trigraph matrix as RGB.
func Colour(t *adjacency.TrigraphMatrix, opts Options) (*PixelBuffer, error) {
	totals := t.Reduce()
	s, err := fitScale(opts.Curve, totals.Cells())
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, config.MatrixSize, config.MatrixSize))
	bg := opts.Background
	bg.A = 255
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for y := 0; y < config.MatrixSize; y++ {
		for x := 0; x < config.MatrixSize; x++ {
			total := totals.At(x, y)
			if total == 0 {
				continue
			}
			img.SetRGBA(x, y, bandColour(t.Cell(x, y), s.level(total)))
		}
	}

	return &PixelBuffer{
		Mode:      adjacency.ModeTrigraph,
		Image:     img,
		Windows:   totals.Sum(),
		FullScale: s.fullScale,
	}, nil
}

// bandColour shares brightness out across the channels in proportion to
// the band counts, the largest band getting the full level.
func bandColour(bands [config.SuccessorBands]uint64, level float64) color.RGBA {
	var dominant uint64
	for _, v := range bands {
		if v > dominant {
			dominant = v
		}
	}

	var ch [config.SuccessorBands]uint8
	for i, v := range bands {
		ch[i] = uint8(math.Round(255 * level * float64(v) / float64(dominant)))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}
}
