package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/binviz/internal/config"
	"github.com/linuxmatters/binviz/internal/renderer"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ImageOptions controls how a pixel buffer is written.
type ImageOptions struct {
	Scale     int    // Integer upscale factor, 0 or 1 keeps 256x256
	Caption   string // Drawn in a bar below the image when not empty
	TextColor color.RGBA
}

// DefaultImageOptions returns a 1:1 image without caption.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Scale:     config.DefaultImageScale,
		TextColor: color.RGBA{R: config.TextColorR, G: config.TextColorG, B: config.TextColorB, A: 255},
	}
}

var (
	captionFont     *truetype.Font
	captionFontErr  error
	captionFontOnce sync.Once
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = truetype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// SavePNG writes buf to path as a PNG file.
func SavePNG(path string, buf *renderer.PixelBuffer, opts ImageOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	if err := EncodePNG(f, buf, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodePNG writes buf to w. Without scaling or caption the image keeps its
// native format, so digraphs stay 16-bit grayscale.
func EncodePNG(w io.Writer, buf *renderer.PixelBuffer, opts ImageOptions) error {
	img, err := Compose(buf.Image, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Compose applies scaling and the caption bar to src.
func Compose(src image.Image, opts ImageOptions) (image.Image, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 1 || scale > config.MaxImageScale {
		return nil, fmt.Errorf("%w: image scale %d (must be 1-%d)", config.ErrInvalid, scale, config.MaxImageScale)
	}
	if scale == 1 && opts.Caption == "" {
		return src, nil
	}

	sb := src.Bounds()
	w, h := sb.Dx()*scale, sb.Dy()*scale
	canvasHeight := h
	if opts.Caption != "" {
		canvasHeight += config.CaptionHeight
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, canvasHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(dst, image.Rect(0, 0, w, h), src, sb, draw.Src, nil)

	if opts.Caption != "" {
		if err := drawCaption(dst, opts.Caption, h, opts.TextColor); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// drawCaption writes text left-aligned in the bar starting at row top,
// shortening it with an ellipsis until it fits the width.
func drawCaption(img *image.RGBA, text string, top int, col color.RGBA) error {
	f, err := loadCaptionFont()
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    config.CaptionFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	const margin = 4
	maxWidth := img.Bounds().Dx() - 2*margin
	text = fitText(face, text, maxWidth)

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textHeight := ascent + metrics.Descent.Ceil()
	baseline := top + (config.CaptionHeight-textHeight)/2 + ascent

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  freetype.Pt(margin, baseline),
	}
	d.DrawString(text)
	return nil
}

func fitText(face font.Face, text string, maxWidth int) string {
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ""
}

// Caption describes a rendered buffer for the caption bar.
func Caption(name string, buf *renderer.PixelBuffer) string {
	unit := "pairs"
	if buf.Mode.Window() == 3 {
		unit = "triples"
	}
	return fmt.Sprintf("%s  %s  %d %s", name, buf.Mode, buf.Windows, unit)
}
