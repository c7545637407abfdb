package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds the terminal preview size
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns 64x32 cells. Terminal cells are roughly twice
// as tall as wide, so a square image keeps its aspect.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  64,
		Height: 32,
	}
}

// DownsampleImage averages img into a grid of config.Height rows of
// config.Width cells. A grid larger than the image is clamped to it.
func DownsampleImage(img image.Image, config PreviewConfig) [][]color.RGBA {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if srcWidth == 0 || srcHeight == 0 || config.Width <= 0 || config.Height <= 0 {
		return nil
	}

	width := min(config.Width, srcWidth)
	height := min(config.Height, srcHeight)

	preview := make([][]color.RGBA, height)
	for row := 0; row < height; row++ {
		preview[row] = make([]color.RGBA, width)
		y0 := row * srcHeight / height
		y1 := (row + 1) * srcHeight / height
		for col := 0; col < width; col++ {
			x0 := col * srcWidth / width
			x1 := (col + 1) * srcWidth / width

			var sumR, sumG, sumB uint32
			pixelCount := uint32(0)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					// RGBA() returns 16-bit values
					sumR += r >> 8
					sumG += g >> 8
					sumB += b >> 8
					pixelCount++
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / pixelCount),
					G: uint8(sumG / pixelCount),
					B: uint8(sumB / pixelCount),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview draws the grid with ANSI 24-bit background colours, one
// space per cell, framed under title.
func RenderPreview(preview [][]color.RGBA, title string) string {
	if len(preview) == 0 {
		return ""
	}

	var sb strings.Builder
	border := strings.Repeat("─", len(preview[0]))

	sb.WriteString("  " + title + ":\n")
	sb.WriteString("  ┌" + border + "┐\n")
	for _, row := range preview {
		sb.WriteString("  │")
		for _, pixel := range row {
			fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("  └" + border + "┘\n")

	return sb.String()
}
