package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderFrameLineCount(t *testing.T) {
	out := renderFrame(solid(64, 48, color.RGBA{R: 10, G: 20, B: 30, A: 255}), 40, 12)
	assert.Len(t, strings.Split(out, "\n"), 12)
}

func TestRenderFrameUsesHalfBlocks(t *testing.T) {
	out := renderFrame(solid(8, 8, color.RGBA{R: 255, A: 255}), 10, 5)
	assert.Contains(t, out, "▀")
	assert.Contains(t, out, "\x1b[38;2;255;0;0m")
	assert.Contains(t, out, "\x1b[48;2;255;0;0m")
}

func TestRenderFrameNilAndDegenerate(t *testing.T) {
	assert.Equal(t, "", renderFrame(nil, 10, 5))
	assert.Equal(t, "", renderFrame(solid(4, 4, color.RGBA{}), 0, 5))
	assert.Equal(t, "", renderFrame(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 5))
}

func TestRenderFrameUpscale(t *testing.T) {
	// A 2x2 source on a big grid exercises the bilinear path.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	out := renderFrame(img, 40, 20)
	assert.Len(t, strings.Split(out, "\n"), 20)
	assert.Contains(t, out, "▀")
}

func TestFitCellsPreservesAspect(t *testing.T) {
	// 100x50 source in an 80x40-cell area: width-bound, 80 cells wide and
	// 80*(50/100)/2 = 20 cells tall.
	w, h := fitCells(100, 50, 80, 40)
	assert.Equal(t, 80, w)
	assert.Equal(t, 20, h)

	// Tall source is height-bound.
	w, h = fitCells(50, 200, 80, 40)
	assert.Equal(t, 20, w)
	assert.Equal(t, 40, h)
}
