package ui

import (
	"fmt"
	"image"
	"strings"
)

// renderFrame draws img into a grid of width x height terminal cells using
// half-block characters, two source rows per cell. Aspect ratio is preserved
// and the result is centered in the grid. Downscaling samples nearest
// neighbor for speed; upscaling interpolates bilinearly so stepped frames
// don't look blocky on large terminals.
func renderFrame(img image.Image, width, height int) string {
	if img == nil || width < 1 || height < 1 {
		return ""
	}
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	// Fit the source into width cells x height*2 pixel rows.
	cellsW, cellsH := fitCells(srcW, srcH, width, height)
	pxH := cellsH * 2

	scaleDown := cellsW <= srcW && pxH <= srcH

	padLeft := (width - cellsW) / 2
	padTop := (height - cellsH) / 2
	pad := strings.Repeat(" ", padLeft)

	lines := make([]string, height)
	for cy := 0; cy < cellsH; cy++ {
		var sb strings.Builder
		sb.WriteString(pad)
		for cx := 0; cx < cellsW; cx++ {
			var tr, tg, tb, br, bg, bb uint8
			if scaleDown {
				tr, tg, tb = sampleNearest(img, cx, cy*2, cellsW, pxH, srcW, srcH)
				br, bg, bb = sampleNearest(img, cx, cy*2+1, cellsW, pxH, srcW, srcH)
			} else {
				tr, tg, tb = sampleBilinear(img, cx, cy*2, cellsW, pxH, srcW, srcH)
				br, bg, bb = sampleBilinear(img, cx, cy*2+1, cellsW, pxH, srcW, srcH)
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m")
		lines[padTop+cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// fitCells computes the largest cell grid with the source's aspect ratio
// that fits in maxW x maxH cells, treating a cell as 1x2 pixels.
func fitCells(srcW, srcH, maxW, maxH int) (int, int) {
	maxPxH := maxH * 2
	w := maxW
	h := srcH * w / srcW
	if h > maxPxH {
		h = maxPxH
		w = srcW * h / srcH
	}
	if w < 1 {
		w = 1
	}
	cells := h / 2
	if cells < 1 {
		cells = 1
	}
	return w, cells
}

// sampleNearest maps a target pixel to the closest source pixel.
func sampleNearest(img image.Image, tx, ty, tw, th, srcW, srcH int) (uint8, uint8, uint8) {
	sx := tx * srcW / tw
	sy := ty * srcH / th
	if sx >= srcW {
		sx = srcW - 1
	}
	if sy >= srcH {
		sy = srcH - 1
	}
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X+sx, b.Min.Y+sy).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)
}

// sampleBilinear interpolates the four source pixels around the mapped
// coordinate, per channel.
func sampleBilinear(img image.Image, tx, ty, tw, th, srcW, srcH int) (uint8, uint8, uint8) {
	fx := float64(tx) * float64(srcW) / float64(tw)
	fy := float64(ty) * float64(srcH) / float64(th)

	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x0 >= srcW {
		x0 = srcW - 1
	}
	if y0 >= srcH {
		y0 = srcH - 1
	}
	if x1 >= srcW {
		x1 = srcW - 1
	}
	if y1 >= srcH {
		y1 = srcH - 1
	}
	wx := fx - float64(x0)
	wy := fy - float64(y0)

	b := img.Bounds()
	at := func(x, y int) (float64, float64, float64) {
		r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return float64(r >> 8), float64(g >> 8), float64(bl >> 8)
	}
	r00, g00, b00 := at(x0, y0)
	r10, g10, b10 := at(x1, y0)
	r01, g01, b01 := at(x0, y1)
	r11, g11, b11 := at(x1, y1)

	lerp2 := func(v00, v10, v01, v11 float64) uint8 {
		return uint8(v00*(1-wx)*(1-wy) + v10*wx*(1-wy) + v01*(1-wx)*wy + v11*wx*wy)
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11), lerp2(b00, b10, b01, b11)
}
