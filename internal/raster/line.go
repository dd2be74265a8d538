// Package raster implements the 2D teaching algorithms of the demo:
// Bresenham line rasterization and scan-line polygon fill. Both produce
// pixel lists; Draw helpers paint them into an image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// Line rasterizes the segment (x0,y0)-(x1,y1) with Bresenham's algorithm,
// covering all octants by splitting into low-slope and high-slope cases.
func Line(x0, y0, x1, y1 int) []image.Point {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	if dy <= dx {
		if x0 > x1 {
			x0, x1 = x1, x0
			y0, y1 = y1, y0
		}
		return lineLowSlope(x0, y0, x1, y1)
	}
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	return lineHighSlope(x0, y0, x1, y1)
}

// lineLowSlope handles |slope| <= 1 with x as the driving axis.
func lineLowSlope(x0, y0, x1, y1 int) []image.Point {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}

	pixels := make([]image.Point, 0, dx+1)
	err := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		pixels = append(pixels, image.Point{X: x, Y: y})
		if err > 0 {
			y += yi
			err -= 2 * dx
		}
		err += 2 * dy
	}
	return pixels
}

// lineHighSlope handles |slope| > 1 with y as the driving axis.
func lineHighSlope(x0, y0, x1, y1 int) []image.Point {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}

	pixels := make([]image.Point, 0, dy+1)
	err := 2*dx - dy
	x := x0
	for y := y0; y <= y1; y++ {
		pixels = append(pixels, image.Point{X: x, Y: y})
		if err > 0 {
			x += xi
			err -= 2 * dy
		}
		err += 2 * dx
	}
	return pixels
}

// DrawPixels paints a pixel list into dst, dropping out-of-bounds points.
func DrawPixels(dst draw.Image, pixels []image.Point, c color.Color) {
	bounds := dst.Bounds()
	for _, p := range pixels {
		if p.In(bounds) {
			dst.Set(p.X, p.Y, c)
		}
	}
}

// DrawLine rasterizes and paints a segment in one call.
func DrawLine(dst draw.Image, x0, y0, x1, y1 int, c color.Color) {
	DrawPixels(dst, Line(x0, y0, x1, y1), c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
