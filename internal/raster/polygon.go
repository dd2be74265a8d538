package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"
)

// edge is one row of the polygon-fill edge table.
type edge struct {
	yMin     int
	yMax     int
	xOfYMin  float64
	invSlope float64
}

// FillPolygon scan-converts a polygon given as an ordered vertex loop. It
// builds an edge table, walks scan lines from the lowest to the highest y,
// maintains an active edge list sorted by x and fills between edge pairs
// (even-odd rule). Fewer than three vertices yields no pixels.
func FillPolygon(verts []image.Point) []image.Point {
	if len(verts) < 3 {
		return nil
	}

	edges := buildEdgeTable(verts)
	if len(edges) == 0 {
		return nil
	}

	minY, maxY := edges[0].yMin, edges[0].yMax
	for _, e := range edges[1:] {
		if e.yMin < minY {
			minY = e.yMin
		}
		if e.yMax > maxY {
			maxY = e.yMax
		}
	}

	var pixels []image.Point
	var active []edge

	for y := minY; y <= maxY; y++ {
		// Retire edges that ended at this scan line.
		kept := active[:0]
		for _, e := range active {
			if y < e.yMax {
				kept = append(kept, e)
			}
		}
		active = kept

		// Activate edges starting here.
		for _, e := range edges {
			if e.yMin == y {
				active = append(active, e)
			}
		}

		sort.Slice(active, func(i, j int) bool {
			return active[i].xOfYMin < active[j].xOfYMin
		})

		for i := 0; i+1 < len(active); i += 2 {
			startX := int(math.Round(active[i].xOfYMin))
			endX := int(math.Round(active[i+1].xOfYMin))
			for x := startX; x <= endX; x++ {
				pixels = append(pixels, image.Point{X: x, Y: y})
			}
		}

		for i := range active {
			active[i].xOfYMin += active[i].invSlope
		}
	}

	return pixels
}

// buildEdgeTable converts the vertex loop into edge records, skipping
// horizontal edges (they are filled by the spans of their neighbors).
func buildEdgeTable(verts []image.Point) []edge {
	var edges []edge
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		if a.Y == b.Y {
			continue
		}
		if a.Y > b.Y {
			a, b = b, a
		}
		edges = append(edges, edge{
			yMin:     a.Y,
			yMax:     b.Y,
			xOfYMin:  float64(a.X),
			invSlope: float64(b.X-a.X) / float64(b.Y-a.Y),
		})
	}
	return edges
}

// DrawPolygon fills a polygon directly into dst.
func DrawPolygon(dst draw.Image, verts []image.Point, c color.Color) {
	DrawPixels(dst, FillPolygon(verts), c)
}
