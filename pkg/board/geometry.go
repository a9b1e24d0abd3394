package board

import (
	"gonum.org/v1/gonum/floats"
)

// BoundingBox represents the axis-aligned extent of the board outline.
type BoundingBox struct {
	Min Position
	Max Position
}

// Width returns the horizontal extent in mm.
func (bb BoundingBox) Width() float64 { return bb.Max.X - bb.Min.X }

// Height returns the vertical extent in mm.
func (bb BoundingBox) Height() float64 { return bb.Max.Y - bb.Min.Y }

// Contains checks if a position is within the bounding box.
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// outlineBounds computes the bounding box of an outline polygon.
func outlineBounds(outline []Position) BoundingBox {
	bb := BoundingBox{Min: outline[0], Max: outline[0]}
	for _, p := range outline[1:] {
		if p.X < bb.Min.X {
			bb.Min.X = p.X
		}
		if p.Y < bb.Min.Y {
			bb.Min.Y = p.Y
		}
		if p.X > bb.Max.X {
			bb.Max.X = p.X
		}
		if p.Y > bb.Max.Y {
			bb.Max.Y = p.Y
		}
	}
	return bb
}

// polygonArea computes the signed shoelace area of a closed polygon.
func polygonArea(outline []Position) float64 {
	cross := make([]float64, len(outline))
	for i := range outline {
		j := (i + 1) % len(outline)
		cross[i] = outline[i].X*outline[j].Y - outline[j].X*outline[i].Y
	}
	return floats.Sum(cross) / 2
}

// segmentsIntersect reports whether segments p1-p2 and p3-p4 properly
// intersect. Shared endpoints between adjacent outline segments are
// handled by the caller.
func segmentsIntersect(p1, p2, p3, p4 Position) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func direction(a, b, c Position) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// outlineSelfIntersects checks every non-adjacent segment pair of the
// closed outline polygon for a proper crossing.
func outlineSelfIntersects(outline []Position) bool {
	n := len(outline)
	for i := 0; i < n; i++ {
		a1 := outline[i]
		a2 := outline[(i+1)%n]
		for j := i + 2; j < n; j++ {
			// Skip the segment adjacent on the wrap-around side.
			if i == 0 && j == n-1 {
				continue
			}
			b1 := outline[j]
			b2 := outline[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}
