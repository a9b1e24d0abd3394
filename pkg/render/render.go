// Package render produces a raster preview of a board model. It is a
// read-only consumer of the model and sits outside the manufacturing
// emitters' correctness surface.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// Options controls the preview rendering.
type Options struct {
	Scale      float64 // Pixels per millimeter (default 8)
	Margin     int     // Border in pixels (default 16)
	ShowLabels bool    // Draw reference designators
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.Margin <= 0 {
		o.Margin = 16
	}
	return o
}

// Render draws a top-down preview of the board: substrate, pads, via
// rings, and optionally reference designator labels.
func Render(b *board.Board, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	bounds := b.Bounds()

	width := int(math.Ceil(bounds.Width()*opts.Scale)) + 2*opts.Margin
	height := int(math.Ceil(bounds.Height()*opts.Scale)) + 2*opts.Margin
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	fill(img, img.Bounds(), colorBackground)

	toPixel := func(p board.Position) image.Point {
		return image.Point{
			X: opts.Margin + int(math.Round((p.X-bounds.Min.X)*opts.Scale)),
			// Board Y grows upward, image Y grows downward.
			Y: height - opts.Margin - int(math.Round((p.Y-bounds.Min.Y)*opts.Scale)),
		}
	}

	fillPolygon(img, b.Outline(), toPixel, colorSubstrate)

	for _, fp := range b.Footprints() {
		cu := copperColor(fp.Side == board.SideBottom)
		for _, pad := range fp.Pads {
			center := toPixel(fp.PadPosition(pad))
			w := int(math.Max(2, pad.Size.Width*opts.Scale))
			h := int(math.Max(2, pad.Size.Height*opts.Scale))
			if pad.Shape == board.ShapeCircle {
				fillCircle(img, center, w/2, cu)
			} else {
				fill(img, image.Rect(center.X-w/2, center.Y-h/2, center.X+w/2, center.Y+h/2), cu)
			}
		}
	}

	for _, via := range b.Vias() {
		center := toPixel(via.Position)
		r := int(math.Max(2, via.Drill*opts.Scale/2))
		fillCircle(img, center, r, colorVia)
		fillCircle(img, center, r/2, colorBackground)
	}

	if opts.ShowLabels {
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colorLabel),
			Face: basicfont.Face7x13,
		}
		for _, fp := range b.Footprints() {
			at := toPixel(fp.Position)
			drawer.Dot = fixed.P(at.X+3, at.Y-3)
			drawer.DrawString(fp.Reference)
		}
	}

	return img
}

// WritePNG renders the board and encodes the preview as PNG.
func WritePNG(b *board.Board, opts Options, w io.Writer) error {
	return png.Encode(w, Render(b, opts))
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, center image.Point, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(center.X+dx, center.Y+dy, c)
			}
		}
	}
}

// fillPolygon rasterizes the outline with an even-odd scanline fill.
func fillPolygon(img *image.RGBA, outline []board.Position, toPixel func(board.Position) image.Point, c color.RGBA) {
	pts := make([]image.Point, len(outline))
	for i, p := range outline {
		pts[i] = toPixel(p)
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		var xs []int
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				t := float64(y-a.Y) / float64(b.Y-a.Y)
				xs = append(xs, a.X+int(t*float64(b.X-a.X)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			lo, hi := xs[i], xs[i+1]
			if lo > hi {
				lo, hi = hi, lo
			}
			for x := lo; x <= hi; x++ {
				img.Set(x, y, c)
			}
		}
	}
}
