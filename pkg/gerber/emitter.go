package gerber

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// traceOp is a polyline draw with an assigned aperture.
type traceOp struct {
	code   int
	points []board.Position
}

// flashOp is a single pad flash with an assigned aperture.
type flashOp struct {
	code     int
	position board.Position
}

// Emit serializes one copper layer of the board into an RS-274X stream.
// The output is self-describing (aperture definitions precede first use)
// and byte-for-byte reproducible for a fixed model: apertures are
// assigned in first-seen order of distinct (shape, size) pairs. A layer
// with no geometry still produces a well-formed header + EOF stream.
//
// Nothing is written to w unless the whole layer serialized cleanly.
func Emit(b *board.Board, layerIndex int, w io.Writer) error {
	layer, ok := b.Layer(layerIndex)
	if !ok {
		return fmt.Errorf("gerber: board has no layer %d", layerIndex)
	}

	table := newApertureTable()
	var traces []traceOp
	var flashes []flashOp

	// Trace segments for nets routed on this layer, pad to pad in
	// connection order.
	for _, net := range b.Nets() {
		if !containsLayer(net.Layers, layerIndex) || len(net.Pads) < 2 {
			continue
		}
		code := table.circle(net.TraceWidth)
		points := make([]board.Position, 0, len(net.Pads))
		for _, ref := range net.Pads {
			fp, _ := b.Footprint(ref.Reference)
			pad, _ := fp.FindPad(ref.Pad)
			points = append(points, fp.PadPosition(pad))
		}
		traces = append(traces, traceOp{code: code, points: points})
	}

	// Pad flashes visible on this layer.
	for _, fp := range b.Footprints() {
		for _, pad := range fp.Pads {
			if !padOnLayer(fp, pad, layerIndex, b.LayerCount()) {
				continue
			}
			entity := fmt.Sprintf("footprint %q pad %q", fp.Reference, pad.Number)
			code, err := table.pad(pad, entity)
			if err != nil {
				return err
			}
			flashes = append(flashes, flashOp{code: code, position: fp.PadPosition(pad)})
		}
	}

	buf := new(bytes.Buffer)
	writeHeader(buf, b, fmt.Sprintf("Layer %d: %s (%s)", layer.Index, layer.Name, layer.Role))

	for _, ap := range table.apertures() {
		fmt.Fprintln(buf, ap.Definition())
	}

	fmt.Fprintln(buf, "G01*")

	current := 0
	for _, tr := range traces {
		current = selectAperture(buf, current, tr.code)
		fmt.Fprintf(buf, "X%dY%dD02*\n", coord(tr.points[0].X), coord(tr.points[0].Y))
		for _, p := range tr.points[1:] {
			fmt.Fprintf(buf, "X%dY%dD01*\n", coord(p.X), coord(p.Y))
		}
	}
	for _, fl := range flashes {
		current = selectAperture(buf, current, fl.code)
		fmt.Fprintf(buf, "X%dY%dD03*\n", coord(fl.position.X), coord(fl.position.Y))
	}

	// Reference planes are emitted as a region fill of the board outline.
	if layer.Role.IsPlane() {
		writeRegion(buf, b.Outline())
	}

	fmt.Fprintln(buf, "M02*")

	_, err := w.Write(buf.Bytes())
	return err
}

// EmitOutline serializes the board outline (edge cuts) layer.
func EmitOutline(b *board.Board, w io.Writer) error {
	buf := new(bytes.Buffer)
	writeHeader(buf, b, "Board Outline")

	table := newApertureTable()
	code := table.circle(0.15)
	for _, ap := range table.apertures() {
		fmt.Fprintln(buf, ap.Definition())
	}

	fmt.Fprintln(buf, "G01*")
	fmt.Fprintf(buf, "D%d*\n", code)

	outline := b.Outline()
	fmt.Fprintf(buf, "X%dY%dD02*\n", coord(outline[0].X), coord(outline[0].Y))
	for _, p := range outline[1:] {
		fmt.Fprintf(buf, "X%dY%dD01*\n", coord(p.X), coord(p.Y))
	}
	fmt.Fprintf(buf, "X%dY%dD01*\n", coord(outline[0].X), coord(outline[0].Y))

	fmt.Fprintln(buf, "M02*")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeHeader(buf *bytes.Buffer, b *board.Board, title string) {
	fmt.Fprintf(buf, "G04 %s - %s*\n", b.Name(), title)
	fmt.Fprintln(buf, "G04 Generated by photonfab*")
	buf.WriteString("%FSLAX46Y46*%\n")
	buf.WriteString("%MOMM*%\n")
	buf.WriteString("%LPD*%\n")
}

func writeRegion(buf *bytes.Buffer, outline []board.Position) {
	fmt.Fprintln(buf, "G36*")
	fmt.Fprintf(buf, "X%dY%dD02*\n", coord(outline[0].X), coord(outline[0].Y))
	for _, p := range outline[1:] {
		fmt.Fprintf(buf, "X%dY%dD01*\n", coord(p.X), coord(p.Y))
	}
	fmt.Fprintf(buf, "X%dY%dD01*\n", coord(outline[0].X), coord(outline[0].Y))
	fmt.Fprintln(buf, "G37*")
}

func selectAperture(buf *bytes.Buffer, current, code int) int {
	if code != current {
		fmt.Fprintf(buf, "D%d*\n", code)
	}
	return code
}

// coord converts millimeters to 4.6 format Gerber units.
func coord(mm float64) int64 {
	return int64(math.Round(mm * 1e6))
}

func containsLayer(layers []int, index int) bool {
	for _, l := range layers {
		if l == index {
			return true
		}
	}
	return false
}

// padOnLayer decides whether a pad produces copper on the given layer:
// through-hole pads appear on every copper layer, SMD pads only on the
// outer layer of their footprint's side.
func padOnLayer(fp board.Footprint, pad board.Pad, layerIndex, layerCount int) bool {
	if pad.IsThroughHole() {
		return true
	}
	if fp.Side == board.SideBottom {
		return layerIndex == layerCount
	}
	return layerIndex == 1
}
