package kicad

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// tstampNamespace seeds the deterministic v5 UUIDs attached to emitted
// elements, so repeated runs reproduce the file byte-for-byte.
var tstampNamespace = uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a")

func tstamp(path string) string {
	return uuid.NewSHA1(tstampNamespace, []byte(path)).String()
}

// EmitPCB serializes the board into a .kicad_pcb s-expression file:
// header, layer table, net table, footprints with pads and net
// assignments, vias, and the edge-cuts outline. Reference designators
// and net names round-trip exactly (see ExtractPCB).
//
// Nothing is written to w unless the whole board serialized cleanly.
func EmitPCB(b *board.Board, w io.Writer) error {
	buf := new(bytes.Buffer)
	n := b.LayerCount()

	fmt.Fprintf(buf, "(kicad_pcb (version %d) (generator photonfab)\n", formatVersion)
	fmt.Fprintln(buf, "  (general")
	fmt.Fprintln(buf, "    (thickness 1.6)")
	fmt.Fprintln(buf, "  )")
	fmt.Fprintln(buf, "  (paper \"A3\")")

	fmt.Fprintln(buf, "  (layers")
	for _, layer := range b.Layers() {
		fmt.Fprintf(buf, "    (%d %q %s)\n", layerNumber(layer.Index, n), layerName(layer.Index, n), layerType(layer.Role))
	}
	fmt.Fprintf(buf, "    (%d \"Edge.Cuts\" user)\n", edgeCutsNumber)
	fmt.Fprintln(buf, "  )")

	fmt.Fprintln(buf, "  (setup")
	fmt.Fprintf(buf, "    (pad_to_mask_clearance 0.05)\n")
	fmt.Fprintf(buf, "    (grid_origin 0 0)\n")
	fmt.Fprintln(buf, "  )")

	// Net table: net 0 is KiCad's reserved unconnected net, the model's
	// nets follow in model order.
	netNumbers := make(map[string]int, len(b.Nets()))
	fmt.Fprintln(buf, "  (net 0 \"\")")
	for i, net := range b.Nets() {
		netNumbers[net.Name] = i + 1
		fmt.Fprintf(buf, "  (net %d %q)\n", i+1, net.Name)
	}

	for _, fp := range b.Footprints() {
		emitFootprint(buf, fp, netNumbers)
	}

	for i, via := range b.Vias() {
		fmt.Fprintf(buf, "  (via (at %g %g) (size %g) (drill %g) (layers %q %q) (net 0) (tstamp %s))\n",
			via.Position.X, via.Position.Y, via.Drill+0.3, via.Drill,
			layerName(via.SpanStart, n), layerName(via.SpanEnd, n),
			tstamp(fmt.Sprintf("via/%d", i)))
	}

	outline := b.Outline()
	for i := range outline {
		start := outline[i]
		end := outline[(i+1)%len(outline)]
		fmt.Fprintf(buf, "  (gr_line (start %g %g) (end %g %g) (layer \"Edge.Cuts\") (width 0.15) (tstamp %s))\n",
			start.X, start.Y, end.X, end.Y, tstamp(fmt.Sprintf("edge/%d", i)))
	}

	fmt.Fprintln(buf, ")")

	_, err := w.Write(buf.Bytes())
	return err
}

func emitFootprint(buf *bytes.Buffer, fp board.Footprint, netNumbers map[string]int) {
	rotation := normalizeRotation(fp.Rotation)

	fmt.Fprintf(buf, "  (footprint %q (layer %q)\n", "photonfab:"+fp.Part, sideLayer(fp.Side))
	fmt.Fprintf(buf, "    (tstamp %s)\n", tstamp("footprint/"+fp.Reference))
	if rotation != 0 {
		fmt.Fprintf(buf, "    (at %g %g %g)\n", fp.Position.X, fp.Position.Y, rotation)
	} else {
		fmt.Fprintf(buf, "    (at %g %g)\n", fp.Position.X, fp.Position.Y)
	}
	if fp.Description != "" {
		fmt.Fprintf(buf, "    (descr %q)\n", fp.Description)
	}
	fmt.Fprintln(buf, "    (attr smd)")
	fmt.Fprintf(buf, "    (fp_text reference %q (at 0 -2) (layer \"F.SilkS\")\n", fp.Reference)
	fmt.Fprintln(buf, "      (effects (font (size 1 1) (thickness 0.15)))")
	fmt.Fprintln(buf, "    )")
	fmt.Fprintf(buf, "    (fp_text value %q (at 0 2) (layer \"F.Fab\")\n", fp.Part)
	fmt.Fprintln(buf, "      (effects (font (size 1 1) (thickness 0.15)))")
	fmt.Fprintln(buf, "    )")

	for _, pad := range fp.Pads {
		// Net 0 is reserved for the unconnected net, so a pad naming a
		// net absent from the net table gets no net clause at all.
		netClause := ""
		if number, ok := netNumbers[pad.Net]; ok {
			netClause = fmt.Sprintf(" (net %d %q)", number, pad.Net)
		}
		if pad.IsThroughHole() {
			fmt.Fprintf(buf, "    (pad %q thru_hole %s (at %g %g) (size %g %g) (drill %g) (layers \"*.Cu\" \"*.Mask\")%s)\n",
				pad.Number, padShape(pad.Shape), pad.Offset.X, pad.Offset.Y,
				pad.Size.Width, pad.Size.Height, pad.Drill, netClause)
		} else {
			fmt.Fprintf(buf, "    (pad %q smd %s (at %g %g) (size %g %g) (layers %q \"F.Paste\" \"F.Mask\")%s)\n",
				pad.Number, padShape(pad.Shape), pad.Offset.X, pad.Offset.Y,
				pad.Size.Width, pad.Size.Height, sideLayer(fp.Side), netClause)
		}
	}

	fmt.Fprintln(buf, "  )")
}

// padShape maps model pad shapes to KiCad pad shape keywords.
func padShape(shape board.PadShape) string {
	switch shape {
	case board.ShapeRect:
		return "rect"
	case board.ShapeOval:
		return "oval"
	default:
		return "circle"
	}
}
