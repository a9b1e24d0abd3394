// Package excellon serializes the board drill table into an Excellon
// drill file: a tool table followed by per-hole plunge commands.
package excellon

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

// UnsupportedSpanError reports a via layer span the drill format cannot
// express on this board's stack.
type UnsupportedSpanError struct {
	SpanStart int
	SpanEnd   int
	Entity    string
}

func (e *UnsupportedSpanError) Error() string {
	return fmt.Sprintf("excellon: layer span %d-%d of %s cannot be expressed", e.SpanStart, e.SpanEnd, e.Entity)
}

// toolKey identifies one tool group. Plated and non-plated holes are
// separate fabrication processes and never share a tool, even at equal
// diameter; blind/buried spans likewise get their own tool because each
// layer pair is a separate drill pass.
type toolKey struct {
	diameter  float64
	plated    bool
	spanStart int
	spanEnd   int
}

type hole struct {
	key      toolKey
	position board.Position
}

// Emit serializes the drill table of the board. Output is deterministic:
// tool numbers ascend by diameter, plated before non-plated at equal
// diameter, then by layer span; holes keep model order within a tool.
//
// Nothing is written to w unless the whole table serialized cleanly.
func Emit(b *board.Board, w io.Writer) error {
	layerCount := b.LayerCount()

	var holes []hole
	for i, via := range b.Vias() {
		entity := fmt.Sprintf("via %d at (%.2f, %.2f)", i+1, via.Position.X, via.Position.Y)
		if err := checkSpan(via, layerCount, entity); err != nil {
			return err
		}
		holes = append(holes, hole{
			key: toolKey{
				diameter:  via.Drill,
				plated:    via.Plated,
				spanStart: via.SpanStart,
				spanEnd:   via.SpanEnd,
			},
			position: via.Position,
		})
	}

	// Through-hole component pads are plated holes spanning the whole
	// stack.
	for _, fp := range b.Footprints() {
		for _, pad := range fp.Pads {
			if !pad.IsThroughHole() {
				continue
			}
			holes = append(holes, hole{
				key: toolKey{
					diameter:  pad.Drill,
					plated:    true,
					spanStart: 1,
					spanEnd:   layerCount,
				},
				position: fp.PadPosition(pad),
			})
		}
	}

	// Group holes into tools, preserving model order within each group.
	groups := make(map[toolKey][]board.Position)
	var keys []toolKey
	for _, h := range holes {
		if _, ok := groups[h.key]; !ok {
			keys = append(keys, h.key)
		}
		groups[h.key] = append(groups[h.key], h.position)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.diameter != b.diameter {
			return a.diameter < b.diameter
		}
		if a.plated != b.plated {
			return a.plated
		}
		if a.spanStart != b.spanStart {
			return a.spanStart < b.spanStart
		}
		return a.spanEnd < b.spanEnd
	})

	buf := new(bytes.Buffer)
	fmt.Fprintln(buf, "M48")
	fmt.Fprintf(buf, "; %s drill file\n", b.Name())
	fmt.Fprintf(buf, "; %d-layer stack\n", layerCount)
	fmt.Fprintln(buf, "FMAT,2")
	fmt.Fprintln(buf, "METRIC,TZ")

	for n, key := range keys {
		fmt.Fprintf(buf, "; T%d %s, %s, layer pair %d-%d\n",
			n+1, platingLabel(key.plated), spanLabel(key, layerCount), key.spanStart, key.spanEnd)
		span := board.Via{SpanStart: key.spanStart, SpanEnd: key.spanEnd}
		if !span.IsThrough(layerCount) {
			fmt.Fprintf(buf, "; Layer_id %d-%d\n", key.spanStart, key.spanEnd)
		}
		fmt.Fprintf(buf, "T%dC%.3f\n", n+1, key.diameter)
	}

	fmt.Fprintln(buf, "%")
	fmt.Fprintln(buf, "G90")

	for n, key := range keys {
		fmt.Fprintf(buf, "T%d\n", n+1)
		for _, p := range groups[key] {
			fmt.Fprintf(buf, "X%.3fY%.3f\n", p.X, p.Y)
		}
	}

	fmt.Fprintln(buf, "M30")

	_, err := w.Write(buf.Bytes())
	return err
}

// checkSpan rejects spans the format cannot express: anything but the
// through span on a 2-layer stack, and partial spans on non-plated
// holes (an unplated hole is always drilled through the whole board).
func checkSpan(v board.Via, layerCount int, entity string) error {
	if v.IsThrough(layerCount) {
		return nil
	}
	if layerCount <= 2 || !v.Plated {
		return &UnsupportedSpanError{SpanStart: v.SpanStart, SpanEnd: v.SpanEnd, Entity: entity}
	}
	return nil
}

func platingLabel(plated bool) string {
	if plated {
		return "plated"
	}
	return "non-plated"
}

func spanLabel(key toolKey, layerCount int) string {
	v := board.Via{SpanStart: key.spanStart, SpanEnd: key.spanEnd}
	switch {
	case v.IsThrough(layerCount):
		return "through"
	case v.IsBlind(layerCount):
		return "blind"
	default:
		return "buried"
	}
}
