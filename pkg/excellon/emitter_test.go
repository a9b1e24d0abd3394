package excellon

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

func buildBoard(t *testing.T, desc board.Description) *board.Board {
	t.Helper()
	b, err := board.New(desc)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	return b
}

func twelveLayerStack() []board.Layer {
	layers := make([]board.Layer, 12)
	for i := range layers {
		role := board.RoleSignal
		if i%3 == 1 {
			role = board.RoleGround
		}
		if i == 0 || i == 11 {
			role = board.RoleSignal
		}
		layers[i] = board.Layer{Index: i + 1, Name: "L", Role: role}
	}
	return layers
}

func TestEmitIdempotent(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Vias: []board.Via{
			{Position: board.Position{X: 10, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 20, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 2},
			{Position: board.Position{X: 30, Y: 10}, Drill: 3.2, Plated: false, SpanStart: 1, SpanEnd: 12},
		},
		MinDrillSize: 0.2,
	})

	var first, second bytes.Buffer
	if err := Emit(b, &first); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := Emit(b, &second); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("repeated drill emission is not byte-identical")
	}
}

func TestBlindViaSeparateToolGroup(t *testing.T) {
	// A blind via spanning 1-2 must not share a tool with a through via
	// of the same diameter.
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Vias: []board.Via{
			{Position: board.Position{X: 10, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 20, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 2},
		},
		MinDrillSize: 0.2,
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "T1C0.300") || !strings.Contains(out, "T2C0.300") {
		t.Fatalf("expected two 0.3mm tools, got:\n%s", out)
	}
	if !strings.Contains(out, "blind, layer pair 1-2") {
		t.Errorf("blind via tool not annotated with its layer pair:\n%s", out)
	}
	if !strings.Contains(out, "through, layer pair 1-12") {
		t.Errorf("through via tool not annotated:\n%s", out)
	}
}

func TestPartialSpanLayerIDHeader(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Vias: []board.Via{
			{Position: board.Position{X: 10, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 20, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 2},
			{Position: board.Position{X: 30, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 3, SpanEnd: 5},
		},
		MinDrillSize: 0.2,
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "; Layer_id 1-2") {
		t.Errorf("blind tool missing its Layer_id header line:\n%s", out)
	}
	if !strings.Contains(out, "; Layer_id 3-5") {
		t.Errorf("buried tool missing its Layer_id header line:\n%s", out)
	}
	if strings.Contains(out, "; Layer_id 1-12") {
		t.Errorf("through tool must not carry a Layer_id header line:\n%s", out)
	}
}

func TestPlatedNonPlatedSegregated(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Vias: []board.Via{
			{Position: board.Position{X: 10, Y: 10}, Drill: 1.0, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 20, Y: 10}, Drill: 1.0, Plated: false, SpanStart: 1, SpanEnd: 12},
		},
		MinDrillSize: 0.2,
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	// Equal diameter but two tools, plated first.
	t1 := strings.Index(out, "; T1 plated")
	t2 := strings.Index(out, "; T2 non-plated")
	if t1 < 0 || t2 < 0 || t2 < t1 {
		t.Errorf("plated/non-plated not segregated into ordered tool groups:\n%s", out)
	}
}

func TestToolOrderAscendingDiameter(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Vias: []board.Via{
			{Position: board.Position{X: 10, Y: 10}, Drill: 3.2, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 20, Y: 10}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 12},
			{Position: board.Position{X: 30, Y: 10}, Drill: 1.0, Plated: true, SpanStart: 1, SpanEnd: 12},
		},
		MinDrillSize: 0.2,
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	i1 := strings.Index(out, "T1C0.300")
	i2 := strings.Index(out, "T2C1.000")
	i3 := strings.Index(out, "T3C3.200")
	if i1 < 0 || i2 < 0 || i3 < 0 || !(i1 < i2 && i2 < i3) {
		t.Errorf("tools not in ascending diameter order:\n%s", out)
	}
}

func TestThroughHolePadsIncluded(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "tfln",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
		Layers:  twelveLayerStack(),
		Footprints: []board.Footprint{
			{
				Reference: "J1", Part: "2013289-6", Side: board.SideTop,
				Position: board.Position{X: 25, Y: 25},
				Pads: []board.Pad{
					{Number: "1", Shape: board.ShapeCircle, Size: board.Size{Width: 1.5, Height: 1.5}, Drill: 0.8},
				},
			},
		},
		MinDrillSize: 0.2,
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "T1C0.800") {
		t.Errorf("through-hole pad drill missing from tool table:\n%s", out)
	}
	if !strings.Contains(out, "X25.000Y25.000") {
		t.Errorf("through-hole pad plunge missing:\n%s", out)
	}
}

func TestEmptyDrillTableWellFormed(t *testing.T) {
	b := buildBoard(t, board.Description{
		Name:    "bare",
		Outline: []board.Position{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Layers: []board.Layer{
			{Index: 1, Name: "top", Role: board.RoleSignal},
			{Index: 2, Name: "bottom", Role: board.RoleSignal},
		},
	})

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit on empty drill table: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "M48\n") || !strings.Contains(out, "M30") {
		t.Errorf("empty drill file not well-formed:\n%s", out)
	}
}

func TestUnsupportedSpan(t *testing.T) {
	tests := []struct {
		name string
		via  board.Via
	}{
		{
			name: "non-plated blind hole",
			via:  board.Via{Position: board.Position{X: 10, Y: 10}, Drill: 0.5, Plated: false, SpanStart: 1, SpanEnd: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buildBoard(t, board.Description{
				Name:         "tfln",
				Outline:      []board.Position{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}},
				Layers:       twelveLayerStack(),
				Vias:         []board.Via{tt.via},
				MinDrillSize: 0.2,
			})

			var buf bytes.Buffer
			err := Emit(b, &buf)

			var serr *UnsupportedSpanError
			if !errors.As(err, &serr) {
				t.Fatalf("Emit error = %v, want *UnsupportedSpanError", err)
			}
			if buf.Len() != 0 {
				t.Error("failed emission wrote a partial file")
			}
		})
	}
}
