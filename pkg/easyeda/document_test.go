package easyeda

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/LightRailLabs/photonfab/pkg/board"
)

func testBoard(t *testing.T, mutate func(*board.Description)) *board.Board {
	t.Helper()
	desc := board.Description{
		Name: "tfln_modulator",
		Outline: []board.Position{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 80}, {X: 0, Y: 80},
		},
		Layers: []board.Layer{
			{Index: 1, Name: "L1_Top_RF", Role: board.RoleSignal},
			{Index: 2, Name: "L2_GND", Role: board.RoleGround},
			{Index: 3, Name: "L3_Bottom", Role: board.RoleSignal},
		},
		Footprints: []board.Footprint{
			{
				Reference: "U1", Part: "TFLN-MZM-400G-C", Side: board.SideTop,
				Position: board.Position{X: 50, Y: 40},
				Pads: []board.Pad{
					{Number: "1", Offset: board.Position{X: -2, Y: 0}, Shape: board.ShapeRect, Size: board.Size{Width: 0.6, Height: 1.2}, Net: "MZM_BIAS"},
					{Number: "2", Offset: board.Position{X: 2, Y: 0}, Shape: board.ShapeRect, Size: board.Size{Width: 0.6, Height: 1.2}, Net: "GND"},
				},
			},
			{
				Reference: "U2", Part: "TLN-1550-100", Side: board.SideTop,
				Position: board.Position{X: 25, Y: 30},
				Pads: []board.Pad{
					{Number: "1", Shape: board.ShapeCircle, Size: board.Size{Width: 1, Height: 1}, Drill: 0.5, Net: "GND"},
				},
			},
		},
		Nets: []board.Net{
			{Name: "GND", Pads: []board.PadRef{{Reference: "U1", Pad: "2"}, {Reference: "U2", Pad: "1"}}, Layers: []int{1}, TraceWidth: 0.3},
			{Name: "MZM_BIAS", Pads: []board.PadRef{{Reference: "U1", Pad: "1"}}, Layers: []int{1}, TraceWidth: 0.25},
		},
		MinTrackWidth: 0.2,
		MinDrillSize:  0.25,
	}
	if mutate != nil {
		mutate(&desc)
	}
	b, err := board.New(desc)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	return b
}

func TestEmitValidDocument(t *testing.T) {
	b := testBoard(t, nil)

	var buf bytes.Buffer
	if err := Emit(b, &buf); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("emitted document is not valid JSON: %v", err)
	}

	if doc.Head.DocType != "5" {
		t.Errorf("head.docType = %q, want 5", doc.Head.DocType)
	}
	if doc.Head.Title != "tfln_modulator" {
		t.Errorf("head.title = %q", doc.Head.Title)
	}
	if len(doc.Layers) != 3 {
		t.Errorf("layers = %d entries, want 3", len(doc.Layers))
	}

	var refs []string
	for ref := range doc.Footprints {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	if diff := cmp.Diff([]string{"U1", "U2"}, refs); diff != "" {
		t.Errorf("footprint references (-want +got):\n%s", diff)
	}

	// Net pads keep connection order.
	if diff := cmp.Diff([]string{"U1.2", "U2.1"}, doc.Nets["GND"]); diff != "" {
		t.Errorf("GND pads (-want +got):\n%s", diff)
	}

	// Coordinates stay in mm, no mil conversion: U1 sits at 50,40.
	if got := doc.Footprints["U1"]; got.X != 50 || got.Y != 40 {
		t.Errorf("U1 placement = (%v, %v), want (50, 40)", got.X, got.Y)
	}
}

func TestEmitDeterministic(t *testing.T) {
	b := testBoard(t, nil)

	var first, second bytes.Buffer
	if err := Emit(b, &first); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := Emit(b, &second); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("repeated emission is not byte-identical")
	}
}

func TestSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*board.Description)
		wantKey string
	}{
		{
			name: "footprint without package",
			mutate: func(d *board.Description) {
				d.Footprints[0].Part = ""
			},
			wantKey: "package",
		},
		{
			name: "pad without number",
			mutate: func(d *board.Description) {
				d.Footprints[1].Pads[0].Number = ""
				d.Nets[0].Pads = d.Nets[0].Pads[:1]
			},
			wantKey: "pads.number",
		},
		{
			name: "pad without size",
			mutate: func(d *board.Description) {
				d.Footprints[0].Pads[0].Size = board.Size{}
			},
			wantKey: "pads.size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard(t, tt.mutate)

			var buf bytes.Buffer
			err := Emit(b, &buf)

			var serr *SchemaError
			if !errors.As(err, &serr) {
				t.Fatalf("Emit error = %v, want *SchemaError", err)
			}
			if serr.Key != tt.wantKey {
				t.Errorf("error key = %q, want %q", serr.Key, tt.wantKey)
			}
			if buf.Len() != 0 {
				t.Error("failed emission wrote a partial document")
			}
		})
	}
}
