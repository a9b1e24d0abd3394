package board

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// testDescription returns a small but complete 4-layer description that
// passes validation. Tests mutate a copy of it to trigger specific
// failures.
func testDescription() Description {
	return Description{
		Name: "tfln_modulator",
		Outline: []Position{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 80}, {X: 0, Y: 80},
		},
		Layers: []Layer{
			{Index: 1, Name: "L1_Top_RF", Role: RoleSignal, Material: "Rogers 4350B", Impedance: 50, CopperWeightOz: 1},
			{Index: 2, Name: "L2_GND", Role: RoleGround, Material: "FR4", CopperWeightOz: 0.5},
			{Index: 3, Name: "L3_PWR", Role: RolePower, Material: "FR4", CopperWeightOz: 0.5},
			{Index: 4, Name: "L4_Bottom", Role: RoleMixed, Material: "FR4", CopperWeightOz: 1},
		},
		Footprints: []Footprint{
			{
				Reference: "U1", Part: "TFLN-MZM-400G-C",
				Description: "TFLN Mach-Zehnder modulator", Manufacturer: "LightRail",
				Position: Position{X: 50, Y: 40}, Side: SideTop,
				Pads: []Pad{
					{Number: "1", Offset: Position{X: -2, Y: 0}, Shape: ShapeRect, Size: Size{Width: 0.6, Height: 1.2}, Net: "MZM_BIAS"},
					{Number: "2", Offset: Position{X: 2, Y: 0}, Shape: ShapeRect, Size: Size{Width: 0.6, Height: 1.2}, Net: "GND"},
				},
			},
			{
				Reference: "U2", Part: "TLN-1550-100",
				Description: "DFB laser diode", Manufacturer: "Lumentum",
				Position: Position{X: 25, Y: 30}, Side: SideTop,
				Pads: []Pad{
					{Number: "1", Offset: Position{X: 0, Y: -1}, Shape: ShapeCircle, Size: Size{Width: 1, Height: 1}, Drill: 0.5, Net: "GND"},
					{Number: "2", Offset: Position{X: 0, Y: 1}, Shape: ShapeCircle, Size: Size{Width: 1, Height: 1}, Drill: 0.5, Net: "LASER_EN"},
				},
			},
		},
		Nets: []Net{
			{Name: "GND", Pads: []PadRef{{"U1", "2"}, {"U2", "1"}}, Layers: []int{1, 2}, TraceWidth: 0.3, Clearance: 0.2},
			{Name: "MZM_BIAS", Pads: []PadRef{{"U1", "1"}}, Layers: []int{1}, TraceWidth: 0.25, Clearance: 0.2},
			{Name: "LASER_EN", Pads: []PadRef{{"U2", "2"}}, Layers: []int{1}, TraceWidth: 0.25, Clearance: 0.2},
		},
		Vias: []Via{
			{Position: Position{X: 40, Y: 40}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 4},
			{Position: Position{X: 45, Y: 40}, Drill: 0.3, Plated: true, SpanStart: 1, SpanEnd: 2},
			{Position: Position{X: 10, Y: 70}, Drill: 3.2, Plated: false, SpanStart: 1, SpanEnd: 4},
		},
		MinTrackWidth: 0.2,
		MinDrillSize:  0.25,
	}
}

func TestNewValidBoard(t *testing.T) {
	b, err := New(testDescription())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if b.LayerCount() != 4 {
		t.Errorf("LayerCount() = %d, want 4", b.LayerCount())
	}
	if got := b.Size(); got.Width != 100 || got.Height != 80 {
		t.Errorf("Size() = %+v, want 100x80", got)
	}
	if _, ok := b.Footprint("U1"); !ok {
		t.Error("Footprint(U1) not found")
	}
	if _, ok := b.Footprint("U9"); ok {
		t.Error("Footprint(U9) should not exist")
	}
	layer, ok := b.Layer(2)
	if !ok || layer.Role != RoleGround {
		t.Errorf("Layer(2) = %+v, %v; want ground layer", layer, ok)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Description)
		wantEntity string
	}{
		{
			name: "duplicate layer index",
			mutate: func(d *Description) {
				d.Layers[2].Index = 2
			},
			wantEntity: "layer 2",
		},
		{
			name: "non-contiguous layer indices",
			mutate: func(d *Description) {
				d.Layers[3].Index = 6
			},
			wantEntity: "layer 6",
		},
		{
			name: "outer layer must be signal or mixed",
			mutate: func(d *Description) {
				d.Layers[0].Role = RoleGround
			},
			wantEntity: "layer 1",
		},
		{
			name: "duplicate reference designator",
			mutate: func(d *Description) {
				d.Footprints[1].Reference = "U1"
			},
			wantEntity: `footprint "U1"`,
		},
		{
			name: "net references missing footprint",
			mutate: func(d *Description) {
				d.Nets[0].Pads = append(d.Nets[0].Pads, PadRef{"U7", "1"})
			},
			wantEntity: `net "GND"`,
		},
		{
			name: "net references missing pad",
			mutate: func(d *Description) {
				d.Nets[1].Pads = []PadRef{{"U1", "99"}}
			},
			wantEntity: `net "MZM_BIAS"`,
		},
		{
			name: "trace width below minimum",
			mutate: func(d *Description) {
				d.Nets[2].TraceWidth = 0.05
			},
			wantEntity: `net "LASER_EN"`,
		},
		{
			name: "via drill below minimum",
			mutate: func(d *Description) {
				d.Vias[1].Drill = 0.1
			},
			wantEntity: "via 2 at (45.00, 40.00)",
		},
		{
			name: "via span outside stack",
			mutate: func(d *Description) {
				d.Vias[0].SpanEnd = 9
			},
			wantEntity: "via 1",
		},
		{
			name: "via outside outline",
			mutate: func(d *Description) {
				d.Vias[0].Position = Position{X: 500, Y: 40}
			},
			wantEntity: "via 1",
		},
		{
			name: "outline too few points",
			mutate: func(d *Description) {
				d.Outline = d.Outline[:2]
			},
			wantEntity: "board outline",
		},
		{
			name: "outline zero area",
			mutate: func(d *Description) {
				d.Outline = []Position{{0, 0}, {50, 0}, {100, 0}}
			},
			wantEntity: "board outline",
		},
		{
			name: "outline self-intersecting",
			mutate: func(d *Description) {
				d.Outline = []Position{{0, 0}, {100, 80}, {100, 0}, {0, 80}}
			},
			wantEntity: "board outline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := testDescription()
			tt.mutate(&desc)

			_, err := New(desc)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error type = %T, want *ValidationError", err)
			}
			if !strings.Contains(verr.Entity, tt.wantEntity) {
				t.Errorf("error names entity %q, want it to contain %q", verr.Entity, tt.wantEntity)
			}
		})
	}
}

func TestViaSpanClassification(t *testing.T) {
	const layers = 12

	tests := []struct {
		name    string
		via     Via
		through bool
		blind   bool
		buried  bool
	}{
		{"through 1-12", Via{SpanStart: 1, SpanEnd: 12}, true, false, false},
		{"blind 1-2", Via{SpanStart: 1, SpanEnd: 2}, false, true, false},
		{"blind 10-12", Via{SpanStart: 10, SpanEnd: 12}, false, true, false},
		{"buried 3-7", Via{SpanStart: 3, SpanEnd: 7}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.via.IsThrough(layers); got != tt.through {
				t.Errorf("IsThrough() = %v, want %v", got, tt.through)
			}
			if got := tt.via.IsBlind(layers); got != tt.blind {
				t.Errorf("IsBlind() = %v, want %v", got, tt.blind)
			}
			if got := tt.via.IsBuried(layers); got != tt.buried {
				t.Errorf("IsBuried() = %v, want %v", got, tt.buried)
			}
		})
	}
}

func TestPadPositionRotation(t *testing.T) {
	fp := Footprint{
		Position: Position{X: 10, Y: 10},
		Rotation: 90,
	}
	pad := Pad{Offset: Position{X: 2, Y: 0}}

	got := fp.PadPosition(pad)
	if math.Abs(got.X-10) > 1e-9 || math.Abs(got.Y-12) > 1e-9 {
		t.Errorf("PadPosition() = (%.4f, %.4f), want (10, 12)", got.X, got.Y)
	}
}

func TestAccessorsCopy(t *testing.T) {
	b, err := New(testDescription())
	if err != nil {
		t.Fatal(err)
	}

	// Mutating a returned slice must not affect the model.
	layers := b.Layers()
	layers[0].Name = "clobbered"
	if got := b.Layers()[0].Name; got != "L1_Top_RF" {
		t.Errorf("Layers() not copied: first layer name = %q", got)
	}

	outline := b.Outline()
	outline[0].X = 999
	if got := b.Outline()[0].X; got != 0 {
		t.Errorf("Outline() not copied: first point X = %v", got)
	}
}
