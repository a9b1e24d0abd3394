// Package board holds the canonical in-memory model of a PCB design.
// The model is constructed once from a board description, validated up
// front, and treated as immutable: every output format is a pure
// projection of it.
package board

import "math"

// Position represents a 2D coordinate in millimeters.
type Position struct {
	X float64 // X coordinate in mm
	Y float64 // Y coordinate in mm
}

// Size represents dimensions in millimeters.
type Size struct {
	Width  float64 // Width in mm
	Height float64 // Height in mm
}

// LayerRole classifies the electrical function of a copper layer.
type LayerRole string

const (
	RoleSignal LayerRole = "signal"
	RolePower  LayerRole = "power"
	RoleGround LayerRole = "ground"
	RoleMixed  LayerRole = "mixed"
)

// IsPlane reports whether the role is a solid reference plane.
func (r LayerRole) IsPlane() bool {
	return r == RolePower || r == RoleGround
}

// Side identifies which face of the board a component is placed on.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// PadShape names the land pattern geometry of a pad.
// The model does not restrict the value; emitters that cannot express a
// shape in their target format reject it themselves.
type PadShape string

const (
	ShapeCircle PadShape = "circle"
	ShapeRect   PadShape = "rect"
	ShapeOval   PadShape = "oval"
)

// Layer represents one physical layer of the stack.
// Indices run 1..N from top to bottom; layers 1 and N are the outer layers.
type Layer struct {
	Index          int       // Layer index (1..N, top to bottom)
	Name           string    // Layer name (e.g., "L1_Top_RF")
	Role           LayerRole // Electrical role
	Material       string    // Dielectric material (e.g., "Rogers 4350B")
	Impedance      float64   // Single-ended impedance class in ohms (0 = unspecified)
	DiffImpedance  float64   // Differential impedance class in ohms (0 = unspecified)
	CopperWeightOz float64   // Copper weight in oz
}

// PadRef identifies one pad of one placed footprint, e.g. U1.3.
type PadRef struct {
	Reference string // Footprint reference designator
	Pad       string // Pad number within the footprint
}

// Net represents a logical electrical connection between pads.
type Net struct {
	Name       string   // Net name (e.g., "MZM_BIAS")
	Pads       []PadRef // Connected pads, in connection order
	Layers     []int    // Layer indices the net is routed on
	TraceWidth float64  // Trace width in mm
	Clearance  float64  // Copper clearance in mm
}

// Pad represents one pad of a footprint. The offset is relative to the
// footprint origin, before placement rotation is applied.
type Pad struct {
	Number string   // Pad number/name within the footprint
	Offset Position // Offset from footprint origin in mm
	Shape  PadShape // Land pattern shape
	Size   Size     // Pad size in mm
	Drill  float64  // Finished drill diameter in mm (0 for SMD)
	Net    string   // Connected net name ("" = unconnected)
}

// IsThroughHole reports whether the pad needs a drilled hole.
func (p Pad) IsThroughHole() bool {
	return p.Drill > 0
}

// Footprint represents a placed component instance.
type Footprint struct {
	Reference    string   // Unique reference designator (e.g., "U1")
	Part         string   // Manufacturer part number
	Description  string   // Human-readable part description
	Manufacturer string   // Manufacturer name
	Position     Position // Placement origin in mm
	Rotation     float64  // Placement rotation in degrees
	Side         Side     // Board side
	Pads         []Pad    // Pad list
}

// PadPosition returns the absolute board position of a pad, with the
// footprint's placement rotation applied to the pad offset.
func (f Footprint) PadPosition(p Pad) Position {
	rad := f.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return Position{
		X: f.Position.X + p.Offset.X*cos - p.Offset.Y*sin,
		Y: f.Position.Y + p.Offset.X*sin + p.Offset.Y*cos,
	}
}

// FindPad returns the pad with the given number, if any.
func (f Footprint) FindPad(number string) (Pad, bool) {
	for _, p := range f.Pads {
		if p.Number == number {
			return p, true
		}
	}
	return Pad{}, false
}

// Via represents one entry of the drill table. The span distinguishes
// through, blind, and buried vias.
type Via struct {
	Position  Position // Hole position in mm
	Drill     float64  // Finished hole diameter in mm
	Plated    bool     // Plated or non-plated
	SpanStart int      // First layer of the span (1..N)
	SpanEnd   int      // Last layer of the span (1..N)
}

// IsThrough reports whether the via spans the whole stack.
func (v Via) IsThrough(layerCount int) bool {
	return v.SpanStart == 1 && v.SpanEnd == layerCount
}

// IsBlind reports whether the via connects exactly one outer layer to an
// inner layer.
func (v Via) IsBlind(layerCount int) bool {
	touchesTop := v.SpanStart == 1
	touchesBottom := v.SpanEnd == layerCount
	return touchesTop != touchesBottom
}

// IsBuried reports whether the via connects inner layers only.
func (v Via) IsBuried(layerCount int) bool {
	return v.SpanStart > 1 && v.SpanEnd < layerCount
}
