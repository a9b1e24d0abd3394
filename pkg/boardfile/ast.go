package boardfile

// File represents a complete board description file.
// A file contains exactly one board block.
type File struct {
	Board *BoardDecl `parser:"@@"`
}

// BoardDecl is the top-level board block.
// Example: board "tfln_modulator" { ... }
type BoardDecl struct {
	Name  string  `parser:"KwBoard @String LBrace"`
	Items []*Item `parser:"@@* RBrace"`
}

// Item is any statement inside the board block.
type Item struct {
	Outline   *OutlineDecl   `parser:"  @@"`
	MinTrack  *float64       `parser:"| KwMinTrack @Number"`
	MinDrill  *float64       `parser:"| KwMinDrill @Number"`
	Layer     *LayerDecl     `parser:"| @@"`
	Footprint *FootprintDecl `parser:"| @@"`
	Net       *NetDecl       `parser:"| @@"`
	Via       *ViaDecl       `parser:"| @@"`
}

// OutlineDecl lists the outline polygon vertices in order.
// Example: outline (0, 0) (100, 0) (100, 80) (0, 80)
type OutlineDecl struct {
	Points []Point `parser:"KwOutline @@+"`
}

// Point is a coordinate pair in millimeters.
type Point struct {
	X float64 `parser:"LParen @Number"`
	Y float64 `parser:"Comma @Number RParen"`
}

// LayerDecl declares one layer of the stack.
// Example: layer 1 "L1_Top_RF" signal { material "Rogers 4350B" impedance 50 }
type LayerDecl struct {
	Index int          `parser:"KwLayer @Number"`
	Name  string       `parser:"@String"`
	Role  string       `parser:"@( KwSignal | KwPower | KwGround | KwMixed )"`
	Props []*LayerProp `parser:"( LBrace @@* RBrace )?"`
}

// LayerProp is one optional layer property.
type LayerProp struct {
	Material      *string  `parser:"  KwMaterial @String"`
	Impedance     *float64 `parser:"| KwImpedance @Number"`
	DiffImpedance *float64 `parser:"| KwDiffImpedance @Number"`
	Copper        *float64 `parser:"| KwCopper @Number"`
}

// FootprintDecl declares a placed component.
// Example: footprint U1 "TFLN-MZM-400G-C" { at (50, 40) rotate 90 side top ... }
type FootprintDecl struct {
	Reference string           `parser:"KwFootprint @Ident"`
	Part      string           `parser:"@String LBrace"`
	Props     []*FootprintProp `parser:"@@* RBrace"`
}

// FootprintProp is one statement inside a footprint block.
type FootprintProp struct {
	At           *Placement `parser:"  KwAt @@"`
	Description  *string    `parser:"| KwDescription @String"`
	Manufacturer *string    `parser:"| KwManufacturer @String"`
	Pad          *PadDecl   `parser:"| @@"`
}

// Placement gives the footprint origin, optional rotation, and side.
type Placement struct {
	Position Point    `parser:"@@"`
	Rotation *float64 `parser:"( KwRotate @Number )?"`
	Side     string   `parser:"KwSide @( KwTop | KwBottom )"`
}

// PadDecl declares one pad of a footprint.
// Example: pad 1 rect (0.6, 1.2) at (-2, 0) net "MZM_BIAS"
// Example: pad 2 circle (0.8) at (0, 0) drill 0.4
type PadDecl struct {
	Number string   `parser:"KwPad @( String | Ident | Number )"`
	Shape  string   `parser:"@( KwCircle | KwRect | KwOval )"`
	Size   PadSize  `parser:"@@"`
	Offset Point    `parser:"KwAt @@"`
	Drill  *float64 `parser:"( KwDrill @Number )?"`
	Net    *string  `parser:"( KwNet @String )?"`
}

// PadSize is a pad dimension pair. Circles give a single diameter.
type PadSize struct {
	Width  float64  `parser:"LParen @Number"`
	Height *float64 `parser:"( Comma @Number )? RParen"`
}

// NetDecl declares one net.
// Example: net "GND" { width 0.3 clearance 0.2 layers 1 4 pads U1.2 U2.1 }
type NetDecl struct {
	Name  string     `parser:"KwNet @String LBrace"`
	Props []*NetProp `parser:"@@* RBrace"`
}

// NetProp is one statement inside a net block.
type NetProp struct {
	Width     *float64  `parser:"  KwWidth @Number"`
	Clearance *float64  `parser:"| KwClearance @Number"`
	Layers    []int     `parser:"| KwLayers @Number+"`
	Pads      []*PadRef `parser:"| KwPads @@+"`
}

// PadRef names one pad of one footprint, e.g. U1.2.
type PadRef struct {
	Reference string `parser:"@Ident"`
	Pad       string `parser:"Dot @( Ident | Number )"`
}

// ViaDecl declares one via.
// Example: via (45, 40) drill 0.3 plated span 1 4
type ViaDecl struct {
	Position  Point   `parser:"KwVia @@"`
	Drill     float64 `parser:"KwDrill @Number"`
	Plated    bool    `parser:"( @KwPlated | KwNonplated )"`
	SpanStart int     `parser:"KwSpan @Number"`
	SpanEnd   int     `parser:"@Number"`
}
