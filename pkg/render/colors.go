package render

import "image/color"

// Classic PCB viewer palette, front copper red and back copper blue.
var (
	colorBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorSubstrate  = color.RGBA{R: 18, G: 69, B: 34, A: 255}
	colorFrontCu    = color.RGBA{R: 200, G: 52, B: 52, A: 255}
	colorBackCu     = color.RGBA{R: 77, G: 127, B: 196, A: 255}
	colorVia        = color.RGBA{R: 175, G: 175, B: 175, A: 255}
	colorLabel      = color.RGBA{R: 242, G: 237, B: 161, A: 255}
)

func copperColor(bottom bool) color.RGBA {
	if bottom {
		return colorBackCu
	}
	return colorFrontCu
}
