package annotate

import (
	"image"
	"image/color"

	"github.com/fpang/profile-annotator/internal/profile"
)

// Label anchors on the 600x600 base boards, one table per shape. These are
// fixed configuration tied to the board artwork, not tunable per request.
var (
	animalPositions = PositionTable{
		"lobo":    image.Pt(150, 160),
		"aguia":   image.Pt(450, 160),
		"tubarao": image.Pt(150, 460),
		"gato":    image.Pt(450, 460),
	}

	brainPositions = PositionTable{
		"pensante": image.Pt(150, 150),
		"atuante":  image.Pt(450, 150),
		"razao":    image.Pt(150, 450),
		"emocao":   image.Pt(450, 450),
	}
)

// Positions returns the fixed position table for a shape.
func Positions(shape profile.Shape) PositionTable {
	if shape == profile.ShapeBrain {
		return brainPositions
	}
	return animalPositions
}

// DefaultStyles is the style pair used by the service: white labels with the
// dominant entry in larger yellow.
var DefaultStyles = StylePair{
	Normal: LabelStyle{
		Size:  28,
		Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	},
	Emphasis: LabelStyle{
		Size:  42,
		Color: color.RGBA{R: 0xff, G: 0xdd, B: 0x33, A: 0xff},
	},
}
