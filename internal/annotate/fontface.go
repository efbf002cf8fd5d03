package annotate

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

var (
	boldFontOnce sync.Once
	boldFont     *opentype.Font
	boldFontErr  error
)

func loadBoldFont() {
	boldFont, boldFontErr = opentype.Parse(gobold.TTF)
	if boldFontErr != nil {
		log.Warn().Err(boldFontErr).
			Msg("Bold label font failed to parse, labels fall back to the built-in bitmap face")
	}
}

// RegisterFont parses the bold label font ahead of the first render and
// returns the parse error, if any. Callers log the failure once at startup;
// renders still succeed on the fallback face, just less legibly.
func RegisterFont() error {
	boldFontOnce.Do(loadBoldFont)
	return boldFontErr
}

// newLabelFace builds a fresh face at the given size. The parsed font is
// shared and read-only; the face itself is not safe for concurrent use, so
// every render call gets its own.
func newLabelFace(size float64) font.Face {
	boldFontOnce.Do(loadBoldFont)
	if boldFontErr != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Warn().Err(err).Float64("size", size).Msg("Label face creation failed, using fallback face")
		return basicfont.Face7x13
	}
	return face
}
