// Command genassets regenerates the embedded base boards under
// internal/assets/base-images. Both are 600x600 four-quadrant PNGs with thin
// separators and a subtle per-row shade so the boards don't look flat.
//
// Output is deterministic: the same palettes always produce the same pixels.
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const boardSize = 600

type palette struct {
	quadrants [4]color.RGBA // top-left, top-right, bottom-left, bottom-right
	separator color.RGBA
}

var boards = map[string]palette{
	// animal archetype board: wolf slate, eagle green, shark deep blue, cat amber
	"animal.png": {
		quadrants: [4]color.RGBA{
			{R: 64, G: 72, B: 88, A: 255},
			{R: 52, G: 199, B: 134, A: 255},
			{R: 20, G: 86, B: 158, A: 255},
			{R: 201, G: 146, B: 41, A: 255},
		},
		separator: color.RGBA{R: 240, G: 240, B: 240, A: 255},
	},
	// brain quadrant board: cool analytic left, warm expressive right
	"brain.png": {
		quadrants: [4]color.RGBA{
			{R: 38, G: 110, B: 181, A: 255},
			{R: 206, G: 76, B: 60, A: 255},
			{R: 88, G: 70, B: 153, A: 255},
			{R: 209, G: 163, B: 58, A: 255},
		},
		separator: color.RGBA{R: 245, G: 245, B: 245, A: 255},
	},
}

func main() {
	outDir := filepath.Join("internal", "assets", "base-images")
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	for name, pal := range boards {
		path := filepath.Join(outDir, name)
		if err := writeBoard(path, pal); err != nil {
			log.Fatal().Err(err).Str("board", name).Msg("Failed to write board")
		}
		log.Info().Str("path", path).Msg("Board written")
	}
}

func writeBoard(path string, pal palette) error {
	img := image.NewRGBA(image.Rect(0, 0, boardSize, boardSize))
	half := boardSize / 2

	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			if abs(x-half) < 2 || abs(y-half) < 2 {
				img.SetRGBA(x, y, pal.separator)
				continue
			}
			q := 0
			if y >= half {
				q = 2
			}
			if x >= half {
				q++
			}
			img.SetRGBA(x, y, shade(pal.quadrants[q], uint8((y%half)/12)))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func shade(c color.RGBA, by uint8) color.RGBA {
	return color.RGBA{R: sub(c.R, by), G: sub(c.G, by), B: sub(c.B, by), A: c.A}
}

func sub(v, by uint8) uint8 {
	if v < by {
		return 0
	}
	return v - by
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
