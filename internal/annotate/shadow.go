package annotate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// shadowAlpha is the shadow opacity, ~0.8 of full.
	shadowAlpha = 204
	// shadowBlurRadius is the total blur spread in px; zero offset on both axes.
	shadowBlurRadius = 10
	// shadowBlurPasses of a small box blur approximate a gaussian falloff.
	shadowBlurPasses = 3
)

// drawShadow composites a blurred, semi-transparent black silhouette of text
// directly behind where the glyphs will land. The glyph run is rasterized
// into a throwaway alpha mask with a blur margin, box-blurred, and blended
// onto dst through DrawMask.
func drawShadow(dst *image.RGBA, text string, face font.Face, dot fixed.Point26_6) {
	glyphBounds, _ := font.BoundString(face, text)

	r := image.Rect(
		(dot.X+glyphBounds.Min.X).Floor()-shadowBlurRadius,
		(dot.Y+glyphBounds.Min.Y).Floor()-shadowBlurRadius,
		(dot.X+glyphBounds.Max.X).Ceil()+shadowBlurRadius,
		(dot.Y+glyphBounds.Max.Y).Ceil()+shadowBlurRadius,
	)
	if r.Empty() {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 0xff}),
		Face: face,
		Dot: fixed.Point26_6{
			X: dot.X - fixed.I(r.Min.X),
			Y: dot.Y - fixed.I(r.Min.Y),
		},
	}
	d.DrawString(text)

	boxBlurAlpha(mask, shadowBlurRadius/shadowBlurPasses, shadowBlurPasses)

	shadow := image.NewUniform(color.RGBA{A: shadowAlpha})
	draw.DrawMask(dst, r, shadow, image.Point{}, mask, image.Point{}, draw.Over)
}

// boxBlurAlpha runs a separable box blur over the alpha channel in place.
// Pixels outside the mask count as fully transparent, which is what the
// margin in drawShadow is for.
func boxBlurAlpha(m *image.Alpha, radius, passes int) {
	if radius <= 0 || passes <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	tmp := make([]uint8, w*h)
	window := uint32(2*radius + 1)

	for p := 0; p < passes; p++ {
		// Horizontal pass into tmp. sum holds the window ending just before
		// the pixel about to be written.
		for y := 0; y < h; y++ {
			row := y * m.Stride
			var sum uint32
			for x := 0; x < radius && x < w; x++ {
				sum += uint32(m.Pix[row+x])
			}
			for x := 0; x < w; x++ {
				if x+radius < w {
					sum += uint32(m.Pix[row+x+radius])
				}
				tmp[y*w+x] = uint8(sum / window)
				if x-radius >= 0 {
					sum -= uint32(m.Pix[row+x-radius])
				}
			}
		}
		// Vertical pass back into the mask.
		for x := 0; x < w; x++ {
			var sum uint32
			for y := 0; y < radius && y < h; y++ {
				sum += uint32(tmp[y*w+x])
			}
			for y := 0; y < h; y++ {
				if y+radius < h {
					sum += uint32(tmp[(y+radius)*w+x])
				}
				m.Pix[y*m.Stride+x] = uint8(sum / window)
				if y-radius >= 0 {
					sum -= uint32(tmp[(y-radius)*w+x])
				}
			}
		}
	}
}
