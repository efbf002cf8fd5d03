// Package annotate renders percentage labels onto a base image. Given a
// dataset, a per-shape position table and a normal/emphasized style pair, it
// blits the base image onto a fresh surface, draws one centered label per
// entry with a soft drop shadow, highlights the dominant entry, and encodes
// the result as PNG.
package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/fpang/profile-annotator/internal/profile"
)

// LabelStyle describes how one percentage label is drawn.
type LabelStyle struct {
	Size  float64 // font size in px
	Color color.RGBA
}

// StylePair holds the two styles used per render. Emphasis is applied to the
// dominant entry only and must use a strictly larger size than Normal.
type StylePair struct {
	Normal   LabelStyle
	Emphasis LabelStyle
}

// PositionTable maps each name of a shape to its label anchor on the base
// image. Tables are fixed configuration; they are never mutated.
type PositionTable map[string]image.Point

// Render draws all labels of ds onto a copy of base and returns the surface
// encoded as PNG. The base image is never written to, the output has exactly
// the base image's dimensions, and no drawing state survives the call, so
// identical inputs produce identical bytes.
func Render(base image.Image, ds profile.Dataset, positions PositionTable, styles StylePair) ([]byte, error) {
	bounds := base.Bounds()
	surface := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(surface, surface.Bounds(), base, bounds.Min, draw.Src)

	dominant := ds.Dominant()

	// Faces are created per call: opentype faces carry mutable rasterizer
	// state and the two shape renders run concurrently.
	normalFace := newLabelFace(styles.Normal.Size)
	emphasisFace := newLabelFace(styles.Emphasis.Size)

	for _, e := range ds.Entries {
		at, ok := positions[e.Name]
		if !ok {
			return nil, fmt.Errorf("%s render: no position configured for label %q", ds.Shape, e.Name)
		}
		style, face := styles.Normal, normalFace
		if e.Name == dominant {
			style, face = styles.Emphasis, emphasisFace
		}
		drawLabel(surface, fmt.Sprintf("%d%%", e.Value), at, style, face)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, surface); err != nil {
		return nil, fmt.Errorf("%s render: encode: %w", ds.Shape, err)
	}
	return buf.Bytes(), nil
}

// drawLabel draws text centered on both axes at the anchor point: the dot is
// shifted left by half the advance and down by half of (ascent - descent) so
// the glyph box center lands on the anchor. The shadow goes down first, then
// the glyphs; the shadow mask is local to the call and cannot bleed into
// later labels.
func drawLabel(dst *image.RGBA, text string, at image.Point, style LabelStyle, face font.Face) {
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	dot := fixed.Point26_6{
		X: fixed.I(at.X) - adv/2,
		Y: fixed.I(at.Y) + (metrics.Ascent-metrics.Descent)/2,
	}

	drawShadow(dst, text, face, dot)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}
