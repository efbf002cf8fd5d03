package annotate

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"github.com/fpang/profile-annotator/internal/profile"
)

func solidBase(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 30, G: 60, B: 90, A: 255}), image.Point{}, draw.Src)
	return img
}

func animalDataset(t *testing.T, values map[string]int) profile.Dataset {
	t.Helper()
	ds, err := profile.NewDataset(profile.ShapeAnimal, values)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return ds
}

func TestRenderDimensionPreservation(t *testing.T) {
	ds := animalDataset(t, map[string]int{"lobo": 40, "aguia": 55, "tubarao": 55, "gato": 10})

	sizes := []struct{ w, h int }{
		{600, 600},
		{640, 480},
		{333, 777},
	}
	for _, sz := range sizes {
		out, err := Render(solidBase(sz.w, sz.h), ds, Positions(profile.ShapeAnimal), DefaultStyles)
		if err != nil {
			t.Fatalf("Render(%dx%d) error = %v", sz.w, sz.h, err)
		}
		decoded, err := png.Decode(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("png.Decode() error = %v", err)
		}
		if got := decoded.Bounds(); got.Dx() != sz.w || got.Dy() != sz.h {
			t.Errorf("output bounds = %dx%d, want %dx%d", got.Dx(), got.Dy(), sz.w, sz.h)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	ds := animalDataset(t, map[string]int{"lobo": 40, "aguia": 55, "tubarao": 55, "gato": 10})

	first, err := Render(solidBase(600, 600), ds, Positions(profile.ShapeAnimal), DefaultStyles)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render(solidBase(600, 600), ds, Positions(profile.ShapeAnimal), DefaultStyles)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two renders of identical inputs produced different bytes")
	}
}

func TestRenderDoesNotMutateBase(t *testing.T) {
	ds := animalDataset(t, map[string]int{"lobo": 40, "aguia": 55, "tubarao": 55, "gato": 10})

	base := solidBase(600, 600)
	snapshot := make([]uint8, len(base.Pix))
	copy(snapshot, base.Pix)

	if _, err := Render(base, ds, Positions(profile.ShapeAnimal), DefaultStyles); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(snapshot, base.Pix) {
		t.Error("base image pixels changed during render")
	}
}

func TestRenderMissingPosition(t *testing.T) {
	ds := animalDataset(t, map[string]int{"lobo": 40, "aguia": 55, "tubarao": 55, "gato": 10})

	broken := PositionTable{
		"lobo":    image.Pt(150, 160),
		"aguia":   image.Pt(450, 160),
		"tubarao": image.Pt(150, 460),
		// gato missing
	}
	out, err := Render(solidBase(600, 600), ds, broken, DefaultStyles)
	if err == nil {
		t.Fatal("Render() error = nil, want missing-position error")
	}
	if out != nil {
		t.Error("Render() returned image bytes alongside an error")
	}
	if !strings.Contains(err.Error(), `no position configured for label "gato"`) {
		t.Errorf("error = %q, want mention of missing gato position", err)
	}
	if !strings.Contains(err.Error(), "animal") {
		t.Errorf("error = %q, want dataset context", err)
	}
}

// changedPixels counts pixels inside a box around an anchor that differ from
// the solid base color.
func changedPixels(img image.Image, at image.Point, half int) int {
	base := color.RGBA{R: 30, G: 60, B: 90, A: 255}
	count := 0
	for y := at.Y - half; y < at.Y+half; y++ {
		for x := at.X - half; x < at.X+half; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			br, bg, bb, ba := base.RGBA()
			if r != br || g != bg || b != bb || a != ba {
				count++
			}
		}
	}
	return count
}

func TestRenderEmphasizesDominantOnly(t *testing.T) {
	// Equal values: exactly one entry (the first, lobo) gets the emphasized
	// style, so its label footprint is the largest of the four.
	ds := animalDataset(t, map[string]int{"lobo": 25, "aguia": 25, "tubarao": 25, "gato": 25})
	positions := Positions(profile.ShapeAnimal)

	out, err := Render(solidBase(600, 600), ds, positions, DefaultStyles)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	footprints := make(map[string]int)
	for _, e := range ds.Entries {
		footprints[e.Name] = changedPixels(img, positions[e.Name], 80)
	}
	for _, e := range ds.Entries {
		if footprints[e.Name] == 0 {
			t.Errorf("no pixels drawn near %q anchor", e.Name)
		}
	}
	for name, n := range footprints {
		if name == "lobo" {
			continue
		}
		if n >= footprints["lobo"] {
			t.Errorf("footprint of %q (%d px) >= emphasized %q (%d px)", name, n, "lobo", footprints["lobo"])
		}
	}
}

func TestRenderScenarioB(t *testing.T) {
	// Brain dataset where atuante dominates; its "30%" label must land at the
	// configured anchor with the larger style.
	ds, err := profile.NewDataset(profile.ShapeBrain, map[string]int{
		"pensante": 20, "atuante": 30, "razao": 25, "emocao": 25,
	})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	if got := ds.Dominant(); got != "atuante" {
		t.Fatalf("Dominant() = %q, want %q", got, "atuante")
	}

	positions := Positions(profile.ShapeBrain)
	out, err := Render(solidBase(600, 600), ds, positions, DefaultStyles)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	atuante := changedPixels(img, positions["atuante"], 80)
	if atuante == 0 {
		t.Fatal("no pixels drawn near atuante anchor")
	}
	for _, name := range []string{"pensante", "razao", "emocao"} {
		if n := changedPixels(img, positions[name], 80); n >= atuante {
			t.Errorf("footprint of %q (%d px) >= dominant atuante (%d px)", name, n, atuante)
		}
	}
}

func TestEmphasisLargerThanNormal(t *testing.T) {
	if DefaultStyles.Emphasis.Size <= DefaultStyles.Normal.Size {
		t.Errorf("Emphasis.Size = %v, want > Normal.Size = %v",
			DefaultStyles.Emphasis.Size, DefaultStyles.Normal.Size)
	}
}

func TestPositionsCoverShapes(t *testing.T) {
	for _, shape := range []profile.Shape{profile.ShapeAnimal, profile.ShapeBrain} {
		table := Positions(shape)
		for _, name := range shape.Names() {
			if _, ok := table[name]; !ok {
				t.Errorf("%s position table missing %q", shape, name)
			}
		}
		if len(table) != len(shape.Names()) {
			t.Errorf("%s position table has %d entries, want %d", shape, len(table), len(shape.Names()))
		}
	}
}

func TestBoxBlurAlphaSpreadsAndDims(t *testing.T) {
	m := image.NewAlpha(image.Rect(0, 0, 21, 21))
	m.SetAlpha(10, 10, color.Alpha{A: 255})

	boxBlurAlpha(m, 3, 3)

	if got := m.AlphaAt(10, 10).A; got == 0 || got == 255 {
		t.Errorf("center alpha after blur = %d, want attenuated non-zero", got)
	}
	if got := m.AlphaAt(10, 13).A; got == 0 {
		t.Error("blur did not spread alpha to neighbouring pixels")
	}
	if got := m.AlphaAt(0, 0).A; got != 0 {
		t.Errorf("corner alpha = %d, want 0 beyond blur reach", got)
	}
}
