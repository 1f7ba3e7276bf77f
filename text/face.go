package text

import "github.com/go-text/typesetting/font"

// Face is a font at a specific size. It is a lightweight view over a
// shared FontSource.
//
// A Face is not safe for concurrent use; create one per goroutine from
// the shared source.
type Face struct {
	source *FontSource
	face   *font.Face
	size   float64
}

// Metrics are font-wide vertical metrics scaled to the face size.
// Descent is a positive distance below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource { return f.source }

// Size returns the face size.
func (f *Face) Size() float64 { return f.size }

// scale converts a design-grid value to face-size units.
func (f *Face) scale(v float32) float64 {
	return float64(v) * f.size / f.source.upem
}

// Metrics returns the face's vertical metrics.
func (f *Face) Metrics() Metrics {
	ext, ok := f.face.FontHExtents()
	if !ok {
		// Common fallback proportions for fonts without an hhea table.
		return Metrics{
			Ascent:  f.size * 0.8,
			Descent: f.size * 0.2,
		}
	}
	descent := f.scale(ext.Descender)
	if descent < 0 {
		descent = -descent
	}
	return Metrics{
		Ascent:  f.scale(ext.Ascender),
		Descent: descent,
		LineGap: f.scale(ext.LineGap),
	}
}

// HasGlyph reports whether the font maps the rune to a real glyph.
func (f *Face) HasGlyph(r rune) bool {
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// Advance returns the advance width of the text at the face size,
// without shaping or kerning. Unmapped runes contribute nothing.
func (f *Face) Advance(text string) float64 {
	total := 0.0
	for _, r := range text {
		gid, ok := f.face.NominalGlyph(r)
		if !ok {
			continue
		}
		total += f.scale(f.face.HorizontalAdvance(gid))
	}
	return total
}
