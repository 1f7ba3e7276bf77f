package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
)

// FontSource is a parsed font file. One FontSource backs any number of
// Face values at different sizes. It is heavyweight; share it across
// the application.
//
// FontSource is safe for concurrent use and must not be copied after
// creation.
type FontSource struct {
	// addr points to the FontSource itself for copy detection.
	addr *FontSource

	font *font.Font
	upem float64
}

// NewFontSource parses TTF or OTF font data.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	s := &FontSource{
		font: face.Font,
		upem: float64(face.Font.Upem()),
	}
	s.addr = s
	return s, nil
}

// NewFontSourceFromFile loads and parses a font file.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFontSource(data)
}

func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource copied by value")
	}
}

// Font exposes the underlying parsed font. It is read-only and safe for
// concurrent use.
func (s *FontSource) Font() *font.Font { return s.font }

// UnitsPerEm reports the font's design grid resolution.
func (s *FontSource) UnitsPerEm() float64 { return s.upem }

// NewFace creates a Face of this font at the given size, in the same
// units as the drawing context's user space.
func (s *FontSource) NewFace(size float64) (*Face, error) {
	s.copyCheck()
	if size <= 0 {
		return nil, ErrInvalidFontSize
	}
	return &Face{
		source: s,
		face:   font.NewFace(s.font),
		size:   size,
	}, nil
}
