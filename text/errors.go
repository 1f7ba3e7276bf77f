package text

import "errors"

var (
	// ErrEmptyFontData reports a FontSource created from no bytes.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFontSize reports a non-positive face size.
	ErrInvalidFontSize = errors.New("text: font size must be positive")
)
