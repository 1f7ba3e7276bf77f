package text

import "golang.org/x/text/unicode/bidi"

// Direction is a horizontal text direction.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// DetectDirection reports the dominant direction of the text, from its
// first rune with a strong bidirectional class. Neutral text is LTR.
func DetectDirection(text string) Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return DirectionLTR
}
