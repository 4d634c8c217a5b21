package logocolor

import (
	"errors"
	"fmt"
)

// ErrMalformedPixel indicates a pixel that violates the decoder contract:
// fewer than three channels, more than four, or a channel outside [0,255].
var ErrMalformedPixel = errors.New("malformed pixel")

// Pixel holds the 8-bit channels of one decoded pixel: red, green, blue and an
// optional alpha.
type Pixel []uint8

// PixelError reports which pixel of a sequence was malformed and why.
type PixelError struct {
	Index  int
	Reason string
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", ErrMalformedPixel, e.Index, e.Reason)
}

func (e *PixelError) Unwrap() error {
	return ErrMalformedPixel
}

// NewPixel validates raw channel values (as handed over by a decoder or a
// text source) and builds a Pixel. Values are never clamped.
func NewPixel(channels ...int) (Pixel, error) {
	if len(channels) < 3 || len(channels) > 4 {
		return nil, fmt.Errorf("%w: expected 3 or 4 channels, got %d", ErrMalformedPixel, len(channels))
	}

	p := make(Pixel, len(channels))
	for i, v := range channels {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: channel %d out of range: %d", ErrMalformedPixel, i, v)
		}
		p[i] = uint8(v)
	}

	return p, nil
}

// RGB returns the color channels, ignoring alpha.
func (p Pixel) RGB() (r, g, b uint8) {
	return p[0], p[1], p[2]
}

// HasAlpha reports whether the pixel carries a fourth channel.
func (p Pixel) HasAlpha() bool {
	return len(p) == 4
}

// IsTransparent is true only for an alpha pixel with every channel zero.
func (p Pixel) IsTransparent() bool {
	return p.HasAlpha() && p[0] == 0 && p[1] == 0 && p[2] == 0 && p[3] == 0
}

// IsWhite is true when red, green and blue are all 255, whatever the alpha.
func (p Pixel) IsWhite() bool {
	return p[0] == 255 && p[1] == 255 && p[2] == 255
}

func (p Pixel) validate(index int) error {
	if len(p) < 3 || len(p) > 4 {
		return &PixelError{Index: index, Reason: fmt.Sprintf("expected 3 or 4 channels, got %d", len(p))}
	}
	return nil
}

// Filter returns the ink pixels of an image: everything that is neither fully
// transparent nor pure white. Order is preserved and duplicates are kept. An
// empty result is valid.
func Filter(pixels []Pixel) ([]Pixel, error) {
	ink := make([]Pixel, 0, len(pixels))
	for i, p := range pixels {
		err := p.validate(i)
		if err != nil {
			return nil, err
		}

		if p.IsTransparent() || p.IsWhite() {
			continue
		}

		ink = append(ink, p)
	}

	return ink, nil
}
