// Package image_matcher decodes logo images into the pixel sequences the
// classifier consumes, and finds their prominent color for display.
package image_matcher

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/BitPonyLLC/logohue/pkg/logocolor"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Logo is a decoded logo image along with the raw file bytes it came from.
type Logo struct {
	Path  string
	Data  []byte
	Image image.Image
}

// Load reads and decodes the image at pathname.
func Load(pathname string) (*Logo, error) {
	data, err := os.ReadFile(pathname)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", pathname, err)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", pathname, err)
	}

	return &Logo{Path: pathname, Data: data, Image: img}, nil
}

// Decode decodes an image in any registered format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// PixelsOf flattens img into row-major non-premultiplied pixels. Images with
// an alpha channel produce four-channel pixels, opaque-only models produce
// three.
func PixelsOf(img image.Image) []logocolor.Pixel {
	bounds := img.Bounds()
	withAlpha := hasAlpha(img.ColorModel())

	pixels := make([]logocolor.Pixel, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if withAlpha {
				pixels = append(pixels, logocolor.Pixel{c.R, c.G, c.B, c.A})
			} else {
				pixels = append(pixels, logocolor.Pixel{c.R, c.G, c.B})
			}
		}
	}

	return pixels
}

// ProminentColorOf returns the hex value (e.g. "FF0000") of the largest
// k-means cluster of img, ignoring white background.
func ProminentColorOf(img image.Image) (string, error) {
	masks := []prominentcolor.ColorBackgroundMask{prominentcolor.MaskWhite}
	colors, err := prominentcolor.KmeansWithAll(prominentcolor.DefaultK, img,
		prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, masks)
	if err != nil {
		return "", fmt.Errorf("unable to extract prominent color: %w", err)
	}

	var best *prominentcolor.ColorItem
	for i, item := range colors {
		if best == nil || item.Cnt > best.Cnt {
			best = &colors[i]
		}
	}

	if best == nil {
		return "", errors.New("no colors found")
	}

	return best.AsString(), nil
}

//--------------------------------------------------------------------------------
// private

func hasAlpha(model color.Model) bool {
	switch model {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}
