// Package chart renders corpus tallies as a pie chart image and as a plain
// text summary.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/BitPonyLLC/logohue/pkg/logocolor"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"
)

// DefaultSize is the diameter, in pixels, of the rendered pie.
const DefaultSize = 400

const (
	explodeFraction = 0.1
	legendWidth     = 160
	swatchSize      = 12
	lineHeight      = 20
)

// Exploded is the category whose slice is pulled out of the pie.
var Exploded = logocolor.Blue

var sliceColors = map[logocolor.Category]color.RGBA{
	logocolor.Yellow:     mustHex("#ffff00"),
	logocolor.Orange:     mustHex("#ffa500"),
	logocolor.Red:        mustHex("#ff0000"),
	logocolor.Pink:       mustHex("#ffc0cb"),
	logocolor.Blue:       mustHex("#0000ff"),
	logocolor.Green:      mustHex("#008000"),
	logocolor.Monochrome: mustHex("#808080"),
}

// SliceColor returns the fill color used for category c.
func SliceColor(c logocolor.Category) color.RGBA {
	return sliceColors[c]
}

// Shares returns each category's fraction of the tally in enumeration order.
// An empty tally yields all zeros.
func Shares(tally logocolor.CorpusTally) []float64 {
	shares := make([]float64, len(logocolor.Categories))
	for i, c := range logocolor.Categories {
		shares[i] = float64(tally.Count(c))
	}

	sum := floats.Sum(shares)
	if sum == 0 {
		return shares
	}

	floats.Scale(1/sum, shares)
	return shares
}

// RenderPie draws the tally as a pie with a legend. size is the pie diameter;
// values below 50 fall back to DefaultSize.
func RenderPie(tally logocolor.CorpusTally, size int) *image.RGBA {
	if size < 50 {
		size = DefaultSize
	}

	margin := int(float64(size) * explodeFraction)
	side := size + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, side+legendWidth, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	shares := Shares(tally)
	radius := float64(size) / 2
	center := float64(side) / 2

	start := 0.0
	for i, c := range logocolor.Categories {
		sweep := shares[i] * 2 * math.Pi
		if sweep > 0 {
			drawSlice(img, c, center, radius, start, start+sweep)
		}
		start += sweep
	}

	if tally.Total == 0 {
		drawCircle(img, center, radius, color.RGBA{0xd0, 0xd0, 0xd0, 0xff})
	}

	drawLegend(img, side, shares)
	return img
}

// WritePie encodes the pie chart for tally as PNG.
func WritePie(w io.Writer, tally logocolor.CorpusTally, size int) error {
	err := png.Encode(w, RenderPie(tally, size))
	if err != nil {
		return fmt.Errorf("unable to encode chart: %w", err)
	}
	return nil
}

// SavePie writes the pie chart for tally to pathname.
func SavePie(pathname string, tally logocolor.CorpusTally, size int) error {
	f, err := os.Create(pathname)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", pathname, err)
	}
	defer f.Close()

	err = WritePie(f, tally, size)
	if err != nil {
		return err
	}

	return f.Close()
}

//--------------------------------------------------------------------------------
// private

func mustHex(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// angles are counterclockwise from the positive x axis, in radians
func drawSlice(img *image.RGBA, c logocolor.Category, center, radius, from, to float64) {
	cx, cy := center, center
	if c == Exploded && to-from < 2*math.Pi {
		mid := (from + to) / 2
		offset := radius * explodeFraction
		cx += offset * math.Cos(mid)
		cy -= offset * math.Sin(mid)
	}

	fill := SliceColor(c)
	minX, maxX := int(cx-radius), int(cx+radius)+1
	minY, maxY := int(cy-radius), int(cy+radius)+1
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := cy - (float64(y) + 0.5)
			if dx*dx+dy*dy > radius*radius {
				continue
			}

			angle := math.Atan2(dy, dx)
			if angle < 0 {
				angle += 2 * math.Pi
			}

			if from <= angle && angle < to {
				img.SetRGBA(x, y, fill)
			}
		}
	}
}

func drawCircle(img *image.RGBA, center, radius float64, stroke color.RGBA) {
	steps := int(2 * math.Pi * radius)
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		x := center + radius*math.Cos(angle)
		y := center - radius*math.Sin(angle)
		img.SetRGBA(int(x), int(y), stroke)
	}
}

func drawLegend(img *image.RGBA, left int, shares []float64) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}

	for i, c := range logocolor.Categories {
		top := 20 + i*lineHeight
		swatch := image.Rect(left, top, left+swatchSize, top+swatchSize)
		draw.Draw(img, swatch, image.NewUniform(SliceColor(c)), image.Point{}, draw.Src)

		drawer.Dot = fixed.P(left+swatchSize+6, top+swatchSize-1)
		drawer.DrawString(fmt.Sprintf("%s %.1f%%", c.Title(), shares[i]*100))
	}
}
