package logocolor

// Hue bin edges in degrees. A hue exactly on an edge is not inside any bin.
const (
	redOrangeEdge    = 25.0
	orangeYellowEdge = 37.5
	yellowGreenEdge  = 82.5
	greenBlueEdge    = 157.5
	bluePinkEdge     = 262.5
	pinkRedEdge      = 337.5
	fullTurn         = 360.0
)

// ClassifyHue maps a hue angle in degrees to a category using open intervals.
// Angles on a bin edge (0, 25, 37.5, 82.5, 157.5, 262.5, 337.5, 360) and
// anything outside (0,360) are Monochrome.
func ClassifyHue(degrees float64) Category {
	switch {
	case orangeYellowEdge < degrees && degrees < yellowGreenEdge:
		return Yellow
	case redOrangeEdge < degrees && degrees < orangeYellowEdge:
		return Orange
	case 0 < degrees && degrees < redOrangeEdge, pinkRedEdge < degrees && degrees < fullTurn:
		return Red
	case bluePinkEdge < degrees && degrees < pinkRedEdge:
		return Pink
	case greenBlueEdge < degrees && degrees < bluePinkEdge:
		return Blue
	case yellowGreenEdge < degrees && degrees < greenBlueEdge:
		return Green
	default:
		return Monochrome
	}
}

// Classifier assigns a category to HSL values and whole images.
// The zero value classifies on hue alone.
type Classifier struct {
	// SaturationFloor folds pixels whose saturation is below it into
	// Monochrome. Zero disables the check.
	SaturationFloor float64
}

// Classify returns the category of one HSL value.
//
// A chromatic value with a hue of exactly 0 degrees sits on the red primary
// axis (e.g. 255,0,0) and is Red; an achromatic value also reports hue 0 and
// stays Monochrome.
func (c Classifier) Classify(v HSL) Category {
	if c.SaturationFloor > 0 && v.S < c.SaturationFloor {
		return Monochrome
	}

	degrees := v.Degrees()
	if degrees == 0 && !v.Achromatic() {
		return Red
	}

	return ClassifyHue(degrees)
}

// ClassifyPixel returns the category of one pixel. A pixel whose hue lies
// exactly on a bin edge (e.g. 28,36,33 at 157.5 degrees) is Monochrome even
// when the floating point hue lands a rounding error to one side of it.
func (c Classifier) ClassifyPixel(p Pixel) Category {
	if onHueEdge(p) {
		return Monochrome
	}
	return c.Classify(ToHSL(p))
}

// ClassifyPixels filters the ink pixels out of an image and classifies each
// one. The result is empty when no ink remains.
func (c Classifier) ClassifyPixels(pixels []Pixel) ([]Category, error) {
	ink, err := Filter(pixels)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(ink))
	for i, p := range ink {
		categories[i] = c.ClassifyPixel(p)
	}

	return categories, nil
}

// ClassifyImage returns the dominant category of an image's pixels.
func (c Classifier) ClassifyImage(pixels []Pixel) (Category, error) {
	categories, err := c.ClassifyPixels(pixels)
	if err != nil {
		return Monochrome, err
	}

	return Resolve(categories), nil
}

// ClassifyImage is the per-image entry point using the hue-only classifier.
func ClassifyImage(pixels []Pixel) (Category, error) {
	return Classifier{}.ClassifyImage(pixels)
}

//--------------------------------------------------------------------------------
// private

// bin edges in half degrees, so that every edge is a whole number
var halfDegreeEdges = []int{50, 75, 165, 315, 525, 675}

// onHueEdge compares the hue of p against the bin edges in exact integer
// arithmetic. Hue 0 is not an edge here, see Classify.
func onHueEdge(p Pixel) bool {
	turn, chroma := hueSextant(p)
	if chroma == 0 || turn == 0 {
		return false
	}

	// the hue in half degrees is 120*turn/chroma
	for _, edge := range halfDegreeEdges {
		if 120*turn == edge*chroma {
			return true
		}
	}
	return false
}

// hueSextant returns the hue of p scaled by 6*chroma/360 (so it lies in
// [0, 6*chroma)) along with the chroma, max-min. Both are exact integers.
func hueSextant(p Pixel) (turn, chroma int) {
	r, g, b := p.RGB()
	ri, gi, bi := int(r), int(g), int(b)

	hi := max(ri, gi, bi)
	chroma = hi - min(ri, gi, bi)
	if chroma == 0 {
		return 0, 0
	}

	switch hi {
	case ri:
		turn = gi - bi
		if turn < 0 {
			turn += 6 * chroma
		}
	case gi:
		turn = bi - ri + 2*chroma
	default:
		turn = ri - gi + 4*chroma
	}

	return turn, chroma
}
