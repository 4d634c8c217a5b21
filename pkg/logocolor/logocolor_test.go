package logocolor

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(channels ...uint8) Pixel {
	return Pixel(channels)
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name     string
		pixels   []Pixel
		expected []Pixel
	}{
		{
			name:     "empty input",
			pixels:   nil,
			expected: []Pixel{},
		},
		{
			name:     "transparent and white removed",
			pixels:   []Pixel{px(0, 0, 0, 0), px(255, 255, 255, 255), px(255, 255, 255), px(255, 255, 255, 0)},
			expected: []Pixel{},
		},
		{
			name:     "opaque black and rgb black kept",
			pixels:   []Pixel{px(0, 0, 0, 255), px(0, 0, 0)},
			expected: []Pixel{px(0, 0, 0, 255), px(0, 0, 0)},
		},
		{
			name:     "transparent with color kept",
			pixels:   []Pixel{px(10, 0, 0, 0)},
			expected: []Pixel{px(10, 0, 0, 0)},
		},
		{
			name:     "order and duplicates preserved",
			pixels:   []Pixel{px(1, 2, 3), px(0, 0, 0, 0), px(1, 2, 3), px(9, 9, 9)},
			expected: []Pixel{px(1, 2, 3), px(1, 2, 3), px(9, 9, 9)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ink, err := Filter(tc.pixels)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ink)
		})
	}
}

func TestFilterMalformed(t *testing.T) {
	_, err := Filter([]Pixel{px(1, 2, 3), px(1, 2)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedPixel))

	var pe *PixelError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Index)

	_, err = ClassifyImage([]Pixel{px(1, 2, 3, 4, 5)})
	assert.ErrorIs(t, err, ErrMalformedPixel)
}

func TestNewPixel(t *testing.T) {
	p, err := NewPixel(255, 0, 0, 255)
	require.NoError(t, err)
	assert.Equal(t, px(255, 0, 0, 255), p)

	for _, channels := range [][]int{{1, 2}, {1, 2, 3, 4, 5}, {256, 0, 0}, {0, -1, 0}, {0, 0, 0, 300}} {
		_, err := NewPixel(channels...)
		assert.ErrorIs(t, err, ErrMalformedPixel, "channels %v", channels)
	}
}

func TestToHSLKnownValues(t *testing.T) {
	testCases := []struct {
		name  string
		pixel Pixel
		h     float64
		s     float64
		l     float64
	}{
		{"red", px(255, 0, 0), 0, 1, 0.5},
		{"green", px(0, 255, 0), 1.0 / 3, 1, 0.5},
		{"blue", px(0, 0, 255), 2.0 / 3, 1, 0.5},
		{"yellow", px(255, 255, 0), 1.0 / 6, 1, 0.5},
		{"black", px(0, 0, 0), 0, 0, 0},
		{"white", px(255, 255, 255), 0, 0, 1},
		{"gray with alpha ignored", px(51, 51, 51, 7), 0, 0, 0.2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := ToHSL(tc.pixel)
			assert.InDelta(t, tc.h, v.H, 1e-12)
			assert.InDelta(t, tc.s, v.S, 1e-12)
			assert.InDelta(t, tc.l, v.L, 1e-12)
		})
	}
}

func TestToHSLRanges(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				v := ToHSL(px(uint8(r), uint8(g), uint8(b)))
				if v.H < 0 || v.H >= 1 || v.S < 0 || v.S > 1 || v.L < 0 || v.L > 1 {
					t.Fatalf("out of range for (%d,%d,%d): %+v", r, g, b, v)
				}
			}
		}
	}
}

func TestClassifyHueBoundaries(t *testing.T) {
	for _, degrees := range []float64{0, 25, 37.5, 82.5, 157.5, 262.5, 337.5, 360} {
		assert.Equal(t, Monochrome, ClassifyHue(degrees), "degrees %v", degrees)
	}
}

func TestClassifyHueBins(t *testing.T) {
	testCases := []struct {
		degrees  float64
		expected Category
	}{
		{0.001, Red},
		{24.999, Red},
		{25.001, Orange},
		{30, Orange},
		{37.501, Yellow},
		{60, Yellow},
		{82.501, Green},
		{120, Green},
		{157.501, Blue},
		{240, Blue},
		{262.501, Pink},
		{300, Pink},
		{337.501, Red},
		{359.999, Red},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ClassifyHue(tc.degrees), "degrees %v", tc.degrees)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	for i := 0; i < 100000; i++ {
		c := Classifier{}.Classify(HSL{H: float64(i) / 100000, S: 0.5, L: 0.5})
		require.True(t, c.Valid())
	}
}

func TestClassifyPixels(t *testing.T) {
	testCases := []struct {
		name     string
		pixel    Pixel
		expected Category
	}{
		{"pure red", px(255, 0, 0), Red},
		{"crimson", px(255, 0, 40), Red},
		{"orange", px(255, 128, 0), Orange},
		{"yellow", px(255, 255, 0), Yellow},
		{"green", px(0, 255, 0), Green},
		{"blue", px(0, 0, 255), Blue},
		{"hot pink", px(255, 105, 180), Pink},
		{"gray", px(128, 128, 128), Monochrome},
		{"black", px(0, 0, 0, 255), Monochrome},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classifier{}.Classify(ToHSL(tc.pixel)))
		})
	}
}

func TestClassifyPixelOnExactEdges(t *testing.T) {
	testCases := []struct {
		name  string
		pixel Pixel
	}{
		{"green/blue edge 157.5", px(28, 36, 33)},
		{"red/orange edge 25", px(12, 5, 0)},
		{"orange/yellow edge 37.5", px(16, 10, 0)},
		{"yellow/green edge 82.5", px(5, 8, 0)},
		{"blue/pink edge 262.5", px(3, 0, 8)},
		{"pink/red edge 337.5", px(16, 0, 6)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, Monochrome, Classifier{}.ClassifyPixel(tc.pixel))
		})
	}

	assert.Equal(t, Red, Classifier{}.ClassifyPixel(px(255, 0, 0)))
	assert.Equal(t, Monochrome, Classifier{}.ClassifyPixel(px(40, 40, 40)))
}

func TestClassifyPixelFindsEveryEdge(t *testing.T) {
	edges := []float64{25, 37.5, 82.5, 157.5, 262.5, 337.5}
	found := 0

	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				p := px(uint8(r), uint8(g), uint8(b))
				degrees := ToHSL(p).Degrees()

				near := false
				for _, edge := range edges {
					if math.Abs(degrees-edge) < 1e-9 {
						near = true
					}
				}

				require.Equal(t, near, onHueEdge(p), "pixel %v at %v degrees", p, degrees)
				if near {
					found++
					require.Equal(t, Monochrome, Classifier{}.ClassifyPixel(p), "pixel %v", p)
				}
			}
		}
	}

	assert.NotZero(t, found)
}

func TestSaturationFloor(t *testing.T) {
	nearGray := ToHSL(px(128, 130, 128))
	assert.Equal(t, Green, Classifier{}.Classify(nearGray))
	assert.Equal(t, Monochrome, Classifier{SaturationFloor: 0.05}.Classify(nearGray))
	assert.Equal(t, Blue, Classifier{SaturationFloor: 0.05}.Classify(ToHSL(px(0, 0, 255))))
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name       string
		categories []Category
		expected   Category
	}{
		{"empty input yields yellow", nil, Yellow},
		{"plurality", []Category{Green, Blue, Green}, Green},
		{"blue beats green on a tie", []Category{Green, Blue, Blue, Green}, Blue},
		{"red beats pink on a tie", []Category{Pink, Red}, Red},
		{"monochrome counted", []Category{Monochrome, Monochrome, Red}, Monochrome},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Resolve(tc.categories))
		})
	}
}

func TestClassifyImage(t *testing.T) {
	pixels := []Pixel{px(255, 0, 0, 255), px(255, 0, 0, 255), px(255, 255, 255, 255), px(0, 0, 0, 0)}

	ink, err := Filter(pixels)
	require.NoError(t, err)
	assert.Len(t, ink, 2)

	c, err := ClassifyImage(pixels)
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	again, err := ClassifyImage(pixels)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestClassifyImageWithoutInk(t *testing.T) {
	for _, pixels := range [][]Pixel{
		nil,
		{px(0, 0, 0, 0), px(0, 0, 0, 0)},
		{px(255, 255, 255), px(255, 255, 255, 255)},
	} {
		c, err := ClassifyImage(pixels)
		require.NoError(t, err)
		assert.Equal(t, Yellow, c)
	}
}

func TestClassifyImageTieBreak(t *testing.T) {
	pixels := []Pixel{px(0, 255, 0), px(0, 0, 255), px(0, 255, 0), px(0, 0, 255)}
	c, err := ClassifyImage(pixels)
	require.NoError(t, err)
	assert.Equal(t, Blue, c)
}

func TestAggregate(t *testing.T) {
	tally := Aggregate([]Category{Red, Red, Blue, Yellow, Red})

	expected := CorpusTally{Total: 5}
	expected.Counts[Red] = 3
	expected.Counts[Blue] = 1
	expected.Counts[Yellow] = 1

	if diff := cmp.Diff(expected, tally); diff != "" {
		t.Errorf("tally mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, tally.Count(Orange))
	assert.Equal(t, 0, tally.Count(Monochrome))
	assert.InDelta(t, 0.6, tally.Share(Red), 1e-12)
	assert.Equal(t, "yellow=1 orange=0 red=3 pink=0 blue=1 green=0 monochrome=0 total=5", tally.String())
}

func TestAggregateResults(t *testing.T) {
	tally := AggregateResults([]LogoResult{{Brand: "a", Category: Green}, {Brand: "b", Category: Green}})
	assert.Equal(t, 2, tally.Count(Green))
	assert.Equal(t, 2, tally.Total)
	assert.Zero(t, CorpusTally{}.Share(Green))
}

func TestCategoryText(t *testing.T) {
	for _, c := range Categories {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	assert.Equal(t, "Monochrome", Monochrome.Title())
	_, err := ParseCategory("purple")
	assert.Error(t, err)
	_, err = Category(42).MarshalText()
	assert.Error(t, err)
}
