package icons

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	blue  = color.RGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func renderOpts() Options {
	return Options{
		Label:      "K",
		Background: "#4A90E2",
		Panel:      "#FFFFFF",
	}
}

func TestRender_Dimensions(t *testing.T) {
	for _, size := range []int{16, 32, 48, 128} {
		img, err := Render(size, renderOpts())
		require.NoError(t, err)

		bounds := img.Bounds()
		assert.Equal(t, size, bounds.Dx(), "width for size %d", size)
		assert.Equal(t, size, bounds.Dy(), "height for size %d", size)
	}
}

func TestRender_CornersAreBackground(t *testing.T) {
	const size = 128
	img, err := Render(size, renderOpts())
	require.NoError(t, err)

	for _, p := range [][2]int{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}} {
		assert.Equal(t, blue, img.RGBAAt(p[0], p[1]), "corner (%d,%d)", p[0], p[1])
	}
}

func TestRender_PanelIsWhite(t *testing.T) {
	// For size 128 the panel starts at margin 21 plus outline 6. A point
	// just inside it, left of the centered letter, must be pure panel.
	img, err := Render(128, renderOpts())
	require.NoError(t, err)

	assert.Equal(t, white, img.RGBAAt(38, 64))
	assert.Equal(t, white, img.RGBAAt(89, 64))
}

func TestRender_LetterInkPresent(t *testing.T) {
	const size = 128
	img, err := Render(size, renderOpts())
	require.NoError(t, err)

	// The letter is drawn in the background color on the white panel, so
	// the panel's central region must contain blue pixels.
	ink := 0
	for y := 40; y < 88; y++ {
		for x := 40; x < 88; x++ {
			if img.RGBAAt(x, y) == blue {
				ink++
			}
		}
	}
	assert.Positive(t, ink, "expected letter pixels on the panel")
}

func TestRender_EmptyLabelLeavesPanelBlank(t *testing.T) {
	const size = 128
	opts := renderOpts()
	opts.Label = ""

	img, err := Render(size, opts)
	require.NoError(t, err)

	for y := 40; y < 88; y++ {
		for x := 40; x < 88; x++ {
			assert.Equal(t, white, img.RGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRender_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		_, err := Render(size, renderOpts())
		assert.Error(t, err, "size %d", size)
	}
}

func TestRender_InvalidColors(t *testing.T) {
	opts := renderOpts()
	opts.Background = "blue"
	_, err := Render(16, opts)
	assert.Error(t, err)

	opts = renderOpts()
	opts.Panel = "#12345"
	_, err = Render(16, opts)
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#4A90E2", want: blue},
		{in: "4A90E2", want: blue},
		{in: "#fff", want: white},
		{in: "#FFFFFF", want: white},
		{in: " #4A90E2 ", want: blue},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
		{in: "not-a-color", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseHexColor(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseHexColor(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseHexColor(%q)", tt.in)
	}
}
