package icons

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Render draws a single icon: a colored square holding a rounded panel
// with the label letter centered on it.
func Render(size int, opts Options) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size: %d", size)
	}

	bg, err := parseHexColor(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	panel, err := parseHexColor(opts.Panel)
	if err != nil {
		return nil, fmt.Errorf("panel color: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// The panel sits inside a fixed margin. Its outline is drawn in the
	// background color, so the visible panel shrinks by the outline
	// width on every side.
	margin := size / 6
	outline := size / 20
	radius := size/8 - outline
	if radius < 0 {
		radius = 0
	}

	inset := margin + outline
	fillRoundedRect(img, image.Rect(inset, inset, size-inset, size-inset), radius, panel)

	drawLabel(img, size, opts.Label, bg)
	return img, nil
}

// fillRoundedRect paints an axis-aligned rounded rectangle onto img.
func fillRoundedRect(img *image.RGBA, r image.Rectangle, radius int, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if roundedRectContains(r, radius, x, y) {
				img.Set(x, y, c)
			}
		}
	}
}

// roundedRectContains reports whether the pixel at (x, y) lies inside the
// rounded rectangle r with the given corner radius.
func roundedRectContains(r image.Rectangle, radius, x, y int) bool {
	if radius <= 0 {
		return true
	}

	// Distance from the radius-inset core rectangle; pixels beyond the
	// corner arcs fall outside.
	cx := clamp(x, r.Min.X+radius, r.Max.X-1-radius)
	cy := clamp(y, r.Min.Y+radius, r.Max.Y-1-radius)
	dx := x - cx
	dy := y - cy
	return dx*dx+dy*dy <= radius*radius
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// drawLabel scales the bitmap-font glyphs for the label onto the icon,
// standing about half the icon tall with a slight upward shift.
func drawLabel(img *image.RGBA, size int, label string, fg color.RGBA) {
	if label == "" {
		return
	}

	face := basicfont.Face7x13
	cellW := face.Advance * len([]rune(label))
	cellH := face.Height

	src := image.NewRGBA(image.Rect(0, 0, cellW, cellH))
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(label)

	targetH := size / 2
	targetW := cellW * targetH / cellH
	if targetW < 1 || targetH < 1 {
		return
	}

	x0 := (size - targetW) / 2
	y0 := (size-targetH)/2 - size/20
	dst := image.Rect(x0, y0, x0+targetW, y0+targetH)
	xdraw.NearestNeighbor.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
}

// parseHexColor parses a #RGB or #RRGGBB hex string into an opaque color.
func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}, nil
}
