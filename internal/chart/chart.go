// Package chart draws the small bar charts shown on the statistics screen.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/shopspring/decimal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(s)) {
	case FormatWebP, "":
		return FormatWebP, true
	case FormatPNG:
		return FormatPNG, true
	default:
		return "", false
	}
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/webp"
}

type Bar struct {
	Label string
	Value decimal.Decimal
}

const (
	width     = 640
	rowHeight = 22
	padding   = 10
	labelW    = 160
	valueW    = 90
)

var (
	background = color.RGBA{0xFA, 0xF7, 0xF2, 0xFF}
	barColor   = color.RGBA{0x7C, 0x3A, 0xED, 0xFF}
	textColor  = color.RGBA{0x33, 0x33, 0x33, 0xFF}
)

// Render draws one horizontal bar per entry, scaled to the largest value.
func Render(title string, bars []Bar) *image.RGBA {
	height := padding*3 + rowHeight*(len(bars)+1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	text(img, padding, padding+13, title)

	top := decimal.Zero
	for _, b := range bars {
		if b.Value.GreaterThan(top) {
			top = b.Value
		}
	}

	track := width - labelW - valueW - padding*2
	for i, b := range bars {
		y := padding*2 + rowHeight*(i+1)

		text(img, padding, y+13, clip(b.Label, labelW/7-1))

		w := 0
		if top.IsPositive() {
			w = int(b.Value.Div(top).Mul(decimal.NewFromInt(int64(track))).IntPart())
		}
		if w < 1 && b.Value.IsPositive() {
			w = 1
		}
		bar := image.Rect(padding+labelW, y+3, padding+labelW+w, y+rowHeight-3)
		draw.Draw(img, bar, &image.Uniform{C: barColor}, image.Point{}, draw.Src)

		text(img, padding+labelW+track+padding, y+13, b.Value.StringFixed(2))
	}

	return img
}

// Encode writes img in the requested format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("unsupported chart format %q", f)
	}
}

func text(img draw.Image, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
