package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBars() []Bar {
	return []Bar{
		{Label: "Relax Massage", Value: decimal.NewFromInt(3000)},
		{Label: "Deep Tissue", Value: decimal.NewFromInt(1500)},
		{Label: "(deleted)", Value: decimal.Zero},
	}
}

func TestRenderScalesBars(t *testing.T) {
	img := Render("Revenue by service", sampleBars())

	assert.Equal(t, width, img.Bounds().Dx())

	// the largest bar reaches the end of the track, the half one stops midway
	track := width - labelW - valueW - padding*2
	y1 := padding*2 + rowHeight + rowHeight/2
	y2 := y1 + rowHeight
	assert.Equal(t, barColor, img.RGBAAt(padding+labelW+track-1, y1))
	assert.Equal(t, barColor, img.RGBAAt(padding+labelW+track/2-2, y2))
	assert.Equal(t, background, img.RGBAAt(padding+labelW+track/2+2, y2))
}

func TestEncode(t *testing.T) {
	img := Render("Revenue by day", sampleBars())

	var pngBuf bytes.Buffer
	require.NoError(t, Encode(&pngBuf, img, FormatPNG))
	decoded, err := png.Decode(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	var webpBuf bytes.Buffer
	require.NoError(t, Encode(&webpBuf, img, FormatWebP))
	cfg, err := webp.DecodeConfig(&webpBuf)
	require.NoError(t, err)
	assert.Equal(t, width, cfg.Width)

	assert.Error(t, Encode(&webpBuf, img, "gif"))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, "image/webp", f.ContentType())

	f, ok = ParseFormat("PNG")
	assert.True(t, ok)
	assert.Equal(t, "image/png", f.ContentType())

	_, ok = ParseFormat("gif")
	assert.False(t, ok)
}
