package app

import "image/color"

var (
	backgroundColor      = color.RGBA{R: 0xff, G: 0xe8, B: 0x9e, A: 0xff}
	lightBackgroundColor = color.RGBA{R: 0xff, G: 0xf8, B: 0xae, A: 0xff}
	groundColor          = color.RGBA{R: 0x7b, G: 0x54, B: 0x39, A: 0xff}
	lightGroundColor     = color.RGBA{R: 0xb6, G: 0x8a, B: 0x52, A: 0xff}
	topLineColor         = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
)

// tierColors runs from the smallest ball to the largest.
var tierColors = []color.RGBA{
	{R: 0xc8, G: 0x1e, B: 0x3a, A: 0xff},
	{R: 0xf0, G: 0x5a, B: 0x4f, A: 0xff},
	{R: 0x9b, G: 0x4d, B: 0xca, A: 0xff},
	{R: 0xff, G: 0x9f, B: 0x1c, A: 0xff},
	{R: 0xf2, G: 0x7c, B: 0x22, A: 0xff},
	{R: 0xe6, G: 0x39, B: 0x46, A: 0xff},
	{R: 0xf4, G: 0xd3, B: 0x5e, A: 0xff},
	{R: 0xff, G: 0xb7, B: 0xc5, A: 0xff},
	{R: 0xf6, G: 0xe0, B: 0x4a, A: 0xff},
	{R: 0x8f, G: 0xd1, B: 0x4f, A: 0xff},
	{R: 0x2e, G: 0xa0, B: 0x4a, A: 0xff},
}

func tierColor(tier int) color.RGBA {
	if tier < 0 {
		return tierColors[0]
	}
	if tier >= len(tierColors) {
		return tierColors[len(tierColors)-1]
	}
	return tierColors[tier]
}

// fade scales a premultiplied colour by alpha in [0, 1].
func fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func darken(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * k), G: uint8(float64(c.G) * k), B: uint8(float64(c.B) * k), A: c.A}
}
