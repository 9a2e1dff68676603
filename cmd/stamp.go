package cmd

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Caption banner geometry, sized for basicfont.Face7x13.
const (
	captionBarHeight = 22
	captionInsetX    = 8
	captionCharWidth = 7
)

// stampCaption draws a dark banner across the bottom of the image with
// the caption in outlined text, and returns the mutated RGBA copy.
func stampCaption(img image.Image, caption string) *image.RGBA {
	rgba := toRGBA(img)
	b := rgba.Bounds()

	barTop := b.Max.Y - captionBarHeight
	if barTop < b.Min.Y {
		barTop = b.Min.Y
	}
	bar := image.Rect(b.Min.X, barTop, b.Max.X, b.Max.Y)
	draw.Draw(rgba, bar, image.NewUniform(color.RGBA{A: 180}), image.Point{}, draw.Over)

	maxChars := (b.Dx() - 2*captionInsetX) / captionCharWidth
	if maxChars < 1 {
		return rgba
	}
	if len(caption) > maxChars {
		if maxChars > 3 {
			caption = caption[:maxChars-3] + "..."
		} else {
			caption = caption[:maxChars]
		}
	}

	// Face7x13: 13px tall, 11px ascent.
	textX := b.Min.X + captionInsetX
	textY := barTop + (captionBarHeight-13)/2 + 11
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{A: 255}

	// Outline in 8 directions so the text stays readable over the banner
	// edge and any content behind it.
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(rgba, caption, textX+dx, textY+dy, outlineColor)
		}
	}
	drawString(rgba, caption, textX, textY, textColor)

	return rgba
}

// toRGBA converts any image to a drawable RGBA copy.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}

func drawString(dst *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
