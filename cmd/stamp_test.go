package cmd

import (
	"image"
	"image/color"
	"testing"
)

func TestStampCaption_DrawsBanner(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, white)
		}
	}

	out := stampCaption(src, "hello")

	if out.Bounds() != src.Bounds() {
		t.Errorf("bounds changed: got %v, want %v", out.Bounds(), src.Bounds())
	}

	// The banner darkens the bottom strip.
	r, g, b, _ := out.At(100, 95).RGBA()
	if r >= 0xffff && g >= 0xffff && b >= 0xffff {
		t.Error("pixel inside the caption bar should be darkened")
	}

	// Pixels above the bar stay untouched.
	r, g, b, _ = out.At(100, 10).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("pixel above the caption bar should stay white")
	}
}

func TestStampCaption_TruncatesLongCaption(t *testing.T) {
	// Narrow image: only a handful of characters fit.
	src := image.NewRGBA(image.Rect(0, 0, 80, 60))
	long := "this caption is far too long for an 80px wide image"

	// Must not panic on overflow; the caption gets truncated internally.
	out := stampCaption(src, long)
	if out == nil {
		t.Fatal("stampCaption returned nil")
	}
}

func TestStampCaption_TinyImage(t *testing.T) {
	// Too narrow for any character: bar is drawn, text skipped.
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := stampCaption(src, "caption")
	if out == nil {
		t.Fatal("stampCaption returned nil")
	}
	if out.Bounds() != src.Bounds() {
		t.Errorf("bounds changed: got %v, want %v", out.Bounds(), src.Bounds())
	}
}

func TestToRGBA_CopiesPixels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(2, 2, color.Gray{Y: 200})

	rgba := toRGBA(src)

	r, _, _, _ := rgba.At(2, 2).RGBA()
	if r == 0 {
		t.Error("converted image should carry the source pixel value")
	}
	// Mutating the copy must not touch the source.
	rgba.Set(0, 0, color.RGBA{R: 255, A: 255})
	if src.GrayAt(0, 0).Y != 0 {
		t.Error("mutating the RGBA copy should not affect the source image")
	}
}
