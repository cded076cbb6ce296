package circlez

import (
	"image"
	"image/color"
	"testing"
)

// Verify at compile time that PixelBuffer implements image.Image.
var _ image.Image = (*PixelBuffer)(nil)

func TestNewPixelBuffer_Black(t *testing.T) {
	b := NewPixelBuffer(4, 3)
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", b.Width(), b.Height())
	}
	if len(b.Pixels()) != 12 {
		t.Fatalf("len(Pixels()) = %d, want 12", len(b.Pixels()))
	}
	for i, p := range b.Pixels() {
		if p != Black {
			t.Fatalf("pixel %d = %v, want black", i, p)
		}
	}
}

func TestNewPixelBuffer_Empty(t *testing.T) {
	tests := []struct{ w, h int }{{0, 0}, {0, 5}, {5, 0}, {-1, 3}}
	for _, tt := range tests {
		if b := NewPixelBuffer(tt.w, tt.h); !b.Empty() {
			t.Errorf("NewPixelBuffer(%d, %d).Empty() = false, want true", tt.w, tt.h)
		}
	}
}

func TestPixelBuffer_SetAndAt(t *testing.T) {
	b := NewPixelBuffer(5, 5)
	red := RGB(255, 0, 0)
	b.Set(2, 3, red)

	if got := b.PixelAt(2, 3); got != red {
		t.Errorf("PixelAt(2, 3) = %v, want %v", got, red)
	}
	if got := b.Row(3)[2]; got != red {
		t.Errorf("Row(3)[2] = %v, want %v", got, red)
	}
	if got := b.Pixels()[3*5+2]; got != red {
		t.Errorf("Pixels()[17] = %v, want %v", got, red)
	}
}

// TestPixelBuffer_OutOfBounds verifies out-of-bounds coordinates are silently ignored.
func TestPixelBuffer_OutOfBounds(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	b.Fill(White)
	orig := b.Clone()

	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10},
		{-100, -100}, {100, 100},
	}
	for _, c := range oob {
		b.Set(c.x, c.y, RGB(1, 2, 3))
		if got := b.PixelAt(c.x, c.y); got != Black {
			t.Errorf("PixelAt(%d, %d) = %v, want black", c.x, c.y, got)
		}
	}
	if !b.Equal(orig) {
		t.Error("out-of-bounds writes modified the buffer")
	}
}

func TestPixelBuffer_CloneIsDeep(t *testing.T) {
	b := NewPixelBuffer(3, 3)
	c := b.Clone()
	c.Set(1, 1, White)

	if b.PixelAt(1, 1) != Black {
		t.Error("mutating the clone mutated the original")
	}
	if b.Equal(c) {
		t.Error("Equal() = true after divergent writes")
	}
}

func TestPixelBuffer_EqualDifferentSize(t *testing.T) {
	if NewPixelBuffer(2, 3).Equal(NewPixelBuffer(3, 2)) {
		t.Error("Equal() = true for 2x3 vs 3x2")
	}
}

func TestPixelBuffer_ImageRoundtrip(t *testing.T) {
	b := NewPixelBuffer(3, 2)
	b.Set(0, 0, RGB(10, 20, 30))
	b.Set(2, 1, RGB(200, 100, 50))

	img := b.ToImage()
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("ToImage().Bounds() = %v", img.Bounds())
	}
	if c := img.NRGBAAt(2, 1); c != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("NRGBAAt(2, 1) = %v", c)
	}

	back := FromImage(img)
	if !back.Equal(b) {
		t.Error("FromImage(ToImage()) differs from the original")
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	src.Set(7, 6, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	b := FromImage(src)
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", b.Width(), b.Height())
	}
	if got := b.PixelAt(0, 0); got != RGB(1, 2, 3) {
		t.Errorf("PixelAt(0, 0) = %v, want #010203", got)
	}
	if got := b.PixelAt(2, 1); got != RGB(9, 8, 7) {
		t.Errorf("PixelAt(2, 1) = %v, want #090807", got)
	}
}

func TestFromImage_SubImageNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 50, G: 60, B: 70, A: 255})
	sub := src.SubImage(image.Rect(1, 1, 4, 4))

	b := FromImage(sub)
	if got := b.PixelAt(1, 1); got != RGB(50, 60, 70) {
		t.Errorf("PixelAt(1, 1) = %v, want #323c46", got)
	}
}
