package circlez

import (
	"image/color"
	"testing"
)

// Verify at compile time that Pixel implements color.Color.
var _ color.Color = Pixel{}

func TestPixel_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		p                          Pixel
		wantR, wantG, wantB, wantA uint32
	}{
		{"black", Black, 0, 0, 0, 65535},
		{"white", White, 65535, 65535, 65535, 65535},
		{"red", RGB(255, 0, 0), 65535, 0, 0, 65535},
		{"mid", RGB(128, 64, 1), 128 * 257, 64 * 257, 257, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.p.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestPixelFromColor(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want Pixel
	}{
		{"nrgba opaque", color.NRGBA{R: 10, G: 20, B: 30, A: 255}, RGB(10, 20, 30)},
		{"nrgba translucent keeps hue", color.NRGBA{R: 200, G: 100, B: 50, A: 128}, RGB(200, 100, 50)},
		{"gray", color.Gray{Y: 77}, RGB(77, 77, 77)},
		{"pixel roundtrip", RGB(1, 2, 3), RGB(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelFromColor(tt.c); got != tt.want {
				t.Errorf("PixelFromColor(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Pixel
		wantErr bool
	}{
		{"#000000", Black, false},
		{"ffffff", White, false},
		{"#ff8800", RGB(255, 136, 0), false},
		{"#f80", RGB(255, 136, 0), false},
		{"abc", RGB(0xaa, 0xbb, 0xcc), false},
		{"", Pixel{}, true},
		{"#12345", Pixel{}, true},
		{"#gggggg", Pixel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Hex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Hex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPixel_String(t *testing.T) {
	if got := RGB(255, 136, 0).String(); got != "#ff8800" {
		t.Errorf("String() = %q, want %q", got, "#ff8800")
	}
}
