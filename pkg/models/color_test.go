package models

import (
	"image/color"
	"testing"
)

// TestColorPacked verifies packing rounds and clamps each channel.
func TestColorPacked(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"red", Red, 0xff0000},
		{"background grey", RGB(0xbb, 0xbb, 0xbb), 0xbbbbbb},
		{"rounds near values", Color{254.9999, 0.4, 127.5}, 0xff0080},
		{"clamps overflow", Color{300, -20, 255}, 0xff00ff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Packed(); got != tt.want {
				t.Errorf("Packed() = %06x, want %06x", got, tt.want)
			}
		})
	}
}

// TestColorAttenuate verifies channel scaling.
func TestColorAttenuate(t *testing.T) {
	got := White.Attenuate(0.15)
	if got.Packed() != 0x262626 {
		t.Errorf("Attenuate(0.15) = %06x, want 262626", got.Packed())
	}
	if Cyan.Attenuate(0).Packed() != 0 {
		t.Error("Attenuate(0) should be black")
	}
}

// TestUnpackRoundTrip verifies packed values survive Unpack.
func TestUnpackRoundTrip(t *testing.T) {
	for _, p := range []uint32{0, 0x123456, 0xbbbbbb, 0xffffff} {
		if got := Unpack(p).Packed(); got != p {
			t.Errorf("Unpack(%06x).Packed() = %06x", p, got)
		}
	}
}

// TestParseColor verifies the accepted hex spellings.
func TestParseColor(t *testing.T) {
	for _, s := range []string{"#bbbbbb", "bbbbbb", "0xbbbbbb", " #BBBBBB "} {
		c, err := ParseColor(s)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", s, err)
			continue
		}
		if c.Packed() != 0xbbbbbb {
			t.Errorf("ParseColor(%q) = %s", s, c.Hex())
		}
	}

	for _, s := range []string{"", "#bbb", "#gggggg"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) should fail", s)
		}
	}
}

// TestFromColor verifies conversion from image/color values.
func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if got.Packed() != 0x0a141e {
		t.Errorf("FromColor = %s", got.Hex())
	}
	if rgba := got.ToRGBA(); rgba != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("ToRGBA = %v", rgba)
	}
}
