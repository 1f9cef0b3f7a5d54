package render

import (
	"image/color"
	"testing"
)

func TestLayoutStacksLinesBottomUp(t *testing.T) {
	layout := Layout{Width: 1920, Height: 1080, LineHeight: 60, LineGap: 10, MarginBottom: 200, SideMargin: 100}
	if got := layout.ContentWidth(); got != 1720 {
		t.Fatalf("ContentWidth = %d, want 1720", got)
	}
	if got := layout.LineX(); got != 100 {
		t.Fatalf("LineX = %d, want 100", got)
	}
	want := []int{670, 740, 810}
	for idx, y := range want {
		if got := layout.LineY(idx, 3); got != y {
			t.Fatalf("LineY(%d, 3) = %d, want %d", idx, got, y)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#FFD700")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if got != (color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}) {
		t.Fatalf("unexpected color %#v", got)
	}
	if lower, err := ParseHexColor("#0a0b0c"); err != nil || lower != (color.RGBA{R: 10, G: 11, B: 12, A: 255}) {
		t.Fatalf("lowercase parse = %#v, %v", lower, err)
	}

	for _, bad := range []string{"", "FFD700", "#FFD70", "#FFD7000", "#GGGGGG", "#+12345", "red", "#ff d700"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
