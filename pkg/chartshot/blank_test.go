package chartshot

import (
	"image/color"
	"testing"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name      string
		color     color.Color
		threshold float64
		want      bool
	}{
		{"white page", color.White, 240, true},
		{"near-white page", color.RGBA{245, 245, 245, 255}, 240, true},
		{"dark page", color.RGBA{30, 30, 30, 255}, 240, false},
		{"mid-gray page", color.RGBA{128, 128, 128, 255}, 240, false},
		{"one dark channel", color.RGBA{250, 250, 100, 255}, 240, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := makePNG(t, tt.color, 50, 50)
			got, err := IsBlank(data, tt.threshold)
			if err != nil {
				t.Fatalf("IsBlank failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsBlank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBlankInvalidData(t *testing.T) {
	if _, err := IsBlank([]byte("not a png"), 240); err == nil {
		t.Error("Expected an error for invalid PNG data")
	}
}
