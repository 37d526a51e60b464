package chartshot

import (
	"bytes"
	"fmt"
	"image/png"
)

// IsBlank reports whether the PNG is mostly white: the mean of every RGB
// channel above threshold (0-255). Barchart intermittently serves empty
// shells to automation, which render as near-white pages.
func IsBlank(data []byte, threshold float64) (bool, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return false, nil
	}

	var rSum, gSum, bSum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rSum += float64(r >> 8)
			gSum += float64(g >> 8)
			bSum += float64(b >> 8)
		}
	}

	return rSum/n > threshold && gSum/n > threshold && bSum/n > threshold, nil
}
