// Package quality measures how far a stego image departs from its cover.
package quality

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrBoundsMismatch = errors.New("images differ in size")

// Report compares two images of the same size channel by channel.
type Report struct {
	// MSE per channel (R, G, B) and over all three.
	MSE     [3]float64
	MSEAll  float64
	PSNR    float64 // dB, +Inf for identical images
	MaxDiff float64 // largest absolute channel difference

	ChangedChannels int
	ChangedPixels   int
}

// Measure compares cover and stego. Channels are compared as 8 bit
// non-premultiplied values.
func Measure(cover, stego image.Image) (Report, error) {
	cb, sb := cover.Bounds(), stego.Bounds()
	if cb.Dx() != sb.Dx() || cb.Dy() != sb.Dy() {
		return Report{}, fmt.Errorf("%w: %v vs %v", ErrBoundsMismatch, cb.Size(), sb.Size())
	}
	area := cb.Dx() * cb.Dy()
	var r Report
	if area == 0 {
		r.PSNR = math.Inf(1)
		return r, nil
	}

	sq := [3][]float64{make([]float64, area), make([]float64, area), make([]float64, area)}
	abs := make([]float64, 0, area*3)
	idx := 0
	for y := range cb.Dy() {
		for x := range cb.Dx() {
			c := color.NRGBAModel.Convert(cover.At(cb.Min.X+x, cb.Min.Y+y)).(color.NRGBA)
			s := color.NRGBAModel.Convert(stego.At(sb.Min.X+x, sb.Min.Y+y)).(color.NRGBA)
			changed := false
			for ch, d := range [3]float64{
				float64(c.R) - float64(s.R),
				float64(c.G) - float64(s.G),
				float64(c.B) - float64(s.B),
			} {
				sq[ch][idx] = d * d
				abs = append(abs, math.Abs(d))
				if d != 0 {
					r.ChangedChannels++
					changed = true
				}
			}
			if changed {
				r.ChangedPixels++
			}
			idx++
		}
	}

	for ch := range sq {
		r.MSE[ch] = stat.Mean(sq[ch], nil)
	}
	r.MSEAll = stat.Mean(r.MSE[:], nil)
	r.MaxDiff = floats.Max(abs)
	r.PSNR = PSNR(r.MSEAll)
	return r, nil
}

// PSNR converts a mean squared error of 8 bit samples to decibels.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

func (r Report) String() string {
	return fmt.Sprintf("psnr=%.2fdB mse=%.4f (r=%.4f g=%.4f b=%.4f) max_diff=%.0f changed_channels=%d changed_pixels=%d",
		r.PSNR, r.MSEAll, r.MSE[0], r.MSE[1], r.MSE[2], r.MaxDiff, r.ChangedChannels, r.ChangedPixels)
}
