// Package carrier adapts decoded images to the RGB canvas the codec packs
// bits into.
package carrier

import (
	"image"

	"golang.org/x/image/draw"
)

// Image is an RGB canvas backed by an *image.NRGBA. Alpha is carried along
// untouched.
type Image struct {
	img           *image.NRGBA
	width, height int
}

// New copies src into a fresh NRGBA canvas with the origin moved to (0, 0).
// Non-NRGBA sources are converted with draw.Src; semi-transparent pixels of
// premultiplied sources may lose RGB precision in that conversion.
func New(src image.Image) *Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if s, ok := src.(*image.NRGBA); ok {
		for y := range b.Dy() {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	} else {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	return Wrap(dst)
}

// Wrap uses img directly, so writes to the canvas mutate img.
func Wrap(img *image.NRGBA) *Image {
	b := img.Bounds()
	return &Image{img: img, width: b.Dx(), height: b.Dy()}
}

// Adopt wraps src in place when its pixel layout allows RGB writes without
// conversion. It reports false for every other image type.
func Adopt(src image.Image) (Canvas, bool) {
	switch s := src.(type) {
	case *image.NRGBA:
		return Wrap(s), true
	case *image.RGBA:
		return wrapRGBA(s), true
	}
	return nil, false
}

// View returns a canvas reading src as stored. NRGBA and RGBA pixels are
// used without conversion, so a reader sees exactly what Adopt wrote; other
// types are converted as by New. Writes to the result may reach src.
func View(src image.Image) Canvas {
	if c, ok := Adopt(src); ok {
		return c
	}
	return New(src)
}

func (c *Image) Width() int  { return c.width }
func (c *Image) Height() int { return c.height }

func (c *Image) RGB(x, y int) [3]uint8 {
	i := c.offset(x, y)
	p := c.img.Pix[i : i+3 : i+3]
	return [3]uint8{p[0], p[1], p[2]}
}

func (c *Image) SetRGB(x, y int, rgb [3]uint8) {
	i := c.offset(x, y)
	p := c.img.Pix[i : i+3 : i+3]
	p[0], p[1], p[2] = rgb[0], rgb[1], rgb[2]
}

// Copy returns an independent canvas with the same pixels.
func (c *Image) Copy() *Image {
	dst := *c.img
	dst.Pix = append([]uint8(nil), c.img.Pix...)
	return Wrap(&dst)
}

// Image returns the backing image.
func (c *Image) Image() *image.NRGBA {
	return c.img
}

func (c *Image) offset(x, y int) int {
	o := c.img.Rect.Min
	return c.img.PixOffset(o.X+x, o.Y+y)
}
