package carrier

import (
	"image"

	"github.com/yyyoichi/stego_zero/internal/packer"
)

type Canvas = packer.Canvas

var (
	_ Canvas = (*Image)(nil)
	_ Canvas = (*rgbaImage)(nil)
)

// rgbaImage writes into an *image.RGBA. Channel values are stored as is, which
// is exact for opaque pixels.
type rgbaImage struct {
	img           *image.RGBA
	width, height int
}

func wrapRGBA(img *image.RGBA) *rgbaImage {
	b := img.Bounds()
	return &rgbaImage{img: img, width: b.Dx(), height: b.Dy()}
}

func (c *rgbaImage) Width() int  { return c.width }
func (c *rgbaImage) Height() int { return c.height }

func (c *rgbaImage) RGB(x, y int) [3]uint8 {
	i := c.offset(x, y)
	p := c.img.Pix[i : i+3 : i+3]
	return [3]uint8{p[0], p[1], p[2]}
}

func (c *rgbaImage) SetRGB(x, y int, rgb [3]uint8) {
	i := c.offset(x, y)
	p := c.img.Pix[i : i+3 : i+3]
	p[0], p[1], p[2] = rgb[0], rgb[1], rgb[2]
}

func (c *rgbaImage) offset(x, y int) int {
	o := c.img.Rect.Min
	return c.img.PixOffset(o.X+x, o.Y+y)
}
