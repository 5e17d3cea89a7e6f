package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Image holds averaged linear radiance per pixel, row-major with row 0 at the top
type Image struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the linear color at (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pix[y*img.Width+x]
}

// Row returns the pixels of scanline y; writes through the slice update the image
func (img *Image) Row(y int) []core.Vec3 {
	return img.Pix[y*img.Width : (y+1)*img.Width]
}

// Bytes encodes the image as packed RGB, three bytes per pixel
func (img *Image) Bytes(gamma float64) []byte {
	out := make([]byte, 0, 3*len(img.Pix))
	for _, c := range img.Pix {
		c = encodeGamma(c, gamma)
		out = append(out, toByte(c.X), toByte(c.Y), toByte(c.Z))
	}
	return out
}

// ToRGBA converts the image to an opaque image.RGBA for encoding
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetRGBA(x, y, vec3ToColor(img.At(x, y), gamma))
		}
	}
	return rgba
}

// vec3ToColor converts a linear color to RGBA with gamma encoding and clamping
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	c = encodeGamma(c, gamma)
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

// encodeGamma applies 1/gamma encoding; gamma 0 or 1 leaves the color linear
func encodeGamma(c core.Vec3, gamma float64) core.Vec3 {
	if gamma == 0 || gamma == 1 {
		return c
	}
	return c.GammaCorrect(gamma)
}

// toByte maps a component to clamp(255.999*c, 0, 255); NaN maps to 0
func toByte(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(core.ClampFloat(255.999*c, 0, 255))
}
