package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// Image is a width × height grid of linear RGB colors. Pixel (0, 0) is the
// bottom left corner, matching the camera's pixel coordinates.
type Image struct {
	Width, Height int
	pixels        []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (img *Image) index(x, y int) int {
	return y*img.Width + x
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.pixels[img.index(x, y)]
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.pixels[img.index(x, y)] = c
}

// Clone returns a deep copy of the image
func (img *Image) Clone() *Image {
	return &Image{
		Width:  img.Width,
		Height: img.Height,
		pixels: append([]core.Vec3(nil), img.pixels...),
	}
}

// Accumulate folds a pass into the running average of the n passes already
// averaged into img: avg = (n·avg + pass) / (n+1).
func (img *Image) Accumulate(pass *Image, n int) {
	weight := float64(n)
	for i, c := range pass.pixels {
		sum := img.pixels[i].Multiply(weight).Add(c)
		img.pixels[i] = core.NewVec3(sum.X/(weight+1), sum.Y/(weight+1), sum.Z/(weight+1))
	}
}

// AverageLuminance returns the mean perceptual luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	if len(img.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.pixels {
		total += c.Luminance()
	}
	return total / float64(len(img.pixels))
}

// ToRGBA converts the image to 8 bits per channel. Rows are flipped so that
// pixel y = 0 ends up at the bottom of the raster, channels are clamped to
// [0, 1] and 255·c is truncated.
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgba.SetRGBA(x, img.Height-1-y, toColor(img.At(x, y)))
		}
	}
	return rgba
}

// FromRGBA converts an 8 bit raster back to linear colors, undoing the row flip of ToRGBA
func FromRGBA(src image.Image) *Image {
	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+img.Height-1-y).RGBA()
			img.Set(x, y, core.NewVec3(float64(r>>8)/255, float64(g>>8)/255, float64(b>>8)/255))
		}
	}
	return img
}

func toColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
