package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// FromImage converts a decoded image into a 2D raster. *image.Gray maps to
// Gray8 and *image.Gray16 to Gray16; any other image is converted to 8-bit
// luminance first.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.Gray16:
		r, err := New2D(b.Dx(), b.Dy(), Gray16)
		if err != nil {
			return nil, err
		}
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r.data[r.Index(x, y, 0)] = float32(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y)
			}
		}
		return r, nil
	case *image.Gray:
		return fromGray(src)
	default:
		gray := image.NewGray(b)
		draw.Draw(gray, b, img, b.Min, draw.Src)
		return fromGray(gray)
	}
}

func fromGray(src *image.Gray) (*Raster, error) {
	b := src.Bounds()
	r, err := New2D(b.Dx(), b.Dy(), Gray8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+b.Dx()]
		for x, v := range row {
			r.data[r.Index(x, y, 0)] = float32(v)
		}
	}

	return r, nil
}

// Image renders a 2D raster as *image.Gray (Gray8) or *image.Gray16
// (Gray16 and Float32, the latter clamped to [0, 65535]).
func (r *Raster) Image() (image.Image, error) {
	if r.dims != 2 {
		return nil, fmt.Errorf("%w: cannot render a %dD raster as an image", ErrInvalidShape, r.dims)
	}
	rect := image.Rect(0, 0, r.width, r.height)
	if r.format == Gray8 {
		img := image.NewGray(rect)
		for i, v := range r.data {
			img.Pix[i] = uint8(Gray8.Clamp(float64(v)))
		}
		return img, nil
	}
	img := image.NewGray16(rect)
	for i, v := range r.data {
		u := uint16(Gray16.Clamp(float64(v)))
		img.Pix[2*i] = uint8(u >> 8)
		img.Pix[2*i+1] = uint8(u)
	}

	return img, nil
}
