package rasterio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/raster"
)

// ErrUnsupportedFormat is returned for a file extension with no codec.
var ErrUnsupportedFormat = fmt.Errorf("rasterio: %w: unsupported file format", voxlab.ErrConfiguration)

// codec is an image container selected by file extension.
type codec int

const (
	codecPNG codec = iota
	codecTIFF
)

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return codecPNG, nil
	case ".tif", ".tiff":
		return codecTIFF, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ReadImage decodes a PNG or TIFF file into a 2D raster.
func ReadImage(path string) (*raster.Raster, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, c == codecTIFF)
}

// Decode reads a PNG (or TIFF when tiffData is set) image from rd.
func Decode(rd io.Reader, tiffData bool) (*raster.Raster, error) {
	var (
		img image.Image
		err error
	)
	if tiffData {
		img, err = tiff.Decode(rd)
	} else {
		img, err = png.Decode(rd)
	}
	if err != nil {
		return nil, fmt.Errorf("rasterio: decode: %w", err)
	}

	return raster.FromImage(img)
}

// WriteImage encodes a 2D raster as PNG or TIFF according to the
// extension of path. Float32 rasters are clamped to 16 bits.
func WriteImage(path string, r *raster.Raster) (err error) {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	img, err := r.Image()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if c == codecTIFF {
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return png.Encode(f, img)
}

// ReadStack reads every PNG and TIFF file of dir, in lexical order, as the
// slices of a 3D raster. All images must have the same size.
func ReadStack(dir string) (*raster.Raster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := codecFor(e.Name()); err == nil {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", raster.ErrInvalidShape, dir)
	}
	slices.Sort(names)

	stack := make([]*raster.Raster, len(names))
	for i, name := range names {
		if stack[i], err = ReadImage(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("rasterio: slice %s: %w", name, err)
		}
	}

	return raster.Stack(stack)
}

// WriteStack writes each slice of r to dir as slice_0000.tif,
// slice_0001.tif and so on. A 2D raster is written as a single slice.
func WriteStack(dir string, r *raster.Raster) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, r.Depth())
	for z := 0; z < r.Depth(); z++ {
		s := r
		if r.Dims() == 3 {
			var err error
			if s, err = r.Slice(z); err != nil {
				return nil, err
			}
		}
		path := filepath.Join(dir, fmt.Sprintf("slice_%04d.tif", z))
		if err := WriteImage(path, s); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
