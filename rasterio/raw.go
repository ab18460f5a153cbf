package rasterio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/voxlab/raster"
)

// ErrCorrupt is returned when a raw container cannot be parsed.
var ErrCorrupt = errors.New("rasterio: corrupt raw container")

var rawMagic = [4]byte{'V', 'X', 'L', 'R'}

const rawVersion = 1

// rawChunk bounds the initial sample allocation of ReadRaw.
const rawChunk = 1 << 16

// rawHeader is the fixed-size prefix of a raw container.
type rawHeader struct {
	Magic   [4]byte
	Version uint8
	Dims    uint8
	Format  uint8
	_       uint8
	Width   uint32
	Height  uint32
	Depth   uint32
}

// WriteRaw writes r to w as a zstd-compressed raw container.
func WriteRaw(w io.Writer, r *raster.Raster) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	h := rawHeader{
		Magic:   rawMagic,
		Version: rawVersion,
		Dims:    uint8(r.Dims()),
		Format:  uint8(r.Format()),
		Width:   uint32(r.Width()),
		Height:  uint32(r.Height()),
		Depth:   uint32(r.Depth()),
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		enc.Close()
		return err
	}
	var buf [4]byte
	for _, v := range r.Data() {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		if _, err := bw.Write(buf[:]); err != nil {
			enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}

	return enc.Close()
}

// ReadRaw reads a raster written by WriteRaw.
func ReadRaw(rd io.Reader) (*raster.Raster, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var h rawHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if h.Magic != rawMagic || h.Version != rawVersion {
		return nil, fmt.Errorf("%w: bad magic or version %d", ErrCorrupt, h.Version)
	}
	format := raster.SampleFormat(h.Format)
	if !format.Valid() {
		return nil, fmt.Errorf("%w: format %d", ErrCorrupt, h.Format)
	}

	if h.Dims != 2 && h.Dims != 3 {
		return nil, fmt.Errorf("%w: %d dimensions", ErrCorrupt, h.Dims)
	}
	if h.Dims == 2 && h.Depth != 1 {
		return nil, fmt.Errorf("%w: 2D raster with depth %d", ErrCorrupt, h.Depth)
	}
	if h.Width == 0 || h.Height == 0 || h.Depth == 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrCorrupt, h.Width, h.Height, h.Depth)
	}
	plane := uint64(h.Width) * uint64(h.Height)
	if plane > math.MaxInt/uint64(h.Depth) {
		return nil, fmt.Errorf("%w: %dx%dx%d overflows", ErrCorrupt, h.Width, h.Height, h.Depth)
	}
	n := int(plane * uint64(h.Depth))

	// The header is untrusted: samples are read in bounded chunks so a
	// truncated stream fails before the full raster is allocated.
	samples := make([]float32, 0, min(n, rawChunk))
	var buf [4]byte
	for len(samples) < n {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: sample %d: %w", ErrCorrupt, len(samples), err)
		}
		samples = append(samples, math.Float32frombits(binary.LittleEndian.Uint32(buf[:])))
	}

	var r *raster.Raster
	if h.Dims == 2 {
		r, err = raster.New2D(int(h.Width), int(h.Height), format)
	} else {
		r, err = raster.New3D(int(h.Width), int(h.Height), int(h.Depth), format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	copy(r.Data(), samples)

	return r, nil
}

// SaveRaw writes r to the file at path.
func SaveRaw(path string, r *raster.Raster) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteRaw(f, r)
}

// LoadRaw reads the raw container at path.
func LoadRaw(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRaw(f)
}

// Load reads a raster by extension: .vxl raw containers, PNG or TIFF
// images, or a directory holding an image stack.
func Load(path string) (*raster.Raster, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return ReadStack(path)
	}
	if isRaw(path) {
		return LoadRaw(path)
	}
	return ReadImage(path)
}

// Save writes r by extension: .vxl raw containers or PNG/TIFF images.
// 3D rasters can only be saved as raw containers or with WriteStack.
func Save(path string, r *raster.Raster) error {
	if isRaw(path) {
		return SaveRaw(path, r)
	}
	if r.Dims() == 3 {
		return fmt.Errorf("%w: 3D raster needs a .vxl path or an image stack", ErrUnsupportedFormat)
	}
	return WriteImage(path, r)
}

// RawExt is the file extension of raw containers.
const RawExt = ".vxl"

func isRaw(path string) bool {
	return strings.EqualFold(filepath.Ext(path), RawExt)
}
