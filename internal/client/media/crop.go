package media

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	// Decoders for the source formats users actually pick.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// CanonicalMime is the single output encoding every upload is normalized to,
// regardless of the source file's format.
const CanonicalMime = "image/png"

// CanonicalFileName names the rasterized avatar object for ticket requests.
const CanonicalFileName = "avatar.png"

// CropRegion designates the sub-rectangle of the source image to keep, in
// source pixel space. Zoom and the center offsets mirror the crop tool's
// normalized state; they are bookkeeping for the interactive surface and do
// not affect rasterization, which reads only the pixel rectangle.
type CropRegion struct {
	X      int
	Y      int
	Width  int
	Height int

	Zoom    float64
	CenterX float64
	CenterY float64
}

// CenteredSquare returns the largest centered square crop for a w×h source.
func CenteredSquare(w, h int) CropRegion {
	side := w
	if h < w {
		side = h
	}
	return CropRegion{
		X:      (w - side) / 2,
		Y:      (h - side) / 2,
		Width:  side,
		Height: side,
		Zoom:   1,
	}
}

// SourceBounds decodes just the image header and returns its dimensions.
func SourceBounds(p *Preview) (w, h int, err error) {
	path, err := p.Path()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode config: %v", ErrRasterization, err)
	}
	return cfg.Width, cfg.Height, nil
}

// RasterizeCrop draws region of the preview's source image scaled to an
// outputSize×outputSize square and re-encodes it as PNG. Deterministic for a
// given (preview, region, outputSize) triple. Fails with ErrRasterization if
// the handle was released, the source cannot be decoded, or the region is
// degenerate.
func RasterizeCrop(p *Preview, region CropRegion, outputSize int) ([]byte, error) {
	if outputSize <= 0 {
		return nil, fmt.Errorf("%w: output size %d", ErrRasterization, outputSize)
	}
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("%w: empty crop region", ErrRasterization)
	}

	path, err := p.Path()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrRasterization, err)
	}

	srcRect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() {
		return nil, fmt.Errorf("%w: crop region outside source bounds", ErrRasterization)
	}

	dst := image.NewRGBA(image.Rect(0, 0, outputSize, outputSize))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, srcRect, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrRasterization, err)
	}
	return buf.Bytes(), nil
}
