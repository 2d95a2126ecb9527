// Package codec implements the JPEG collaborator pictDB's catalog package
// depends on only through its narrow interface (spec §6.2): probing a
// buffer's pixel dimensions, and resizing to fit inside a bounding box
// without enlarging. The catalog package never imports image/jpeg
// directly; this is the one place that does.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

// JPEG is the default Codec implementation, built on the standard
// library's JPEG support plus x/image/draw for resampling. The zero
// value is ready to use; unlike the original's vips binding, it carries
// no process-global state to initialise or tear down (spec §5 note on
// "process-global" codec libraries is a simplification this port makes
// deliberately, see DESIGN.md).
type JPEG struct {
	// Quality is the re-encode quality passed to image/jpeg's encoder.
	// Zero means jpeg.DefaultQuality.
	Quality int
}

// Probe decodes only the JPEG header and returns the image's dimensions.
func (c JPEG) Probe(buf []byte) (width, height uint32, err error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return 0, 0, fmt.Errorf("decode jpeg header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("decode jpeg header: non-positive dimensions")
	}
	return uint32(cfg.Width), uint32(cfg.Height), nil
}

// ResizeFit decodes buf, shrinks it to fit within maxW x maxH preserving
// aspect ratio, and re-encodes it as JPEG. It never enlarges: an image
// already within bounds is re-encoded at its original size (spec §4.9's
// shrink ratio is clamped to at most 1).
func (c JPEG) ResizeFit(buf []byte, maxW, maxH uint32) ([]byte, error) {
	src, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("decode jpeg: non-positive dimensions")
	}

	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if ratio > 1 || ratio <= 0 {
		ratio = 1
	}

	newW := maxInt(1, int(math.Round(float64(w)*ratio)))
	newH := maxInt(1, int(math.Round(float64(h)*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	opts := &jpeg.Options{Quality: c.Quality}
	if opts.Quality == 0 {
		opts.Quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(&out, dst, opts); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return out.Bytes(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
