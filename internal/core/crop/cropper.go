package crop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const (
	MinZoom     = 1.0
	MaxZoom     = 3.0
	JPEGQuality = 95

	// DefaultMaxPixels bounds the decoded size of a source image.
	DefaultMaxPixels = 40_000_000

	ContentType = "image/jpeg"
)

var (
	ErrDecode           = errors.New("image could not be decoded")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image dimensions exceed limit")
)

var supportedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImageType sniffs the content type of data and returns it with its file extension.
func DetectImageType(data []byte) (string, string, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := supportedTypes[m.String()]; ok {
			return m.String(), ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
}

// Params is the interactive crop selection: an offset in source pixels from the centred square,
// and a zoom factor.
type Params struct {
	OffsetX float64 `json:"x" form:"cropX"`
	OffsetY float64 `json:"y" form:"cropY"`
	Zoom    float64 `json:"zoom" form:"zoom"`
}

func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Region returns the square crop area for bounds. It never extends outside bounds.
func Region(bounds image.Rectangle, p Params) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return image.Rectangle{Min: bounds.Min, Max: bounds.Min}
	}

	side := int(float64(min(w, h)) / ClampZoom(p.Zoom))
	if side < 1 {
		side = 1
	}

	x := bounds.Min.X + (w-side)/2 + roundOffset(p.OffsetX)
	y := bounds.Min.Y + (h-side)/2 + roundOffset(p.OffsetY)
	x = clamp(x, bounds.Min.X, bounds.Max.X-side)
	y = clamp(y, bounds.Min.Y, bounds.Max.Y-side)

	return image.Rect(x, y, x+side, y+side)
}

type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Region      image.Rectangle
}

type Cropper struct {
	maxSide   int
	maxPixels int64
}

type Option func(*Cropper)

// WithMaxPixels sets the largest width*height accepted before decoding. Non-positive values keep
// the default.
func WithMaxPixels(n int64) Option {
	return func(c *Cropper) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// New returns a Cropper. A positive maxSide downscales larger crops; output is never upscaled.
func New(maxSide int, opts ...Option) *Cropper {
	c := &Cropper{maxSide: maxSide, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cropper) Crop(ctx context.Context, src []byte, p Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, _, err := DetectImageType(src); err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	if int64(cfg.Width)*int64(cfg.Height) > c.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	region := Region(img.Bounds(), p)
	if region.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	out := imaging.Crop(img, region)
	if c.maxSide > 0 && region.Dx() > c.maxSide {
		out = imaging.Resize(out, c.maxSide, c.maxSide, imaging.Lanczos)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	b := out.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		ContentType: ContentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Region:      region,
	}, nil
}

func roundOffset(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(math.Max(math.Min(v, math.MaxInt32), math.MinInt32)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
