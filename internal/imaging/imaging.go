package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxDimension = 1280
	Quality      = 80

	ContentType = "image/webp"
)

// ToWebP decodes a jpeg, png or webp upload, scales it down so neither
// side exceeds MaxDimension and re-encodes it as lossy WebP.
func ToWebP(r io.Reader) ([]byte, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	switch format {
	case "jpeg", "png", "webp":
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	dst := Fit(src, MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit returns src unchanged when it already fits into limit x limit.
func Fit(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return src
	}

	nw, nh := limit, limit
	if w >= h {
		nh = h * limit / w
	} else {
		nw = w * limit / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
