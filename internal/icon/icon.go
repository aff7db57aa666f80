// Package icon decodes an image file into the raw ARGB payload the
// _NET_WM_ICON property expects.
package icon

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Formats the launcher accepts as icon files.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError means the icon file could not be read or decoded. It is fatal
// only to the icon hint, never to the run.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode icon %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Image is a decoded icon: row-major 32-bit ARGB pixels, exactly
// Width*Height of them.
type Image struct {
	Width  int
	Height int
	Pixels []uint32
}

// Decode reads and decodes the icon file.
func Decode(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	img := &Image{Width: w, Height: h, Pixels: make([]uint32, 0, w*h)}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// _NET_WM_ICON carries straight (non-premultiplied) ARGB, so
			// go through NRGBA rather than the premultiplied RGBA() values.
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			px := uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			img.Pixels = append(img.Pixels, px)
		}
	}
	return img, nil
}

// Payload encodes the icon in _NET_WM_ICON wire order: width, height, then
// the pixels. Refuses to encode an image whose pixel count disagrees with
// its declared dimensions.
func (img *Image) Payload() ([]uint, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("icon dimensions %dx%d are not positive", img.Width, img.Height)
	}
	if len(img.Pixels) != img.Width*img.Height {
		return nil, fmt.Errorf("icon has %d pixels, want %d for %dx%d",
			len(img.Pixels), img.Width*img.Height, img.Width, img.Height)
	}
	data := make([]uint, 0, 2+len(img.Pixels))
	data = append(data, uint(img.Width), uint(img.Height))
	for _, px := range img.Pixels {
		data = append(data, uint(px))
	}
	return data, nil
}
