// Package imageio loads target images into pixel buffers and writes results.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/circlez"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an output extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyImage is returned when a decoded image has zero width or height.
	ErrEmptyImage = errors.New("imageio: image has zero area")
)

// DefaultJPEGQuality is used by Save when quality is out of range.
const DefaultJPEGQuality = 95

// Load reads and decodes the image at path, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Load(path string) (*circlez.PixelBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return buf, nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*circlez.PixelBuffer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	buf := circlez.FromImage(img)
	if buf.Empty() {
		return nil, fmt.Errorf("imageio: decode %s: %w", format, ErrEmptyImage)
	}
	return buf, nil
}

// Save writes buf to path, choosing the encoder from the extension:
// .png, .jpg/.jpeg, .bmp, .tif/.tiff. Missing parent directories are created.
// quality applies to JPEG only; values outside 1..100 use DefaultJPEGQuality.
func Save(path string, buf *circlez.PixelBuffer, quality int) error {
	enc, err := encoderFor(path, quality)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("imageio: create directory: %w", err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := enc(f, buf.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: encode: %w", err)
	}
	return f.Close()
}

// Encode writes buf to w in the format implied by ext (".png", ".jpg", ...).
func Encode(w io.Writer, ext string, buf *circlez.PixelBuffer, quality int) error {
	enc, err := encoderFor(ext, quality)
	if err != nil {
		return err
	}
	if err := enc(w, buf.ToImage()); err != nil {
		return fmt.Errorf("imageio: encode: %w", err)
	}
	return nil
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(path string, quality int) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// SupportedExtension reports whether Save can write files with extension ext.
func SupportedExtension(ext string) bool {
	_, err := encoderFor(ext, 0)
	return err == nil
}

// OutputPath derives the result path for input: dir/<stem><suffix><ext>.
// ext must include the leading dot.
func OutputPath(input, dir, suffix, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+suffix+ext)
}
