package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// FromGL converts bottom-up RGBA8 rows read from the OpenGL framebuffer
// into an image with the top-left origin.
func FromGL(pixels []byte, w, h int) (*image.RGBA, error) {
	stride := w * 4
	if w <= 0 || h <= 0 || len(pixels) != stride*h {
		return nil, fmt.Errorf("bad pixel data: %v bytes for %vx%v", len(pixels), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := pixels[(h-1-y)*stride : (h-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img, nil
}

// Encode writes the image in the format of the file extension (png, bmp).
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format: %q", ext)
	}
}

// Save writes the image into a file creating missing directories.
func Save(path string, img image.Image) (err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp":
	default:
		return fmt.Errorf("unsupported image format: %q", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err1 := f.Close(); err == nil {
			err = err1
		}
	}()
	return Encode(f, img, filepath.Ext(path))
}
