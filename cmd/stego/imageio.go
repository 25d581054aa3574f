package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/bmp"
)

// readImage decodes any registered container (PNG, BMP, JPEG, GIF).
func readImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// writeImage encodes img losslessly, choosing BMP or PNG from the extension.
// Lossy containers would destroy the carried bits and are refused.
func writeImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(*bufio.Writer) error
	switch ext {
	case ".png", "":
		encode = func(w *bufio.Writer) error { return png.Encode(w, img) }
	case ".bmp":
		encode = func(w *bufio.Writer) error { return bmp.Encode(w, img) }
	default:
		return fmt.Errorf("unsupported output format %q: use .png or .bmp", ext)
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
	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return w.Flush()
}
