package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/stylizer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an encoded image format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath guesses the output format from a file extension,
// defaulting to PNG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	default:
		return FormatPNG
	}
}

// Decode reads a PNG, JPEG, GIF, WebP, BMP or TIFF image into a PixelBuffer.
// Any failure wraps stylizer.ErrDecodeFailure.
func Decode(r io.Reader) (*stylizer.PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stylizer.ErrDecodeFailure, err)
	}
	return stylizer.PixelBufferFromImage(img)
}

func DecodeBytes(data []byte) (*stylizer.PixelBuffer, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeDataURI decodes an RFC 2397 data URI such as
// "data:image/png;base64,iVBOR...".
func DecodeDataURI(uri string) (*stylizer.PixelBuffer, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", stylizer.ErrDecodeFailure)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without payload", stylizer.ErrDecodeFailure)
	}
	var data []byte
	var err error
	if strings.HasSuffix(meta, ";base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stylizer.ErrDecodeFailure, err)
	}
	return DecodeBytes(data)
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *stylizer.PixelBuffer, format Format) error {
	img := buf.NRGBA()
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported format %q", format)
}

// EncodeDataURI encodes buf as a base64 PNG data URI.
func EncodeDataURI(buf *stylizer.PixelBuffer) (string, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, buf.NRGBA()); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b.Bytes()), nil
}

func ReadImage(path string) (*stylizer.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// SaveImage encodes buf in the format implied by filename's extension.
func SaveImage(buf *stylizer.PixelBuffer, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, buf, FormatFromPath(filename)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
