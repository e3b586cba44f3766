package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoders for dimension checks
	_ "image/jpeg" //
	_ "image/png"  //
)

// Upload limits for receipt images
const (
	MaxFileSize       = 10 * 1024 * 1024 // 10MB
	MinImageDimension = 10
	MaxImageDimension = 10000
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrNotAnImage      = errors.New("file content is not a supported image format")
	ErrImageDimensions = fmt.Errorf("image dimensions must be between %dx%d and %dx%d pixels",
		MinImageDimension, MinImageDimension, MaxImageDimension, MaxImageDimension)
)

// imageSignature maps leading magic bytes to a MIME type
type imageSignature struct {
	prefix []byte
	mime   string
}

var imageSignatures = []imageSignature{
	{[]byte{0xff, 0xd8, 0xff}, "image/jpeg"},
	{[]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, "image/png"},
	{[]byte("GIF87a"), "image/gif"},
	{[]byte("GIF89a"), "image/gif"},
	{[]byte{0x42, 0x4d}, "image/bmp"},
	{[]byte{0x49, 0x49, 0x2a, 0x00}, "image/tiff"},
	{[]byte{0x4d, 0x4d, 0x00, 0x2a}, "image/tiff"},
}

// DetectMIMEType identifies an image format from its magic bytes, returning
// an empty string for unrecognized content
func DetectMIMEType(content []byte) string {
	// WEBP is RIFF....WEBP, so the prefix alone is not enough.
	if bytes.HasPrefix(content, []byte("RIFF")) {
		if len(content) >= 12 && bytes.Equal(content[8:12], []byte("WEBP")) {
			return "image/webp"
		}
		return ""
	}
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(content, sig.prefix) {
			return sig.mime
		}
	}
	return ""
}

// ValidateImage checks size, format, and (where decodable) dimensions of an
// uploaded receipt image, returning its MIME type
func ValidateImage(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrNotAnImage
	}
	if len(content) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	mime := DetectMIMEType(content)
	if mime == "" {
		return "", ErrNotAnImage
	}

	// Dimension limits apply to the formats the stdlib can decode; other
	// accepted formats pass on magic bytes alone.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(content)); err == nil {
		if cfg.Width < MinImageDimension || cfg.Height < MinImageDimension ||
			cfg.Width > MaxImageDimension || cfg.Height > MaxImageDimension {
			return "", ErrImageDimensions
		}
	}

	return mime, nil
}
