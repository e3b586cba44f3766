package receipt

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, "image/png"},
		{"gif87a", []byte("GIF87a trailing"), "image/gif"},
		{"gif89a", []byte("GIF89a trailing"), "image/gif"},
		{"bmp", []byte{0x42, 0x4d, 0x00, 0x00}, "image/bmp"},
		{"tiff little endian", []byte{0x49, 0x49, 0x2a, 0x00}, "image/tiff"},
		{"tiff big endian", []byte{0x4d, 0x4d, 0x00, 0x2a}, "image/tiff"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), ""},
		{"plain text", []byte("hello world"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMIMEType(tt.content); got != tt.want {
				t.Errorf("DetectMIMEType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateImage(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		mime, err := ValidateImage(pngImage(t, 100, 100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mime != "image/png" {
			t.Errorf("mime = %q, want image/png", mime)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		if _, err := ValidateImage(nil); !errors.Is(err, ErrNotAnImage) {
			t.Errorf("error = %v, want ErrNotAnImage", err)
		}
	})

	t.Run("oversized file", func(t *testing.T) {
		big := make([]byte, MaxFileSize+1)
		copy(big, []byte{0xff, 0xd8, 0xff})
		if _, err := ValidateImage(big); !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("error = %v, want ErrFileTooLarge", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		if _, err := ValidateImage([]byte("%PDF-1.4")); !errors.Is(err, ErrNotAnImage) {
			t.Errorf("error = %v, want ErrNotAnImage", err)
		}
	})

	t.Run("too small dimensions", func(t *testing.T) {
		if _, err := ValidateImage(pngImage(t, 5, 5)); !errors.Is(err, ErrImageDimensions) {
			t.Errorf("error = %v, want ErrImageDimensions", err)
		}
	})

	t.Run("undecodable format passes on magic bytes", func(t *testing.T) {
		mime, err := ValidateImage([]byte{0x42, 0x4d, 0x01, 0x02, 0x03})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mime != "image/bmp" {
			t.Errorf("mime = %q, want image/bmp", mime)
		}
	})
}
