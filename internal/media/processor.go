package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

const DefaultMaxDimension = 3840

var (
	ErrEmptyImage       = errors.New("media: empty image data")
	ErrImageTooLarge    = errors.New("media: image exceeds size limit")
	ErrUnsupportedImage = errors.New("media: unsupported image format")
	ErrImageDimensions  = errors.New("media: image dimensions out of range")
)

var allowedFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Image is a validated upload held in memory and ready to store.
type Image struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Inspect reads at most maxBytes, decodes the header and rejects anything that
// is not a supported raster image within maxDimension on both sides.
func Inspect(upload Upload, maxBytes int64, maxDimension int) (*Image, error) {
	if upload.Reader == nil {
		return nil, ErrEmptyImage
	}
	if maxBytes > 0 && upload.Size > maxBytes {
		return nil, ErrImageTooLarge
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	reader := upload.Reader
	if maxBytes > 0 {
		reader = io.LimitReader(upload.Reader, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	contentType, ok := allowedFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if declared := normalizeContentType(upload.ContentType, upload.FileName); declared != "" && declared != contentType {
		return nil, fmt.Errorf("%w: declared %s but content is %s", ErrUnsupportedImage, declared, contentType)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageDimensions, cfg.Width, cfg.Height)
	}

	return &Image{
		Bytes:       data,
		ContentType: contentType,
		Extension:   extensionFor(format),
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

func normalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "application/octet-stream" {
		ct = ""
	}
	if ct != "" {
		if ct == "image/jpg" {
			return "image/jpeg"
		}
		return ct
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return ""
}
