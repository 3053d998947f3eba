// Package media turns uploaded image files into stored shop images.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"github.com/JonMunkholm/groupbuy/internal/shop"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// DefaultMaxSize matches the UPLOAD_MAX_IMAGE_SIZE default.
const (
	DefaultMaxSize = 5 << 20
	jpegQuality    = 85
)

var supportedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Loader reads and normalizes uploaded images.
type Loader struct {
	// MaxSize is the largest accepted upload in bytes. Zero means DefaultMaxSize.
	MaxSize int64
	// MaxWidth downsizes wider PNG and JPEG images, keeping the aspect
	// ratio. Zero disables resizing.
	MaxWidth int
}

// Load reads r fully, sniffs its content type and returns an image with a
// fresh ID. Only PNG, JPEG, GIF and WebP are accepted.
func (l Loader) Load(r io.Reader) (*shop.Image, error) {
	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", shop.ErrImageTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", shop.ErrUnsupportedImage)
	}

	contentType := http.DetectContentType(data)
	if !supportedTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", shop.ErrUnsupportedImage, contentType)
	}

	if l.MaxWidth > 0 && (contentType == "image/png" || contentType == "image/jpeg") {
		data, err = l.shrink(data, contentType)
		if err != nil {
			return nil, err
		}
	}

	return &shop.Image{
		ID:          uuid.New().String(),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// shrink re-encodes data at MaxWidth when the image is wider than that.
func (l Loader) shrink(data []byte, contentType string) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shop.ErrUnsupportedImage, err)
	}
	if cfg.Width <= l.MaxWidth {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shop.ErrUnsupportedImage, err)
	}
	resized := resize.Resize(uint(l.MaxWidth), 0, img, resize.Lanczos3)

	var out bytes.Buffer
	switch contentType {
	case "image/png":
		err = png.Encode(&out, resized)
	default:
		err = jpeg.Encode(&out, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encode resized image: %w", err)
	}
	return out.Bytes(), nil
}
