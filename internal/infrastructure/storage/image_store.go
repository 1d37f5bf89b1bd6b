// Package storage converts inbound image payloads into files under the
// content directory and hands back relative references for the catalog.
package storage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"go.uber.org/zap"
)

// minDecodedBytes guards against corrupt or effectively empty payloads
const minDecodedBytes = 100

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,`)

// Config holds image pipeline settings
type Config struct {
	// Dir is the directory product images are written to
	Dir string
	// MaxWidth is the resize ceiling; images are never enlarged
	MaxWidth int
	// Quality is the JPEG re-encode quality (1-100)
	Quality int
	// Processing toggles resize/re-encode; when off, decoded bytes are
	// written as-is
	Processing bool
}

// ImageStore implements the image pipeline. Store never returns an error:
// every failure degrades to the placeholder reference or a raw fallback file.
type ImageStore struct {
	cfg    Config
	logger *zap.Logger
}

// NewImageStore creates the store and its content directory
func NewImageStore(cfg Config, logger *zap.Logger) (*ImageStore, error) {
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 800
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = 80
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageStore{cfg: cfg, logger: logger}, nil
}

// Placeholder returns the sentinel reference used when no real image exists
func (s *ImageStore) Placeholder() string {
	return catalog.PlaceholderImage
}

// Store converts a data-URI payload into a stored file and returns its
// relative reference. Empty input and the placeholder sentinel short-circuit
// to the placeholder; a non-data-URI value is assumed to be an
// already-stored reference and passed through unchanged. The filename embeds
// the product id (a creation timestamp), so concurrent saves cannot collide.
func (s *ImageStore) Store(input string, id int64) string {
	input = strings.TrimSpace(input)
	if input == "" || input == catalog.PlaceholderImage {
		return catalog.PlaceholderImage
	}

	m := dataURIPattern.FindStringSubmatch(input)
	if m == nil {
		return input
	}

	raw, err := base64.StdEncoding.DecodeString(input[len(m[0]):])
	if err != nil {
		s.logger.Warn("image payload is not valid base64, using placeholder",
			zap.Int64("product_id", id), zap.Error(err))
		return catalog.PlaceholderImage
	}
	if len(raw) < minDecodedBytes {
		s.logger.Warn("image payload below minimum size, using placeholder",
			zap.Int64("product_id", id), zap.Int("bytes", len(raw)))
		return catalog.PlaceholderImage
	}

	ext := extensionFor(m[1])
	if !s.cfg.Processing {
		return s.writeRaw(raw, fmt.Sprintf("producto_%d.%s", id, ext), id)
	}

	name := fmt.Sprintf("producto_%d.jpg", id)
	if err := s.writeProcessed(raw, name); err != nil {
		s.logger.Warn("image processing failed, writing raw fallback",
			zap.Int64("product_id", id), zap.Error(err))
		return s.writeRaw(raw, fmt.Sprintf("producto_%d_fallback.%s", id, ext), id)
	}
	return "images/" + name
}

// writeProcessed resizes to the maximum width (no enlargement) and re-encodes
// as compressed JPEG
func (s *ImageStore) writeProcessed(raw []byte, name string) error {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > s.cfg.MaxWidth {
		img = imaging.Resize(img, s.cfg.MaxWidth, 0, imaging.Lanczos)
	}
	path := filepath.Join(s.cfg.Dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(s.cfg.Quality)); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

// writeRaw writes the decoded bytes as given; if even that fails the caller
// gets the placeholder back
func (s *ImageStore) writeRaw(raw []byte, name string, id int64) string {
	if err := os.WriteFile(filepath.Join(s.cfg.Dir, name), raw, 0o644); err != nil {
		s.logger.Error("raw image write failed, using placeholder",
			zap.Int64("product_id", id), zap.Error(err))
		return catalog.PlaceholderImage
	}
	return "images/" + name
}

func extensionFor(subtype string) string {
	switch strings.ToLower(subtype) {
	case "jpeg", "jpg":
		return "jpg"
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	default:
		return "jpg"
	}
}
