package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbsolutions/storefront/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImageStore(t *testing.T, processing bool) (*ImageStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewImageStore(Config{Dir: dir, MaxWidth: 800, Quality: 80, Processing: processing}, zap.NewNop())
	require.NoError(t, err)
	return store, dir
}

// pngDataURI encodes a generated PNG of the given width as a base64 data URI
func pngDataURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.Greater(t, buf.Len(), minDecodedBytes)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImageStore_Store(t *testing.T) {
	t.Run("empty input returns the placeholder", func(t *testing.T) {
		store, _ := newImageStore(t, true)
		assert.Equal(t, catalog.PlaceholderImage, store.Store("", 1))
		assert.Equal(t, catalog.PlaceholderImage, store.Store("   ", 1))
	})

	t.Run("placeholder sentinel passes through", func(t *testing.T) {
		store, _ := newImageStore(t, true)
		assert.Equal(t, catalog.PlaceholderImage, store.Store(catalog.PlaceholderImage, 1))
	})

	t.Run("already-stored reference passes through unchanged", func(t *testing.T) {
		store, _ := newImageStore(t, true)
		assert.Equal(t, "images/producto_42.jpg", store.Store("images/producto_42.jpg", 1))
	})

	t.Run("invalid base64 degrades to the placeholder", func(t *testing.T) {
		store, dir := newImageStore(t, true)
		got := store.Store("data:image/png;base64,!!!not-base64!!!", 2)
		assert.Equal(t, catalog.PlaceholderImage, got)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("payload below minimum size degrades to the placeholder", func(t *testing.T) {
		store, _ := newImageStore(t, true)
		tiny := base64.StdEncoding.EncodeToString([]byte("too small"))
		assert.Equal(t, catalog.PlaceholderImage, store.Store("data:image/png;base64,"+tiny, 3))
	})

	t.Run("processing re-encodes as jpeg", func(t *testing.T) {
		store, dir := newImageStore(t, true)
		got := store.Store(pngDataURI(t, 100, 100), 7)
		assert.Equal(t, "images/producto_7.jpg", got)

		f, err := os.Open(filepath.Join(dir, "producto_7.jpg"))
		require.NoError(t, err)
		defer f.Close()
		img, err := jpeg.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx())
	})

	t.Run("processing caps the width without enlarging", func(t *testing.T) {
		store, dir := newImageStore(t, true)
		got := store.Store(pngDataURI(t, 1200, 40), 8)
		assert.Equal(t, "images/producto_8.jpg", got)

		f, err := os.Open(filepath.Join(dir, "producto_8.jpg"))
		require.NoError(t, err)
		defer f.Close()
		img, err := jpeg.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 800, img.Bounds().Dx())
	})

	t.Run("undecodable payload falls back to a raw file", func(t *testing.T) {
		store, dir := newImageStore(t, true)
		junk := make([]byte, 256)
		for i := range junk {
			junk[i] = byte(i)
		}
		got := store.Store("data:image/png;base64,"+base64.StdEncoding.EncodeToString(junk), 9)
		assert.Equal(t, "images/producto_9_fallback.png", got)

		raw, err := os.ReadFile(filepath.Join(dir, "producto_9_fallback.png"))
		require.NoError(t, err)
		assert.Equal(t, junk, raw)
	})

	t.Run("processing disabled writes decoded bytes as-is", func(t *testing.T) {
		store, dir := newImageStore(t, false)
		uri := pngDataURI(t, 50, 50)
		got := store.Store(uri, 10)
		assert.Equal(t, "images/producto_10.png", got)

		raw, err := os.ReadFile(filepath.Join(dir, "producto_10.png"))
		require.NoError(t, err)
		decoded, err := base64.StdEncoding.DecodeString(uri[len("data:image/png;base64,"):])
		require.NoError(t, err)
		assert.Equal(t, decoded, raw)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "jpg", extensionFor("jpeg"))
	assert.Equal(t, "jpg", extensionFor("JPG"))
	assert.Equal(t, "png", extensionFor("png"))
	assert.Equal(t, "webp", extensionFor("webp"))
	assert.Equal(t, "jpg", extensionFor("svg+xml"), "unknown subtypes default to jpg")
}
