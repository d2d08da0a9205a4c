package upload

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, enc func(*bytes.Buffer, image.Image) error) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	pngData := encode(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })
	jpegData := encode(t, func(b *bytes.Buffer, i image.Image) error { return jpeg.Encode(b, i, nil) })
	gifData := encode(t, func(b *bytes.Buffer, i image.Image) error { return gif.Encode(b, i, nil) })

	require.NoError(t, Sniff(pngData))
	require.NoError(t, Sniff(jpegData))

	require.ErrorIs(t, Sniff(gifData), ErrInvalidImage)
	require.ErrorIs(t, Sniff([]byte("plain text file")), ErrInvalidImage)
	require.ErrorIs(t, Sniff(nil), ErrInvalidImage)
}

func TestSaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(dir)
	require.NoError(t, err)

	data := encode(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })

	rel, err := store.SaveCarImage("golf.png", data)
	require.NoError(t, err)
	require.Equal(t, "uploads/cars/golf.png", rel)

	onDisk := filepath.Join(dir, "cars", "golf.png")
	saved, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, data, saved)

	require.NoError(t, store.Remove(rel))
	_, statErr := os.Stat(onDisk)
	require.True(t, os.IsNotExist(statErr))

	// removing twice is fine
	require.NoError(t, store.Remove(rel))
	require.NoError(t, store.Remove(""))
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(dir)
	require.NoError(t, err)

	rel, err := store.SaveCarImage("../../etc/evil.png", []byte{1})
	require.NoError(t, err)
	require.Equal(t, "uploads/cars/evil.png", rel)

	_, err = os.Stat(filepath.Join(dir, "cars", "evil.png"))
	require.NoError(t, err)
}
