package render

import (
	"image"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-system/internal/config"
	"loyalty-system/internal/domain"
)

func TestRenderProducesThreeDecodablePNGs(t *testing.T) {
	gen := NewGenerator(config.RenderConfig{OutputDir: t.TempDir(), Title: "Test Card"})

	card := domain.Card{
		ID:             7,
		CustomerName:   "Ana Torres",
		Branch:         "Centro",
		Bank:           "BCP",
		Phone:          "999-111-222",
		DeliveryMethod: "pickup",
		IssuedAt:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	a, err := gen.Render(card)
	require.NoError(t, err)

	for _, path := range []string{a.Front, a.Back} {
		img := decodePNG(t, path)
		assert.Equal(t, cardW, img.Bounds().Dx(), path)
		assert.Equal(t, cardH, img.Bounds().Dy(), path)
	}
	qr := decodePNG(t, a.QR)
	assert.Equal(t, 128, qr.Bounds().Dx())
}

func TestRenderCreatesMissingOutputDir(t *testing.T) {
	dir := t.TempDir() + "/nested/out"
	gen := NewGenerator(config.RenderConfig{OutputDir: dir, Title: "Test Card"})

	_, err := gen.Render(domain.Card{ID: 1, CustomerName: "Ana"})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}
