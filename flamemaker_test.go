package flamemaker

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/geometry"
	"github.com/scottkirkwood/flamemaker/palette"
)

// testPicture has one busy top right cell, one lighter bottom left cell
// and two empty ones.
func testPicture(t *testing.T) Picture {
	t.Helper()
	frame, err := geometry.NewRectangle(geometry.Origin, 2, 2)
	require.NoError(t, err)
	b, err := flame.NewAccumulatorBuilder(frame, 2, 2)
	require.NoError(t, err)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0)
	b.Hit(geometry.Point{X: 0.5, Y: 0.5}, 0)
	b.Hit(geometry.Point{X: -0.5, Y: -0.5}, 1)
	return Picture{Acc: b.Build(), Palette: RGBPalette(), Background: palette.Black}
}

func TestSeed(t *testing.T) {
	s, err := Init("ff")
	require.NoError(t, err)
	assert.Equal(t, int64(255), s.GetSeed())
	assert.Equal(t, s.Rand().Int63(), NewSeed(255).Rand().Int63())
	assert.True(t, strings.HasSuffix(s.GetFilename("out/flame-", ".png"), "-ff.png"))

	_, err = Init("not hex")
	assert.Error(t, err)
}

func TestPictureImage(t *testing.T) {
	pic := testPicture(t)
	img, err := pic.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(1, 1))
	lit := img.RGBAAt(0, 1)
	assert.Zero(t, lit.R)
	assert.Greater(t, lit.B, uint8(0))
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, testPicture(t), 100))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "P3", lines[0])
	assert.Equal(t, "2 2", lines[1])
	assert.Equal(t, "100", lines[2])
	assert.Equal(t, "0 0 0 100 0 0", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "0 0 "), lines[4])
}

func TestSafeWrite(t *testing.T) {
	dir := t.TempDir()
	pic := testPicture(t)
	for _, name := range []string{"a.png", "b.bmp", "c.tiff", "d.ppm", "e.svg", "sub/f.pdf"} {
		fname := filepath.Join(dir, name)
		require.NoError(t, SafeWrite(pic, fname), name)
		st, err := os.Stat(fname)
		require.NoError(t, err, name)
		assert.Greater(t, st.Size(), int64(0), name)
	}

	f, err := os.Open(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	assert.Error(t, SafeWrite(pic, filepath.Join(dir, "g.xyz")))
	leftovers, err := filepath.Glob(filepath.Join(dir, ".flame.*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPaletteOf(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		img.Set(x, 0, color.RGBA{0, 0, 255, 255})
	}
	img.Set(0, 1, color.RGBA{255, 0, 0, 255})
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	img.Set(2, 1, color.RGBA{0, 255, 0, 255})

	p, err := PaletteOf(img, 2)
	require.NoError(t, err)
	assert.Equal(t, []palette.Color{palette.Blue, palette.Red}, p.Colors())

	_, err = PaletteOf(image.NewRGBA(image.Rect(0, 0, 1, 1)), 4)
	assert.ErrorIs(t, err, palette.ErrTooFewColors)
}

func TestPaletteFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	fname := filepath.Join(t.TempDir(), "pal.png")
	f, err := os.Create(fname)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	p, err := PaletteFromImage(fname, 8)
	require.NoError(t, err)
	assert.Equal(t, []palette.Color{palette.White, palette.Black}, p.Colors())

	_, err = PaletteFromImage(filepath.Join(t.TempDir(), "missing.png"), 8)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestVpCenter(t *testing.T) {
	assert.Equal(t, image.Pt(10, 5), VpCenter(image.Rect(0, 0, 80, 90), 100, 100))
	assert.Equal(t, image.Pt(0, 0), VpCenter(image.Rect(0, 0, 200, 200), 100, 100))
}
