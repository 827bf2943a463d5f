package maze

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultBytes(t *testing.T) {
	res, err := Build(Params{Width: 7, Depth: 5, WeightRange: DefaultWeightRange, Seed: 11, Start: Coord{3, 2}})
	require.NoError(t, err)

	buf, err := res.Bytes()
	require.NoError(t, err)

	decoded, err := DecodeResult(buf)
	require.NoError(t, err)
	assert.Equal(t, res.Committed, decoded.Committed)
	assert.Equal(t, res.Walls(), decoded.Walls())
	assert.Equal(t, res.String(), decoded.String())

	_, err = DecodeResult([]byte("not a maze"))
	assert.Error(t, err)
}

func TestConnected(t *testing.T) {
	g := linkedGrid(t, 3, 3, DefaultWeightRange, nil)
	res, err := Generate(g, Coord{0, 0})
	require.NoError(t, err)

	assert.True(t, res.Connected(Coord{0, 0}, Coord{1, 0}))
	assert.True(t, res.Connected(Coord{1, 0}, Coord{0, 0}))
	assert.False(t, res.Connected(Coord{1, 0}, Coord{1, 1}))
	assert.False(t, res.Connected(Coord{0, 0}, Coord{2, 2}))
}

func TestImage(t *testing.T) {
	g := linkedGrid(t, 2, 1, DefaultWeightRange, nil)
	res, err := Generate(g, Coord{0, 0})
	require.NoError(t, err)
	require.Equal(t, Coord{1, 0}, res.End)

	img := res.Image(9)
	assert.Equal(t, 17, img.Bounds().Dx())
	assert.Equal(t, 9, img.Bounds().Dy())

	rgba := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	assert.Equal(t, startColor, rgba(4, 4))
	assert.Equal(t, endColor, rgba(12, 4))
	assert.Equal(t, passColor, rgba(8, 4), "passage between the two cells")
	assert.Equal(t, wallColor, rgba(0, 4))
	assert.Equal(t, wallColor, rgba(4, 0))
	assert.Equal(t, wallColor, rgba(8, 8))
	assert.Equal(t, color.RGBA{}, rgba(17, 0))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestImageWalls(t *testing.T) {
	g := linkedGrid(t, 3, 3, DefaultWeightRange, nil)
	res, err := Generate(g, Coord{0, 0})
	require.NoError(t, err)

	img := res.Image(1)
	// raised to MinCellPixels, so each cell spans 2 pixels plus border
	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, wallColor, color.RGBAModel.Convert(img.At(3, 3)).(color.RGBA), "(1,1) is a wall")
}
