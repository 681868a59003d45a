package gui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var red = color.RGBA{255, 0, 0, 255}
var blue = color.RGBA{0, 0, 255, 255}

func TestFillTriangleCoversInterior(t *testing.T) {
	fr := newFrame(20, 20, backgroundColor)
	fr.fillTriangle(vertex{0, 0, 1}, vertex{19, 0, 1}, vertex{0, 19, 1}, red)

	assert.Equal(t, red, fr.img.RGBAAt(2, 2))
	assert.Equal(t, backgroundColor, fr.img.RGBAAt(18, 18))
}

func TestFillTriangleWindingIndependent(t *testing.T) {
	fr := newFrame(20, 20, backgroundColor)
	fr.fillTriangle(vertex{0, 0, 1}, vertex{0, 19, 1}, vertex{19, 0, 1}, red)

	assert.Equal(t, red, fr.img.RGBAAt(2, 2))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	fr := newFrame(10, 10, backgroundColor)
	fr.fillTriangle(vertex{0, 0, 1}, vertex{10, 0, 1}, vertex{0, 10, 1}, red)
	fr.fillTriangle(vertex{0, 0, 5}, vertex{10, 0, 5}, vertex{0, 10, 5}, blue)

	assert.Equal(t, red, fr.img.RGBAAt(1, 1))
}

func TestDrawLineEndpoints(t *testing.T) {
	fr := newFrame(10, 10, backgroundColor)
	fr.drawLine(vertex{1, 1, 1}, vertex{8, 5, 1}, 0, red)

	assert.Equal(t, red, fr.img.RGBAAt(1, 1))
	assert.Equal(t, red, fr.img.RGBAAt(8, 5))
	assert.Equal(t, backgroundColor, fr.img.RGBAAt(8, 1))
}

func TestPlotClipsToFrame(t *testing.T) {
	fr := newFrame(4, 4, backgroundColor)
	assert.NotPanics(t, func() {
		fr.plot(-1, 2, 0, red)
		fr.plot(2, 4, 0, red)
		fr.drawDot(vertex{0, 0, 1}, 5, red)
	})
	assert.Equal(t, red, fr.img.RGBAAt(0, 0))
}
