package gui

import (
	"image"
	"image/color"
	"math"
)

// vertex is a projected point: pixel coordinates plus view depth
type vertex struct {
	X, Y, Z float64
}

// frame is a software render target with a depth buffer. Smaller depth
// values are closer to the camera.
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int, background color.RGBA) *frame {
	f := &frame{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i] = background.R
		f.img.Pix[i+1] = background.G
		f.img.Pix[i+2] = background.B
		f.img.Pix[i+3] = background.A
	}
	return f
}

func (f *frame) width() int  { return f.img.Rect.Dx() }
func (f *frame) height() int { return f.img.Rect.Dy() }

// plot writes col at (x, y) when z passes the depth test
func (f *frame) plot(x, y int, z float64, col color.RGBA) {
	if x < 0 || y < 0 || x >= f.width() || y >= f.height() {
		return
	}
	i := y*f.width() + x
	if z > f.depth[i] {
		return
	}
	f.depth[i] = z
	f.img.SetRGBA(x, y, col)
}

// fillTriangle rasterizes a triangle with depth interpolated from the
// barycentric weights of each covered pixel center
func (f *frame) fillTriangle(a, b, c vertex, col color.RGBA) {
	area := edge(a, b, c.X, c.Y)
	if math.Abs(area) < 1e-9 {
		return
	}

	minX := int(math.Max(0, math.Floor(math.Min(a.X, math.Min(b.X, c.X)))))
	maxX := int(math.Min(float64(f.width()-1), math.Ceil(math.Max(a.X, math.Max(b.X, c.X)))))
	minY := int(math.Max(0, math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y)))))
	maxY := int(math.Min(float64(f.height()-1), math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			f.plot(x, y, w0*a.Z+w1*b.Z+w2*c.Z, col)
		}
	}
}

// drawLine draws a segment with Bresenham stepping. bias pulls the line
// toward the camera so outlines win against the faces they border.
func (f *frame) drawLine(a, b vertex, bias float64, col color.RGBA) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	steps := max(dx, -dy)
	err := dx + dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plot(x0, y0, a.Z+(b.Z-a.Z)*t-bias, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawDot draws a filled square marker centered on v
func (f *frame) drawDot(v vertex, size int, col color.RGBA) {
	cx, cy := int(math.Round(v.X)), int(math.Round(v.Y))
	half := size / 2
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			f.plot(x, y, v.Z-1, col)
		}
	}
}

func edge(a, b vertex, px, py float64) float64 {
	return (px-a.X)*(b.Y-a.Y) - (py-a.Y)*(b.X-a.X)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
