package viz

import (
	"fmt"
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid. A canvas of Width x Height cells
// addresses (Width*2) x (Height*4) sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are
// ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := 0; i < c.Height; i++ {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PlotPoints maps data points into the sub-pixel grid, scaled so the
// data ranges fill the canvas with a small margin. Non-finite points
// are skipped.
func (c *Canvas) PlotPoints(xs, ys []float64) {
	xLo, xHi := finiteRange(xs)
	yLo, yHi := finiteRange(ys)
	if math.IsNaN(xLo) || math.IsNaN(yLo) {
		return
	}

	cw, ch := c.Width*2, c.Height*4
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		px := int(math.Round((x - xLo) / (xHi - xLo) * float64(cw-1)))
		// Screen rows grow downward, data values upward.
		py := ch - 1 - int(math.Round((y-yLo)/(yHi-yLo)*float64(ch-1)))
		c.Set(px, py)
	}
}

// finiteRange returns the min and max of the finite values, widened to
// a non-degenerate interval. It returns NaNs when nothing is finite.
func finiteRange(vals []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

// Scatter renders paired samples as a Braille scatter plot with the
// data ranges printed beneath.
func Scatter(xs, ys []float64, width, height int, xLabel, yLabel string) string {
	canvas := NewCanvas(width, height)
	canvas.PlotPoints(xs, ys)

	xLo, xHi := finiteRange(xs)
	yLo, yHi := finiteRange(ys)

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString(Subtle.Render(fmt.Sprintf("%s: [%.4g, %.4g]  %s: [%.4g, %.4g]",
		xLabel, xLo, xHi, yLabel, yLo, yHi)))
	return b.String()
}
