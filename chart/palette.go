// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import "image/color"

// A Palette assigns colors to series indexes. Each index has a
// foreground color, used for data, and a lighter background color,
// used for companion curves drawn behind the data.
//
// Indexes cycle through the palette, so indexes that differ by a
// multiple of Len map to identical colors.
type Palette struct {
	fg []color.NRGBA
}

// bgLift is how far each channel of a background color is raised
// above its foreground color.
const bgLift = 102

// NewPalette returns a palette with the given foreground colors.
// It panics if fg is empty.
func NewPalette(fg ...color.NRGBA) Palette {
	if len(fg) == 0 {
		panic("chart: empty palette")
	}
	return Palette{append([]color.NRGBA(nil), fg...)}
}

// DefaultPalette is the fifteen-color palette used by all scaling charts.
var DefaultPalette = NewPalette(
	rgb(0, 0, 200),
	rgb(0, 200, 0),
	rgb(200, 0, 0),
	rgb(200, 0, 200),
	rgb(0, 200, 200),
	rgb(200, 200, 0),
	rgb(100, 100, 200),
	rgb(100, 200, 100),
	rgb(200, 100, 100),
	rgb(200, 200, 100),
	rgb(100, 200, 200),
	rgb(200, 100, 200),
	rgb(50, 50, 50),
	rgb(100, 100, 100),
	rgb(200, 200, 200),
)

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{r, g, b, 0xFF}
}

// Len returns the number of distinct colors in p.
func (p Palette) Len() int {
	return len(p.fg)
}

func (p Palette) index(i int) int {
	n := len(p.fg)
	return ((i % n) + n) % n
}

// FG returns the foreground color for index i.
func (p Palette) FG(i int) color.NRGBA {
	return p.fg[p.index(i)]
}

// BG returns the background color paired with FG(i).
func (p Palette) BG(i int) color.NRGBA {
	c := p.FG(i)
	return color.NRGBA{lift(c.R), lift(c.G), lift(c.B), c.A}
}

func lift(v uint8) uint8 {
	if v > 0xFF-bgLift {
		return 0xFF
	}
	return v + bgLift
}
