package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// blitHalfBlocks copies img onto the screen at (x0, y0). Every cell shows
// two vertically stacked pixels, so img is expected to be cols x 2*rows.
func blitHalfBlocks(s tcell.Screen, img *image.RGBA, x0, y0, cols, rows int) {
	b := img.Bounds()
	for row := 0; row < rows; row++ {
		top := b.Min.Y + 2*row
		if top >= b.Max.Y {
			return
		}
		bottom := min(top+1, b.Max.Y-1)
		for col := 0; col < cols; col++ {
			x := b.Min.X + col
			if x >= b.Max.X {
				break
			}
			st := tcell.StyleDefault.
				Foreground(rgbAt(img, x, top)).
				Background(rgbAt(img, x, bottom))
			s.SetContent(x0+col, y0+row, upperHalf, nil, st)
		}
	}
}

func rgbAt(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
