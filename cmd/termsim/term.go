package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"spritefield/render"
	"spritefield/sim"
	"spritefield/vmath"
	"spritefield/world"
)

const (
	traceRune  = '·'
	circleRune = 'o'
)

// glyph is the terminal stand-in for a sprite
type glyph struct {
	r      rune
	style  tcell.Style
	offset vmath.Vec2 // from the actor position to the cell it marks
}

// termBank hands out one glyph per actor kind
type termBank struct{}

var kindRunes = [sim.KindCount]rune{
	sim.KindSheep:  's',
	sim.KindHuman:  'h',
	sim.KindZombie: 'Z',
	sim.KindPlayer: '@',
}

func (termBank) Sprite(kind sim.Kind, key sim.SpriteKey) (render.Image, bool) {
	if kind < 0 || kind >= sim.KindCount {
		return nil, false
	}
	p := sim.GetPreset(kind)
	style := tcell.StyleDefault.Foreground(tcellColor(world.GetFactionConfig(world.FactionOf(kind)).Color))
	if kind == sim.KindPlayer {
		style = style.Foreground(tcell.ColorYellow).Bold(true)
	}
	if key.Hit {
		style = style.Reverse(true)
	}
	return glyph{
		r:      kindRunes[kind],
		style:  style,
		offset: vmath.Vec2{X: p.Bullet.OffsetX + p.Bullet.W/2, Y: p.Bullet.OffsetY + p.Bullet.H/2},
	}, true
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// termRenderer maps world pixels onto the cells above the status line
type termRenderer struct {
	screen tcell.Screen
	bounds vmath.Bounds
}

var _ render.Renderer = (*termRenderer)(nil)

// field returns the size of the drawing area in cells
func (t *termRenderer) field() (cols, rows int) {
	w, h := t.screen.Size()
	return w, max(0, h-1)
}

// cell converts a world position to a cell, ok is false when off screen
func (t *termRenderer) cell(p vmath.Vec2) (x, y int, ok bool) {
	cols, rows := t.field()
	if cols == 0 || rows == 0 || t.bounds.W <= 0 || t.bounds.H <= 0 {
		return 0, 0, false
	}
	x = int(p.X * float64(cols) / t.bounds.W)
	y = int(p.Y * float64(rows) / t.bounds.H)
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

func (t *termRenderer) set(x, y int, r rune, style tcell.Style) {
	cols, rows := t.field()
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *termRenderer) DrawImage(img render.Image, pos vmath.Vec2) {
	g, ok := img.(glyph)
	if !ok {
		return
	}
	if x, y, ok := t.cell(pos.Add(g.offset)); ok {
		t.set(x, y, g.r, g.style)
	}
}

func (t *termRenderer) DrawPolyline(points []image.Point, c color.Color, _ float64) {
	style := tcell.StyleDefault.Foreground(tcellColor(c))
	for i := 1; i < len(points); i++ {
		x0, y0, _ := t.cell(vmath.FromPoint(points[i-1]))
		x1, y1, _ := t.cell(vmath.FromPoint(points[i]))
		line(x0, y0, x1, y1, func(x, y int) {
			t.set(x, y, traceRune, style)
		})
	}
}

func (t *termRenderer) DrawCircle(c color.Color, center vmath.Vec2, _ float64) {
	if x, y, ok := t.cell(center); ok {
		t.set(x, y, circleRune, tcell.StyleDefault.Foreground(tcellColor(c)))
	}
}

// status writes msg on the bottom row
func (t *termRenderer) status(msg string) {
	w, h := t.screen.Size()
	if h == 0 {
		return
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range msg {
		if x >= w {
			break
		}
		t.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

// line visits every cell of the segment between two cells
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
