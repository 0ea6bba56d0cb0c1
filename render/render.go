// Package render draws a physics2d scene onto a terminal screen.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/majeika/physics2d"
)

const fillRune = '█'

// Context owns a terminal screen and maps a world rectangle onto it. The
// world y axis points up; terminal rows grow down.
type Context struct {
	screen tcell.Screen
	world  physics2d.BB
	status string
}

// New initialises screen and returns a context drawing world onto it.
func New(screen tcell.Screen, world physics2d.BB) (*Context, error) {
	if world.Width() <= 0 || world.Height() <= 0 {
		return nil, fmt.Errorf("render: empty world %v", world)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init screen: %w", err)
	}
	screen.Clear()
	return &Context{screen: screen, world: world}, nil
}

// Close restores the terminal.
func (c *Context) Close() {
	c.screen.Fini()
}

func (c *Context) Screen() tcell.Screen {
	return c.screen
}

func (c *Context) World() physics2d.BB {
	return c.world
}

// SetStatus sets a line of text drawn in the top row.
func (c *Context) SetStatus(status string) {
	c.status = status
}

// CellCenter returns the world position of the centre of cell (x, y).
func (c *Context) CellCenter(x, y int) physics2d.Vector {
	w, h := c.screen.Size()
	return physics2d.Vector{
		X: c.world.L + (float64(x)+0.5)*c.world.Width()/float64(w),
		Y: c.world.T - (float64(y)+0.5)*c.world.Height()/float64(h),
	}
}

// Cell returns the cell containing world point p. It may be off screen.
func (c *Context) Cell(p physics2d.Vector) (x, y int) {
	w, h := c.screen.Size()
	fx := (p.X - c.world.L) / c.world.Width() * float64(w)
	fy := (c.world.T - p.Y) / c.world.Height() * float64(h)
	return int(math.Floor(fx)), int(math.Floor(fy))
}

func style(color physics2d.Color) tcell.Style {
	r, g, b := color.RGB8()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Draw renders every visible body of scene and shows the frame. A body is
// drawn into each cell whose centre lies inside its shape. A string Text
// handle is printed at the body's centroid.
func (c *Context) Draw(scene *physics2d.Scene) {
	c.screen.Clear()
	physics2d.DrawScene(scene, c)
	if c.status != "" {
		c.print(0, 0, c.status, tcell.StyleDefault)
	}
	c.screen.Show()
}

func (c *Context) Flags() int {
	return physics2d.DRAW_SHAPES | physics2d.DRAW_LABELS
}

// DrawPolygon fills the cells whose centres lie inside verts.
func (c *Context) DrawPolygon(verts physics2d.Polygon, fill physics2d.Color, _ *physics2d.Body) {
	w, h := c.screen.Size()
	bb := verts.BB()
	l, t := c.Cell(physics2d.Vector{X: bb.L, Y: bb.T})
	r, b := c.Cell(physics2d.Vector{X: bb.R, Y: bb.B})
	l, r = max(l, 0), min(r, w-1)
	t, b = max(t, 0), min(b, h-1)

	st := style(fill)
	for y := t; y <= b; y++ {
		for x := l; x <= r; x++ {
			if verts.ContainsPoint(c.CellCenter(x, y)) {
				c.screen.SetContent(x, y, fillRune, nil, st)
			}
		}
	}
}

func (c *Context) DrawLabel(at physics2d.Vector, text string, _ *physics2d.Body) {
	x, y := c.Cell(at)
	c.print(x-len(text)/2, y, text, tcell.StyleDefault.Reverse(true))
}

func (c *Context) print(x, y int, s string, st tcell.Style) {
	w, h := c.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= 0 && x < w {
			c.screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}
