package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeika/physics2d"
)

func newContext(t *testing.T) (*Context, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	ctx, err := New(screen, physics2d.NewBB(0, 0, 20, 10))
	require.NoError(t, err)
	screen.SetSize(20, 10)
	t.Cleanup(ctx.Close)
	return ctx, screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func boxAt(x, y, half float64) *physics2d.Body {
	body := physics2d.NewBody(physics2d.Box(half, half), 1, physics2d.White)
	body.SetCentroid(physics2d.Vector{X: x, Y: y})
	return body
}

func TestContext_Mapping(t *testing.T) {
	ctx, _ := newContext(t)

	x, y := ctx.Cell(physics2d.Vector{X: 0.5, Y: 9.5})
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = ctx.Cell(physics2d.Vector{X: 19.9, Y: 0.1})
	assert.Equal(t, 19, x)
	assert.Equal(t, 9, y)

	x, _ = ctx.Cell(physics2d.Vector{X: -0.5, Y: 5})
	assert.Equal(t, -1, x)

	assert.Equal(t, physics2d.Vector{X: 4.5, Y: 5.5}, ctx.CellCenter(4, 4))
}

func TestContext_Draw(t *testing.T) {
	ctx, screen := newContext(t)
	scene := physics2d.NewScene()
	scene.AddBody(boxAt(5, 5, 1.2))
	hidden := scene.AddBody(boxAt(15, 5, 1.2))
	hidden.SetVisible(false)

	ctx.Draw(scene)

	for _, cell := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		assert.Equal(t, fillRune, runeAt(screen, cell[0], cell[1]), "cell %v", cell)
	}
	for _, cell := range [][2]int{{3, 4}, {6, 4}, {4, 3}, {4, 6}, {14, 4}, {15, 5}} {
		assert.NotEqual(t, fillRune, runeAt(screen, cell[0], cell[1]), "cell %v", cell)
	}
}

func TestContext_Offscreen(t *testing.T) {
	ctx, _ := newContext(t)
	scene := physics2d.NewScene()
	scene.AddBody(boxAt(-50, 50, 3))
	scene.AddBody(boxAt(0, 0, 3))

	assert.NotPanics(t, func() { ctx.Draw(scene) })
}

func TestContext_Labels(t *testing.T) {
	ctx, screen := newContext(t)
	scene := physics2d.NewScene()
	body := scene.AddBody(boxAt(10.5, 4.5, 3))
	body.SetText("hi")
	ctx.SetStatus("tick 1")

	ctx.Draw(scene)

	assert.Equal(t, 'h', runeAt(screen, 9, 5))
	assert.Equal(t, 'i', runeAt(screen, 10, 5))
	assert.Equal(t, 't', runeAt(screen, 0, 0))
	assert.Equal(t, '1', runeAt(screen, 5, 0))
}

func TestNew_EmptyWorld(t *testing.T) {
	_, err := New(tcell.NewSimulationScreen("UTF-8"), physics2d.NewBB(0, 0, 0, 10))
	assert.Error(t, err)
}
