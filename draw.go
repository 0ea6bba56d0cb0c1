package physics2d

// Draw flags
const (
	DRAW_SHAPES = 1 << 0
	DRAW_LABELS = 1 << 1
	DRAW_HIDDEN = 1 << 2
)

// Drawer receives the drawable parts of a scene. Terminal and image
// renderers implement it.
type Drawer interface {
	DrawPolygon(verts Polygon, fill Color, body *Body)
	DrawLabel(at Vector, text string, body *Body)

	Flags() int
}

// DrawBody sends body's outline and label to options.
func DrawBody(body *Body, options Drawer) {
	flags := options.Flags()
	if flags&DRAW_SHAPES != 0 {
		options.DrawPolygon(body.Shape(), body.Color(), body)
	}
	if flags&DRAW_LABELS != 0 {
		if label, ok := body.Text().(string); ok {
			options.DrawLabel(body.Centroid(), label, body)
		}
	}
}

// DrawScene draws every live body of scene in insertion order. Invisible
// bodies are skipped unless DRAW_HIDDEN is set.
func DrawScene(scene *Scene, options Drawer) {
	hidden := options.Flags()&DRAW_HIDDEN != 0
	scene.EachBody(func(body *Body) {
		if body.IsRemoved() || (!body.IsVisible() && !hidden) {
			return
		}
		DrawBody(body, options)
	})
}
