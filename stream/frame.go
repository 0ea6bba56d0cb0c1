// Package stream publishes scene snapshots to websocket clients.
package stream

import (
	"github.com/google/uuid"

	"github.com/majeika/physics2d"
)

type BodyState struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name,omitempty"`
	Centroid [2]float64   `json:"centroid"`
	Velocity [2]float64   `json:"velocity"`
	Rotation float64      `json:"rotation"`
	Color    string       `json:"color"`
	Vertices [][2]float64 `json:"vertices"`
}

// Frame is the state of every visible body after a tick.
type Frame struct {
	Scene  uuid.UUID   `json:"scene"`
	Tick   uint64      `json:"tick"`
	Bounds [4]float64  `json:"bounds"`
	Bodies []BodyState `json:"bodies"`
}

// Snapshot copies the visible bodies of scene. bounds is the region a
// client should display.
func Snapshot(scene *physics2d.Scene, bounds physics2d.BB) Frame {
	frame := Frame{
		Scene:  scene.ID(),
		Tick:   scene.Stamp(),
		Bounds: [4]float64{bounds.L, bounds.B, bounds.R, bounds.T},
		Bodies: make([]BodyState, 0, scene.BodyCount()),
	}
	scene.EachBody(func(body *physics2d.Body) {
		if !body.IsVisible() || body.IsRemoved() {
			return
		}
		shape := body.Shape()
		vertices := make([][2]float64, len(shape))
		for i, v := range shape {
			vertices[i] = [2]float64{v.X, v.Y}
		}
		state := BodyState{
			ID:       body.ID(),
			Centroid: [2]float64{body.Centroid().X, body.Centroid().Y},
			Velocity: [2]float64{body.Velocity().X, body.Velocity().Y},
			Rotation: body.Rotation(),
			Color:    body.Color().Hex(),
			Vertices: vertices,
		}
		if name, ok := body.Info().(string); ok {
			state.Name = name
		}
		frame.Bodies = append(frame.Bodies, state)
	})
	return frame
}
