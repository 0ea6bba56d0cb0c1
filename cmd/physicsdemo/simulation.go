package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/majeika/physics2d"
	"github.com/majeika/physics2d/render"
	"github.com/majeika/physics2d/scenario"
	"github.com/majeika/physics2d/stream"
)

// simulation owns the scene. Only its run loop touches it.
type simulation struct {
	world *scenario.World
	hub   *stream.Hub
	log   *zap.Logger
	dt    float64
	frame time.Duration
}

// step advances the scene by one frame worth of fixed ticks.
func (s *simulation) step() {
	n := max(1, int(s.frame.Seconds()/s.dt+0.5))
	for i := 0; i < n; i++ {
		s.world.Scene.Tick(s.dt)
	}
}

func (s *simulation) publish() {
	if s.hub == nil {
		return
	}
	if err := s.hub.Broadcast(stream.Snapshot(s.world.Scene, s.world.Bounds)); err != nil {
		s.log.Warn("broadcast failed", zap.Error(err))
	}
}

func (s *simulation) jump(target string) {
	for name, jump := range s.world.Jumps {
		if target == "" || target == name {
			jump.Request()
		}
	}
}

func (s *simulation) commands() <-chan stream.Command {
	if s.hub == nil {
		return nil
	}
	return s.hub.Commands()
}

func (s *simulation) handleCommand(cmd stream.Command) {
	switch cmd.Action {
	case "jump":
		s.jump(cmd.Target)
	default:
		s.log.Debug("unknown command", zap.String("action", cmd.Action))
	}
}

func (s *simulation) runHeadless(ctx context.Context, ticks int) error {
	start := time.Now()
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	// without a hub there is nobody to pace for
	for ticks == 0 || int(s.world.Scene.Stamp()) < ticks {
		if s.hub != nil {
			select {
			case <-ctx.Done():
				return nil
			case cmd := <-s.commands():
				s.handleCommand(cmd)
				continue
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}
		s.step()
		s.publish()
	}

	s.log.Info("simulation finished",
		zap.Uint64("ticks", s.world.Scene.Stamp()),
		zap.Int("bodies", s.world.Scene.BodyCount()),
		zap.Float64("kinetic_energy", kineticEnergy(s.world.Scene)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (s *simulation) runInteractive(ctx context.Context, rc *render.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					s.jump("")
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
					paused = !paused
				}
			case *tcell.EventResize:
				rc.Screen().Sync()
			}

		case cmd := <-s.commands():
			s.handleCommand(cmd)

		case <-ticker.C:
			if !paused {
				s.step()
				s.publish()
			}
			rc.SetStatus(fmt.Sprintf("tick %d  bodies %d  energy %.1f  [space] jump  [p] pause  [q] quit",
				s.world.Scene.Stamp(), s.world.Scene.BodyCount(), kineticEnergy(s.world.Scene)))
			rc.Draw(s.world.Scene)
		}
	}
}

func kineticEnergy(scene *physics2d.Scene) float64 {
	var e float64
	scene.EachBody(func(body *physics2d.Body) {
		e += body.KineticEnergy()
	})
	return e
}
