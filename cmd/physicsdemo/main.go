// Command physicsdemo runs a physics2d scenario in the terminal, headless,
// or streamed to websocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/majeika/physics2d"
	"github.com/majeika/physics2d/audio"
	"github.com/majeika/physics2d/render"
	"github.com/majeika/physics2d/scenario"
	"github.com/majeika/physics2d/stream"
)

type options struct {
	scenario string
	preset   string
	seed     int64
	dt       float64
	fps      int
	headless bool
	ticks    int
	serve    string
	sound    bool
	logLevel string
	cellSize float64
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.scenario, "scenario", "", "path to a YAML scenario")
	flag.StringVar(&o.preset, "preset", "bounce", "built-in scenario: "+strings.Join(scenario.Presets(), ", "))
	flag.Int64Var(&o.seed, "seed", time.Now().UnixNano(), "random seed for presets")
	flag.Float64Var(&o.dt, "dt", 1.0/240, "simulation step in seconds")
	flag.IntVar(&o.fps, "fps", 30, "frames drawn per second")
	flag.BoolVar(&o.headless, "headless", false, "run without a terminal")
	flag.IntVar(&o.ticks, "ticks", 2400, "ticks to run in headless mode, 0 runs until interrupted")
	flag.StringVar(&o.serve, "serve", "", "stream frames to websocket clients on this address, e.g. :8080")
	flag.BoolVar(&o.sound, "sound", false, "play a tone on landings")
	flag.StringVar(&o.logLevel, "log", "info", "log level")
	flag.Float64Var(&o.cellSize, "cell", physics2d.DefaultCellSize, "broad-phase cell size")
	flag.Parse()
	return o
}

func newLogger(level string, headless bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	// the terminal owns stderr while drawing
	output := "stderr"
	if !headless {
		output = "physicsdemo.log"
	}
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(lvl),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
		DisableCaller:    true,
	}
	return config.Build()
}

func loadConfig(o options) (*scenario.Config, error) {
	if o.scenario != "" {
		return scenario.LoadFile(o.scenario)
	}
	return scenario.Preset(o.preset, rand.New(rand.NewSource(o.seed)))
}

func main() {
	o := parseFlags()
	log, err := newLogger(o.logLevel, o.headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, log); err != nil {
		log.Error("demo failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "physicsdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, log *zap.Logger) error {
	if o.dt <= 0 || o.fps <= 0 {
		return errors.New("dt and fps must be positive")
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	world, err := cfg.Build(physics2d.WithLogger(log), physics2d.WithCellSize(o.cellSize))
	if err != nil {
		return err
	}
	defer world.Scene.Free()
	log.Info("scenario loaded",
		zap.String("name", cfg.Name),
		zap.Stringer("scene", world.Scene.ID()),
		zap.Int("bodies", world.Scene.BodyCount()),
		zap.Int("forces", world.Scene.ForceCreatorCount()),
	)

	if o.sound {
		player := audio.NewPlayer(log)
		if err := player.Init(); err != nil {
			log.Warn("sound disabled", zap.Error(err))
		} else {
			defer player.Close()
			attachSound(world, player)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hub *stream.Hub
	if o.serve != "" {
		hub = stream.NewHub(log)
		serve(ctx, g, o.serve, hub, log)
	}

	sim := &simulation{
		world: world,
		hub:   hub,
		log:   log,
		dt:    o.dt,
		frame: time.Second / time.Duration(o.fps),
	}

	if o.headless {
		g.Go(func() error {
			defer cancel()
			return sim.runHeadless(ctx, o.ticks)
		})
		return g.Wait()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	rc, err := render.New(screen, world.Bounds)
	if err != nil {
		return err
	}
	defer rc.Close()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	g.Go(func() error {
		defer cancel()
		return sim.runInteractive(ctx, rc, events)
	})
	return g.Wait()
}

// attachSound plays a blip whenever a jumper lands on its ground.
func attachSound(world *scenario.World, player *audio.Player) {
	for _, jump := range world.Jumps {
		world.Scene.AddForceCreator(physics2d.NewCollision(jump.A(), jump.B(), player.OnCollision(nil), nil))
	}
}

func serve(ctx context.Context, g *errgroup.Group, addr string, hub *stream.Hub, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		log.Info("streaming frames", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
}
