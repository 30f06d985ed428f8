// Command pairviz solves and visualizes the closest-pair problem.
//
//	pairviz -mode instant -points 1000
//	pairviz -mode play -points 12 -speed 100
//	pairviz -mode svg -out pair.svg -step 40
//	pairviz -mode serve -listen :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ttacon/chalk"
	"go.uber.org/zap"

	"github.com/katalvlaran/pairviz/builder"
	"github.com/katalvlaran/pairviz/closestpair"
	"github.com/katalvlaran/pairviz/config"
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/playback"
	"github.com/katalvlaran/pairviz/render"
	"github.com/katalvlaran/pairviz/vizserver"
)

var errUsage = errors.New("pairviz: invalid usage")

// createOut opens the -out file.
var createOut = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

type flags struct {
	configPath string
	mode       string
	layout     string
	points     int
	seed       int64
	speedMs    int
	out        string
	step       int
	listen     string
	color      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color(err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("pairviz", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.mode, "mode", "instant", "instant | play | svg | serve")
	fs.StringVar(&f.layout, "layout", "uniform", "uniform | spread | grid | circle | line | cluster")
	fs.IntVar(&f.points, "points", 0, "number of points (overrides config)")
	fs.Int64Var(&f.seed, "seed", 0, "generator seed (overrides config)")
	fs.IntVar(&f.speedMs, "speed", -1, "delay between playback ticks in ms (overrides config)")
	fs.StringVar(&f.out, "out", "", "svg output file (default stdout)")
	fs.IntVar(&f.step, "step", -1, "svg: render the scene after this many steps (default all)")
	fs.StringVar(&f.listen, "listen", "", "serve: listen address (overrides config)")
	fs.BoolVar(&f.color, "color", true, "colored terminal output")

	if err := fs.Parse(args); err != nil {
		return flags{}, fmt.Errorf("%v: %w", err, errUsage)
	}
	return f, nil
}

// merge applies command-line overrides to the loaded config.
func merge(cfg config.Config, f flags) (config.Config, error) {
	if f.points > 0 {
		cfg.PointCount = f.points
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	if f.speedMs >= 0 {
		cfg.SpeedMs = f.speedMs
	}
	if f.listen != "" {
		cfg.Listen = f.listen
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if cfg, err = merge(cfg, f); err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if f.mode == "serve" {
		svc := vizserver.NewVizService(cfg.Listen,
			vizserver.WithSpeed(cfg.Speed()),
			vizserver.WithPoints(cfg.PointCount, cfg.Seed, cfg.Bounds()),
			vizserver.WithLogger(logger),
		)
		return svc.ListenAndServe(ctx)
	}

	points, err := generate(f.layout, cfg)
	if err != nil {
		return err
	}
	logger.Debug("pairviz: points generated", zap.String("layout", f.layout), zap.Int("count", len(points)))

	switch f.mode {
	case "instant":
		return runInstant(stdout, points, logger, f.color)
	case "play":
		return runPlay(ctx, stdout, points, cfg, logger, f.color)
	case "svg":
		return runSVG(stdout, points, cfg, f, logger)
	}
	return fmt.Errorf("pairviz: mode %q: %w", f.mode, errUsage)
}

func generate(layout string, cfg config.Config) ([]geometry.Point, error) {
	n := cfg.PointCount
	var con builder.Constructor
	switch layout {
	case "uniform":
		con = builder.Uniform(n)
	case "spread":
		con = builder.Spread(n)
	case "grid":
		con = builder.GridN(n)
	case "circle":
		con = builder.Circle(n)
	case "line":
		con = builder.Line(n)
	case "cluster":
		k := 3
		if n < k {
			k = 1
		}
		con = builder.ClusterN(n, k, cfg.Bounds().Width()/20)
	default:
		return nil, fmt.Errorf("pairviz: layout %q: %w", layout, errUsage)
	}

	return builder.BuildPoints(
		[]builder.BuilderOption{builder.WithSeed(cfg.Seed), builder.WithBounds(cfg.Bounds())},
		con,
	)
}

func runInstant(w io.Writer, points []geometry.Point, logger *zap.Logger, color bool) error {
	res, elapsed, err := closestpair.Instant(points, closestpair.WithLogger(logger))
	if err != nil {
		return err
	}

	line := fmt.Sprintf("closest pair of %d points: %s", len(points), res)
	if color {
		line = chalk.Green.Color(line)
	}
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "elapsed: %.3fms\n", float64(elapsed)/float64(time.Millisecond))

	return nil
}

func runPlay(ctx context.Context, w io.Writer, points []geometry.Point, cfg config.Config, logger *zap.Logger, color bool) error {
	tr, _, err := closestpair.Visualize(points, closestpair.WithLogger(logger))
	if err != nil {
		return err
	}

	loop := playback.NewLoop()
	defer loop.Close()

	done := make(chan geometry.PairResult, 1)
	ctrl, err := playback.NewController(render.NewTextRenderer(w, color), loop,
		playback.WithSpeed(cfg.Speed()),
		playback.WithLogger(logger),
		playback.WithOnComplete(func(p geometry.PairResult) { done <- p }),
	)
	if err != nil {
		return err
	}

	var startErr error
	if err := loop.Do(func() { startErr = ctrl.Start(tr) }); err != nil {
		return err
	}
	if startErr != nil {
		return startErr
	}

	select {
	case p := <-done:
		fmt.Fprintf(w, "result: %s\n", p)
		return nil
	case <-ctx.Done():
		_ = loop.Do(ctrl.Reset)
		return ctx.Err()
	}
}

func runSVG(stdout io.Writer, points []geometry.Point, cfg config.Config, f flags, logger *zap.Logger) (err error) {
	tr, _, err := closestpair.Visualize(points, closestpair.WithLogger(logger))
	if err != nil {
		return err
	}

	k := f.step
	if k < 0 || k > tr.Len() {
		k = tr.Len()
	}
	scene := render.NewScene()
	scene.Replay(tr.Prefix(k))

	w := stdout
	if f.out != "" {
		file, cerr := createOut(f.out)
		if cerr != nil {
			return fmt.Errorf("pairviz: %w", cerr)
		}
		// a failed Close can lose buffered output
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("pairviz: close %s: %w", f.out, cerr)
			}
		}()
		w = file
	}

	canvas := render.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height, Margin: cfg.Canvas.Margin}
	return render.WriteSVG(w, scene.State(), canvas)
}
