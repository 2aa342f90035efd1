// Package main provides a headless confetti simulation tool for tuning the
// celebration effect without opening a window.
//
// Usage:
//
//	go run cmd/confetti_sim/main.go [flags]
//
// Flags:
//
//	--seed <n>           Random seed (default: 1)
//	--width <px>         Canvas width (default: 960)
//	--height <px>        Canvas height (default: 640)
//	--config <path>      Greeting YAML to read confetti settings from (default: built-in)
//	--launches <n>       Number of launches, one per second (default: 1)
//	--snapshot <file>    Write a PNG of the canvas at --snapshot-frame
//	--snapshot-frame <n> Frame to capture (default: 60)
//	--verbose            Enable verbose logging
//
// Output:
//
//	One line per run with its frame count, plus the frame at which the
//	canvas stopped animating.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/fogleman/gg"

	"github.com/gonewx/valentine/pkg/config"
	"github.com/gonewx/valentine/pkg/systems"
	"github.com/gonewx/valentine/pkg/timing"
)

const (
	frameDelta = 1.0 / 60
	// maxFrames 防止参数异常时无限运行（10 分钟）
	maxFrames = 60 * 60 * 10
)

var (
	seedFlag          = flag.Int64("seed", 1, "Random seed")
	widthFlag         = flag.Int("width", config.GameWindowWidth, "Canvas width")
	heightFlag        = flag.Int("height", config.GameWindowHeight, "Canvas height")
	configFlag        = flag.String("config", "", "Greeting YAML file (default: built-in settings)")
	launchesFlag      = flag.Int("launches", 1, "Number of launches, one second apart")
	snapshotFlag      = flag.String("snapshot", "", "Write a PNG snapshot to this file")
	snapshotFrameFlag = flag.Int("snapshot-frame", 60, "Frame to capture for --snapshot")
	verboseFlag       = flag.Bool("verbose", false, "Enable verbose logging")
)

// ggPainter 基于 gg 的 CPU 画布，实现 systems.Painter
type ggPainter struct {
	dc *gg.Context
}

func newGGPainter(width, height int) *ggPainter {
	return &ggPainter{dc: gg.NewContext(width, height)}
}

func (p *ggPainter) Clear() {
	p.dc.SetRGBA(1, 0.94, 0.96, 1)
	p.dc.Clear()
}

func (p *ggPainter) FillRect(cx, cy, w, h, rotation float64, clr color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	p.dc.Push()
	p.dc.Translate(cx, cy)
	p.dc.Rotate(gg.Radians(rotation))
	p.dc.DrawRectangle(-w/2, -h/2, w, h)
	p.dc.SetRGBA255(int(clr.R), int(clr.G), int(clr.B), int(float64(clr.A)*alpha))
	p.dc.Fill()
	p.dc.Pop()
}

func (p *ggPainter) FillCircle(cx, cy, radius float64, clr color.RGBA, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	p.dc.DrawCircle(cx, cy, radius)
	p.dc.SetRGBA255(int(clr.R), int(clr.G), int(clr.B), int(float64(clr.A)*alpha))
	p.dc.Fill()
}

func loadConfig(path string) (*config.GreetingConfig, error) {
	if path == "" {
		return config.DefaultGreetingConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return config.ParseGreetingConfig(data)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scheduler := timing.NewScheduler()
	rng := rand.New(rand.NewSource(*seedFlag))
	confetti := systems.NewConfettiSystem(cfg.Confetti, cfg.PaletteColors(), scheduler, rng, *widthFlag, *heightFlag)

	var runs []*systems.ConfettiRun
	for i := 0; i < *launchesFlag; i++ {
		scheduler.After(float64(i), func() {
			runs = append(runs, confetti.Launch())
		})
	}

	var painter *ggPainter
	if *snapshotFlag != "" {
		painter = newGGPainter(*widthFlag, *heightFlag)
	}

	frame := 0
	for ; frame < maxFrames; frame++ {
		scheduler.Advance(frameDelta)
		confetti.Update(frameDelta)

		if painter != nil && frame == *snapshotFrameFlag {
			painter.Clear()
			confetti.Draw(painter)
			if err := painter.dc.SavePNG(*snapshotFlag); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write snapshot: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("snapshot: frame %d -> %s\n", frame, *snapshotFlag)
		}

		if len(runs) == *launchesFlag && !confetti.IsAnimating() && scheduler.PendingCount() == 0 {
			break
		}
	}

	fmt.Printf("seed=%d canvas=%dx%d launches=%d\n", *seedFlag, *widthFlag, *heightFlag, *launchesFlag)
	for i, run := range runs {
		fmt.Printf("  run %d (%s): %d frames, %d particles\n", i+1, run.ID, run.Frames, len(run.Particles))
	}
	if frame >= maxFrames {
		fmt.Printf("stopped after %d frames without settling\n", maxFrames)
		os.Exit(2)
	}
	fmt.Printf("settled after %d frames (%.1fs)\n", frame+1, float64(frame+1)*frameDelta)
}
