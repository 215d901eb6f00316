/*
Compiles render passes into command streams with the headless backend.
Without -frame the testbed world is used.

	prism -frame testbed/demo.toml -watch
	prism -frames 1 -dump
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/systems"
	"github.com/spaghettifunk/prism/testbed"
)

var (
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	drawStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	viewStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	presentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

func main() {
	framePath := flag.String("frame", "", "TOML frame description (testbed world if empty)")
	watch := flag.Bool("watch", false, "Rebuild when the frame description changes")
	frames := flag.Uint64("frames", 0, "Frames to render, 0 renders until interrupted")
	fps := flag.Float64("fps", 60, "Frame rate limit, 0 does not limit")
	dump := flag.Bool("dump", false, "Print the command stream of the last frame")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(*framePath, *watch, *frames, *fps, *dump, *logLevel); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

func run(framePath string, watch bool, frames uint64, fps float64, dump bool, logLevel string) error {
	tb, err := testbed.NewTestGame()
	if err != nil {
		return err
	}
	config := tb.ApplicationConfig
	config.FramePath = framePath
	config.Watch = watch
	config.MaxFrames = frames
	config.TargetFrameRate = fps

	if framePath != "" {
		d, err := assets.LoadFrameFile(framePath)
		if err != nil {
			return err
		}
		if err := config.ApplyFrame(d); err != nil {
			return err
		}
	}
	if logLevel != "" {
		level, err := core.ParseLogLevel(logLevel)
		if err != nil {
			return fmt.Errorf("%s: %w", err, core.ErrInvalidConfig)
		}
		config.LogLevel = level
	}

	var last []systems.ViewResult
	render := tb.FnRender
	tb.FnRender = func(results []systems.ViewResult, deltaTime float64) error {
		last = results
		return render(results, deltaTime)
	}

	reloaded := core.EventRegister(core.EVENT_CODE_FRAME_RELOADED, func(context core.EventContext) bool {
		core.LogDebug("frame file changed: %v", context.Data)
		return false
	})
	defer core.EventUnregister(core.EVENT_CODE_FRAME_RELOADED, reloaded)

	e, err := engine.New(tb.Game)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}

	// capture sigterm and other system calls here
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if dump && last != nil {
		printResults(last)
	}
	if err := e.Shutdown(); err != nil {
		return err
	}
	return runErr
}

func printResults(results []systems.ViewResult) {
	for _, r := range results {
		fmt.Println(viewStyle.Render(fmt.Sprintf("view %s (%d commands, %s)", r.Name, len(r.Commands), r.BuildTime)))
		depth := 0
		for _, c := range r.Commands {
			line := c.String()
			switch c.Type {
			case queue.RenderCommandTypePassStart:
				fmt.Println(strings.Repeat("  ", depth) + passStyle.Render(line))
				depth++
			case queue.RenderCommandTypePassEnd:
				depth--
				fmt.Println(strings.Repeat("  ", depth) + passStyle.Render(line))
			case queue.RenderCommandTypePresent:
				fmt.Println(presentStyle.Render(line))
			default:
				fmt.Println(strings.Repeat("  ", depth) + drawStyle.Render(line))
			}
		}
	}
}
