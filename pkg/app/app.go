// Package app runs the render loop.
// Everything here touches SDL or OpenGL and must be called
// from the main thread (see pkg/thread).
package app

import (
	"context"
	"errors"
	"time"

	"github.com/giongto35/glbootstrap/pkg/config"
	"github.com/giongto35/glbootstrap/pkg/graphics"
	"github.com/giongto35/glbootstrap/pkg/logger"
	"github.com/giongto35/glbootstrap/pkg/monitoring"
	"github.com/giongto35/glbootstrap/pkg/screenshot"
	"github.com/giongto35/glbootstrap/pkg/shaders"
)

type App struct {
	conf    config.Config
	log     *logger.Logger
	win     *graphics.Window
	program *graphics.Program
	watcher *shaders.Watcher
	frames  int
	timer   monitoring.DeltaTimer
}

// New opens the window with the OpenGL context and builds the shader program.
func New(conf config.Config, log *logger.Logger) (*App, error) {
	a := &App{conf: conf, log: log.Module("app")}

	win, err := graphics.NewWindow(conf.Window, conf.GL)
	if err != nil {
		return nil, err
	}
	a.win = win

	if err = win.SetVSync(conf.Window.VSync); err != nil {
		a.log.Warn().Err(err).Msgf("Couldn't set vsync to %v", conf.Window.VSync)
	}
	a.printDriverInfo()
	graphics.SetClearColor(conf.Render.Color())

	src, err := shaders.Load(conf.Shaders)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.program, err = a.build(src); err != nil {
		a.Close()
		return nil, err
	}

	if conf.Shaders.Watch {
		if err = a.watch(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) watch() error {
	files := shaders.Files(a.conf.Shaders)
	if len(files) == 0 {
		a.log.Warn().Msg("Nothing to watch with the built-in shaders")
		return nil
	}
	w, err := shaders.NewWatcher(files, time.Duration(a.conf.Shaders.DebounceMs)*time.Millisecond, a.log)
	if err != nil {
		return err
	}
	a.watcher = w
	a.watcher.Run()
	a.log.Info().Msgf("Watching shaders: %v", files)
	return nil
}

func (a *App) printDriverInfo() {
	info := graphics.GetDriverInfo()
	a.log.Info().Msgf("[SDL] Version: %v", graphics.SDLVersion())
	a.log.Info().Msgf("[OpenGL] Version: %v", info.Version)
	a.log.Info().Msgf("[OpenGL] Vendor: %v", info.Vendor)
	a.log.Info().Msgf("[OpenGL] Renderer: %v", info.Renderer)
	a.log.Info().Msgf("[OpenGL] GLSL Version: %v", info.GLSL)
}

func (a *App) build(src shaders.Sources) (*graphics.Program, error) {
	p, err := graphics.BuildProgram(src.Vertex, src.Fragment)
	monitoring.ObserveBuild(err)
	if err != nil {
		var be *graphics.BuildError
		if errors.As(err, &be) {
			a.log.Error().Str("stage", be.Stage).Msgf("Driver log:\n%v", be.Log)
		}
		return nil, err
	}
	a.log.Info().Uint32("id", p.ID()).Msg("Shader program has been linked")
	return p, nil
}

// reload rebuilds the program from the shader files,
// the old program stays in use if the new one fails.
func (a *App) reload() {
	src, err := shaders.Load(a.conf.Shaders)
	if err != nil {
		a.log.Error().Err(err).Msg("Shader reload has failed")
		return
	}
	p, err := a.build(src)
	if err != nil {
		a.log.Warn().Msg("Keeping the previous shader program")
		return
	}
	a.program.Delete()
	a.program = p
}

// Run renders frames until the user quits, the context is canceled
// or the frame limit is reached.
func (a *App) Run(ctx context.Context) error {
	var changes <-chan struct{}
	if a.watcher != nil {
		changes = a.watcher.Changes()
	}
	limit := a.conf.Render.MaxFrames

	for {
		select {
		case <-ctx.Done():
			a.log.Info().Msgf("Render loop has been canceled after %v frames", a.frames)
			return nil
		case <-changes:
			a.reload()
		default:
		}

		ev := a.win.PollEvents()
		if ev.Quit {
			a.log.Info().Msgf("Quit after %v frames", a.frames)
			return nil
		}
		if ev.Resized {
			w, h := a.win.DrawableSize()
			graphics.SetViewport(w, h)
			a.log.Debug().Msgf("Viewport %v", graphics.Viewport())
		}

		a.frame()

		if limit > 0 && a.frames >= limit {
			a.log.Info().Msgf("Frame limit %v has been reached", limit)
			return nil
		}
	}
}

func (a *App) frame() {
	graphics.Clear()
	a.program.Use()
	a.frames++

	if s := a.conf.Render.Screenshot; s.IsEnabled() && a.frames == s.Frame {
		if err := a.screenshot(s.Path); err != nil {
			a.log.Error().Err(err).Msg("Screenshot has failed")
		} else {
			a.log.Info().Msgf("Screenshot saved into %v", s.Path)
		}
	}

	a.win.Swap()
	monitoring.ObserveFrame(a.timer.Next())
}

// screenshot reads the back buffer, so it goes before the swap.
func (a *App) screenshot(path string) error {
	w, h := a.win.DrawableSize()
	pixels, err := graphics.ReadPixels(int(w), int(h))
	if err != nil {
		return err
	}
	img, err := screenshot.FromGL(pixels, int(w), int(h))
	if err != nil {
		return err
	}
	return screenshot.Save(path, img)
}

// Frames returns the number of rendered frames.
func (a *App) Frames() int { return a.frames }

// Close releases everything in the reverse order.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.log.Error().Err(err).Msg("Shader watcher stop")
		}
		a.watcher = nil
	}
	a.program.Delete()
	a.program = nil
	if a.win != nil {
		if err := a.win.Close(); err != nil {
			a.log.Error().Err(err).Msg("Window close")
		}
		a.win = nil
	}
}
