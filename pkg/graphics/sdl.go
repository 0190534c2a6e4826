package graphics

import (
	"fmt"
	"strings"

	"github.com/giongto35/glbootstrap/pkg/config"
	"github.com/veandco/go-sdl2/sdl"
)

// Window is an SDL window with the OpenGL context bound to it.
// All the calls should be made from the thread that created the window.
type Window struct {
	w      *sdl.Window
	id     uint32
	ctx    sdl.GLContext
	closed bool
}

// Events is the summary of the polled window events.
type Events struct {
	Quit    bool
	Resized bool
}

// NewWindow initializes SDL, opens a window, creates the OpenGL context
// and loads the GL functions.
func NewWindow(win config.Window, glc config.GL) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	if !glc.AutoContext {
		if err := setGLAttrs(glc); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("gl attributes: %w", err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL) | uint32(sdl.WINDOW_ALLOW_HIGHDPI)
	if win.Hidden {
		flags |= uint32(sdl.WINDOW_HIDDEN)
	} else {
		flags |= uint32(sdl.WINDOW_SHOWN)
	}
	if win.Resizable {
		flags |= uint32(sdl.WINDOW_RESIZABLE)
	}

	w, err := sdl.CreateWindow(win.Title,
		int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED),
		int32(win.Width), int32(win.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		if err1 := w.Destroy(); err1 != nil {
			err = fmt.Errorf("%w, destroy err: %v", err, err1)
		}
		sdl.Quit()
		return nil, fmt.Errorf("gl context: %w", err)
	}

	window := &Window{w: w, ctx: ctx}
	if window.id, err = w.GetID(); err != nil {
		_ = window.Close()
		return nil, fmt.Errorf("window id: %w", err)
	}
	if err = window.BindContext(); err != nil {
		_ = window.Close()
		return nil, fmt.Errorf("gl bind: %w", err)
	}
	if err = initContext(sdl.GLGetProcAddress); err != nil {
		_ = window.Close()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	SetViewport(window.DrawableSize())
	return window, nil
}

func setGLAttrs(c config.GL) error {
	set := sdl.GLSetAttribute
	attrs := [][2]int{{sdl.GL_DOUBLEBUFFER, 1}}
	flags := 0
	if c.Debug {
		flags |= int(sdl.GL_CONTEXT_DEBUG_FLAG)
	}

	switch strings.ToLower(c.Profile) {
	case config.ProfileCore:
		attrs = append(attrs, [2]int{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE})
		// macOS won't give a core context otherwise
		flags |= int(sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	case config.ProfileCompat:
		attrs = append(attrs, [2]int{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY})
	default:
		return fmt.Errorf("unsupported gl context: %v", c.Profile)
	}
	attrs = append(attrs,
		[2]int{sdl.GL_CONTEXT_MAJOR_VERSION, c.VersionMajor},
		[2]int{sdl.GL_CONTEXT_MINOR_VERSION, c.VersionMinor},
		[2]int{sdl.GL_CONTEXT_FLAGS, flags},
	)

	for _, a := range attrs {
		if err := set(sdl.GLattr(a[0]), a[1]); err != nil {
			return err
		}
	}
	return nil
}

// BindContext explicitly binds the context to the current thread.
func (w *Window) BindContext() error { return w.w.GLMakeCurrent(w.ctx) }

// SetVSync enables or disables synchronization of swaps with the display.
func (w *Window) SetVSync(on bool) error {
	interval := 0
	if on {
		interval = 1
	}
	return sdl.GLSetSwapInterval(interval)
}

// ID returns the SDL id of the window.
func (w *Window) ID() uint32 { return w.id }

// DrawableSize returns the size of the window framebuffer in pixels,
// it may differ from the window size on high-DPI displays.
func (w *Window) DrawableSize() (int32, int32) { return w.w.GLGetDrawableSize() }

// Swap shows the back buffer.
func (w *Window) Swap() { w.w.GLSwap() }

// PollEvents drains the pending events and returns
// whether the user wants to quit or the window has changed its size.
// Events of other windows are skipped.
func (w *Window) PollEvents() (ev Events) {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch t := e.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true
		case *sdl.WindowEvent:
			if t.WindowID != w.id {
				continue
			}
			switch t.Event {
			case sdl.WINDOWEVENT_CLOSE:
				ev.Quit = true
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				ev.Resized = true
			}
		}
	}
	return
}

// Close destroys the context and the window, and shuts down SDL.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	sdl.GLDeleteContext(w.ctx)
	err := w.w.Destroy()
	sdl.Quit()
	return err
}

// SDLVersion returns the version of the linked SDL library.
func SDLVersion() string {
	var v sdl.Version
	sdl.GetVersion(&v)
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
