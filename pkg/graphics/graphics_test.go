package graphics

import (
	"errors"
	"os"
	"testing"

	"github.com/giongto35/glbootstrap/pkg/config"
	"github.com/giongto35/glbootstrap/pkg/thread"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	testVertex = `#version 410 core
void main() { gl_Position = vec4(0.0, 0.0, 0.0, 1.0); }
`
	testFragment = `#version 410 core
out vec4 color;
void main() { color = vec4(1.0); }
`
)

func TestMain(m *testing.M) {
	thread.Wrap(func() { os.Exit(m.Run()) })
}

// withWindow opens a hidden window or skips the test
// when there is no video device with GL 4.1 available.
func withWindow(t *testing.T, fn func(w *Window)) {
	t.Helper()
	var w *Window
	var err error
	thread.Call(func() {
		w, err = NewWindow(
			config.Window{Title: "test", Width: 64, Height: 64, Hidden: true},
			config.GL{Profile: config.ProfileCore, VersionMajor: 4, VersionMinor: 1},
		)
	})
	if err != nil {
		t.Skipf("no gl context: %v", err)
	}
	defer thread.Call(func() {
		if err := w.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	thread.Call(func() { fn(w) })
}

func TestBuildProgram(t *testing.T) {
	withWindow(t, func(w *Window) {
		p, err := BuildProgram(testVertex, testFragment)
		if err != nil {
			t.Errorf("build: %v", err)
			return
		}
		if p.ID() == 0 {
			t.Errorf("no program id")
		}
		p.Use()
		p.Delete()
		p.Delete()
	})
}

func TestInvalidShaderSource(t *testing.T) {
	withWindow(t, func(w *Window) {
		for _, kind := range []ShaderKind{Vertex, Fragment} {
			s, err := NewShader(kind, "foobar")
			if err == nil {
				s.Delete()
				t.Errorf("%v shader compiled from garbage", kind)
				continue
			}
			var be *BuildError
			if !errors.As(err, &be) || be.Log == "" {
				t.Errorf("expected non-empty build error, got %v", err)
			}
		}
	})
}

func TestLinkWithoutShaders(t *testing.T) {
	withWindow(t, func(w *Window) {
		if _, err := NewProgram(); err == nil {
			t.Errorf("expected error")
		}
		if _, err := NewProgram(&Shader{}); err == nil {
			t.Errorf("expected error for a deleted shader")
		}
	})
}

func TestClearAndRead(t *testing.T) {
	withWindow(t, func(w *Window) {
		t.Logf("driver: %+v, SDL %v", GetDriverInfo(), SDLVersion())
		SetClearColor(mgl32.Vec4{1, 0, 0, 1})
		Clear()
		width, height := w.DrawableSize()
		data, err := ReadPixels(int(width), int(height))
		if err != nil {
			t.Errorf("read: %v", err)
			return
		}
		if len(data) != int(width*height*4) {
			t.Errorf("wrong size %v", len(data))
		}
		w.Swap()
		_ = w.PollEvents()
	})
}

func TestPollEvents(t *testing.T) {
	withWindow(t, func(w *Window) {
		_ = w.PollEvents()
		id := w.ID()

		tests := []struct {
			name  string
			event sdl.Event
			want  Events
		}{
			{
				name:  "resize",
				event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, WindowID: id, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 32, Data2: 32},
				want:  Events{Resized: true},
			},
			{
				name:  "close",
				event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, WindowID: id, Event: sdl.WINDOWEVENT_CLOSE},
				want:  Events{Quit: true},
			},
			{name: "quit", event: &sdl.QuitEvent{Type: sdl.QUIT}, want: Events{Quit: true}},
			{
				name:  "other window",
				event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, WindowID: id + 1, Event: sdl.WINDOWEVENT_CLOSE},
				want:  Events{},
			},
		}
		for _, tt := range tests {
			if _, err := sdl.PushEvent(tt.event); err != nil {
				t.Errorf("%v: push: %v", tt.name, err)
				continue
			}
			if got := w.PollEvents(); got != tt.want {
				t.Errorf("%v: got %+v, want %+v", tt.name, got, tt.want)
			}
		}
	})
}

func TestViewport(t *testing.T) {
	withWindow(t, func(w *Window) {
		width, height := w.DrawableSize()
		if got, want := Viewport(), [4]int32{0, 0, width, height}; got != want {
			t.Errorf("initial viewport %v, want %v", got, want)
		}
		SetViewport(1, 2)
		if got, want := Viewport(), [4]int32{0, 0, 1, 2}; got != want {
			t.Errorf("viewport %v, want %v", got, want)
		}
	})
}
