package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kkyr/fig"
	flag "github.com/spf13/pflag"
)

type Config struct {
	Debug      bool
	Log        Log
	Window     Window
	GL         GL
	Render     Render
	Shaders    Shaders
	Monitoring Monitoring
}

type Log struct {
	Console bool
	NoColor bool
	Tag     string
}

type Window struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Hidden    bool
	VSync     bool
}

// GL describes the requested OpenGL context.
// Profile is one of: core, compat.
// The GL bindings and the built-in shaders need desktop OpenGL 4.1+.
// With AutoContext the driver picks the context and Profile
// with the version are ignored.
type GL struct {
	Profile      string
	VersionMajor int
	VersionMinor int
	AutoContext  bool
	Debug        bool
}

const (
	ProfileCore   = "core"
	ProfileCompat = "compat"
)

// Minimal desktop OpenGL version.
const (
	MinVersionMajor = 4
	MinVersionMinor = 1
)

type Render struct {
	// ClearColor in the #RRGGBBAA or #RRGGBB form.
	ClearColor string
	// MaxFrames stops the render loop after that many frames, 0 is unbounded.
	MaxFrames  int
	Screenshot Screenshot
}

type Screenshot struct {
	// Path of the image file (.png or .bmp), empty disables screenshots.
	Path  string
	Frame int
}

func (s Screenshot) IsEnabled() bool { return s.Path != "" }

// Shaders has paths to GLSL sources.
// Empty paths fall back to the built-in shaders.
type Shaders struct {
	Vertex     string
	Fragment   string
	Watch      bool
	DebounceMs int
}

type Monitoring struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool `json:"metric_enabled"`
	ProfilingEnabled bool `json:"profiling_enabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

// Default returns the config used when there is no config file,
// same as configs/config.yaml.
func Default() Config {
	return Config{
		Log:    Log{Console: true, Tag: "glboot"},
		Window: Window{Title: "OpenGL", Width: 800, Height: 600, Resizable: true, VSync: true},
		GL:     GL{Profile: ProfileCore, VersionMajor: 4, VersionMinor: 5},
		Render: Render{
			ClearColor: "#B300B3FF",
			Screenshot: Screenshot{Frame: 1},
		},
		Shaders:    Shaders{DebounceMs: 100},
		Monitoring: Monitoring{Port: 6601},
	}
}

// NewConfig loads the config from a file (the --config flag or the default locations)
// with environment overrides and then applies command-line flags on top of it.
// Without the config file in the default locations the defaults are used.
func NewConfig(args []string) (conf Config, err error) {
	pre := flag.NewFlagSet("pre", flag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.SetOutput(io.Discard)
	path := pre.StringP("config", "c", "", "")
	_ = pre.Parse(args)

	conf = Default()
	err = LoadConfig(&conf, *path)
	if *path == "" && errors.Is(err, fig.ErrFileNotFound) {
		err = LoadConfigEnv(&conf)
	}
	if err != nil {
		return conf, fmt.Errorf("config: %w", err)
	}

	fs := flag.NewFlagSet("glbootstrap", flag.ContinueOnError)
	fs.StringP("config", "c", *path, "Set custom configuration file path")
	conf.WithFlags(fs)
	if err = fs.Parse(args); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

// WithFlags defines flags with default values set to the current config params.
func (c *Config) WithFlags(fs *flag.FlagSet) {
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "Enable debug logging")
	fs.BoolVar(&c.Log.Console, "log.console", c.Log.Console, "Human-readable log output")
	fs.StringVar(&c.Window.Title, "title", c.Window.Title, "Window title")
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "Window width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "Window height")
	fs.BoolVar(&c.Window.VSync, "vsync", c.Window.VSync, "Synchronize buffer swaps with the display refresh")
	fs.StringVar(&c.GL.Profile, "gl.profile", c.GL.Profile, "OpenGL profile (core, compat)")
	fs.IntVar(&c.GL.VersionMajor, "gl.major", c.GL.VersionMajor, "OpenGL major version")
	fs.IntVar(&c.GL.VersionMinor, "gl.minor", c.GL.VersionMinor, "OpenGL minor version")
	fs.StringVar(&c.Render.ClearColor, "clear", c.Render.ClearColor, "Clear color (#RRGGBBAA)")
	fs.IntVar(&c.Render.MaxFrames, "frames", c.Render.MaxFrames, "Quit after that many frames (0 is unbounded)")
	fs.StringVar(&c.Render.Screenshot.Path, "screenshot", c.Render.Screenshot.Path, "Save the framebuffer into png or bmp file")
	fs.IntVar(&c.Render.Screenshot.Frame, "screenshot.frame", c.Render.Screenshot.Frame, "Frame number to capture")
	fs.StringVar(&c.Shaders.Vertex, "vertex", c.Shaders.Vertex, "Vertex shader file")
	fs.StringVar(&c.Shaders.Fragment, "fragment", c.Shaders.Fragment, "Fragment shader file")
	fs.BoolVar(&c.Shaders.Watch, "watch", c.Shaders.Watch, "Rebuild the shader program on file changes")
	fs.IntVar(&c.Monitoring.Port, "monitoring.port", c.Monitoring.Port, "Monitoring server port")
	fs.BoolVar(&c.Monitoring.MetricEnabled, "metrics", c.Monitoring.MetricEnabled, "Expose Prometheus metrics")
}

// Validate checks the values which can't be fixed later.
func (c *Config) Validate() error {
	switch strings.ToLower(c.GL.Profile) {
	case ProfileCore, ProfileCompat:
	default:
		return fmt.Errorf("unsupported gl profile: %q", c.GL.Profile)
	}
	if c.GL.VersionMinor < 0 || c.GL.VersionMajor < MinVersionMajor ||
		(c.GL.VersionMajor == MinVersionMajor && c.GL.VersionMinor < MinVersionMinor) {
		return fmt.Errorf("gl version %v.%v is lower than %v.%v",
			c.GL.VersionMajor, c.GL.VersionMinor, MinVersionMajor, MinVersionMinor)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("bad window size: %vx%v", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseColor(c.Render.ClearColor); err != nil {
		return err
	}
	if c.Render.MaxFrames < 0 {
		return fmt.Errorf("bad max frames: %v", c.Render.MaxFrames)
	}
	if s := c.Render.Screenshot; s.IsEnabled() {
		switch strings.ToLower(filepath.Ext(s.Path)) {
		case ".png", ".bmp":
		default:
			return fmt.Errorf("unsupported screenshot format: %v", s.Path)
		}
		if s.Frame < 1 {
			return fmt.Errorf("bad screenshot frame: %v", s.Frame)
		}
	}
	return nil
}

// Color returns the parsed clear color.
// The config must be validated first.
func (r Render) Color() mgl32.Vec4 {
	c, _ := ParseColor(r.ClearColor)
	return c
}
