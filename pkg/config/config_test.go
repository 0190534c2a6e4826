package config

import (
	"os"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLoadDefaultConfig(t *testing.T) {
	var conf Config
	if err := LoadConfig(&conf, ""); err != nil {
		t.Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if conf.GL.Profile != ProfileCore || conf.GL.VersionMajor != 4 || conf.GL.VersionMinor != 5 {
		t.Errorf("expected core 4.5, got %v %v.%v", conf.GL.Profile, conf.GL.VersionMajor, conf.GL.VersionMinor)
	}
	if conf.Window.Width != 800 || conf.Window.Height != 600 {
		t.Errorf("expected 800x600, got %vx%v", conf.Window.Width, conf.Window.Height)
	}
	if !conf.Window.Resizable {
		t.Errorf("expected resizable window")
	}
	if !reflect.DeepEqual(conf, Default()) {
		t.Errorf("config.yaml and the defaults differ:\n%+v\n%+v", conf, Default())
	}
}

func TestNewConfigWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err = os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GLBOOT_WINDOW_TITLE", "no file")

	conf, err := NewConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Window.Title = "no file"
	if !reflect.DeepEqual(conf, want) {
		t.Errorf("expected the defaults:\n%+v\ngot\n%+v", want, conf)
	}

	if _, err = NewConfig([]string{"--config", "missing.yaml"}); err == nil {
		t.Errorf("expected error for a missing custom config")
	}
}

func TestLoadConfigFile(t *testing.T) {
	conf := Default()
	if err := LoadConfig(&conf, "testdata/compat.yaml"); err != nil {
		t.Fatal(err)
	}
	if conf.GL.Profile != ProfileCompat || conf.GL.VersionMajor != 4 || conf.GL.VersionMinor != 6 {
		t.Errorf("expected compat 4.6, got %v %v.%v", conf.GL.Profile, conf.GL.VersionMajor, conf.GL.VersionMinor)
	}
	if conf.Render.MaxFrames != 10 {
		t.Errorf("expected 10 frames, got %v", conf.Render.MaxFrames)
	}
	// not in the file
	if !conf.Window.VSync {
		t.Errorf("expected default vsync")
	}
	if conf.Monitoring.Port != 6601 {
		t.Errorf("expected default port, got %v", conf.Monitoring.Port)
	}
	if conf.Shaders.DebounceMs != 100 {
		t.Errorf("expected default debounce, got %v", conf.Shaders.DebounceMs)
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("GLBOOT_WINDOW_TITLE", "from env")
	t.Setenv("GLBOOT_RENDER_MAXFRAMES", "3")

	var conf Config
	if err := LoadConfig(&conf, ""); err != nil {
		t.Fatal(err)
	}
	if conf.Window.Title != "from env" {
		t.Errorf("title %q is not from env", conf.Window.Title)
	}
	if conf.Render.MaxFrames != 3 {
		t.Errorf("%v is not 3", conf.Render.MaxFrames)
	}
}

func TestNewConfigFlags(t *testing.T) {
	conf, err := NewConfig([]string{"--config", "testdata/compat.yaml", "--width", "1024", "--frames=1", "--screenshot", "out.png"})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Window.Width != 1024 || conf.Window.Height != 240 {
		t.Errorf("expected 1024x240, got %vx%v", conf.Window.Width, conf.Window.Height)
	}
	if conf.Render.MaxFrames != 1 {
		t.Errorf("expected 1 frame, got %v", conf.Render.MaxFrames)
	}
	if !conf.Render.Screenshot.IsEnabled() || conf.Render.Screenshot.Frame != 1 {
		t.Errorf("expected screenshot at frame 1, got %+v", conf.Render.Screenshot)
	}
}

func TestNewConfigBadFlag(t *testing.T) {
	if _, err := NewConfig([]string{"--config", "testdata/compat.yaml", "--gl.profile", "vulkan"}); err == nil {
		t.Errorf("expected profile error")
	}
	if _, err := NewConfig([]string{"--config", "testdata/compat.yaml", "--no-such-flag"}); err == nil {
		t.Errorf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.GL.Profile, c.GL.VersionMajor, c.GL.VersionMinor = ProfileCore, 4, 1
		c.Window.Width, c.Window.Height = 1, 1
		c.Render.ClearColor = "#000000ff"
		return c
	}
	tests := []struct {
		name   string
		mod    func(c *Config)
		hasErr bool
	}{
		{name: "valid", mod: func(c *Config) {}},
		{name: "compat upper case", mod: func(c *Config) { c.GL.Profile = "COMPAT" }},
		{name: "bad profile", mod: func(c *Config) { c.GL.Profile = "dx" }, hasErr: true},
		{name: "bad version", mod: func(c *Config) { c.GL.VersionMajor = 0 }, hasErr: true},
		{name: "gl 4.6", mod: func(c *Config) { c.GL.VersionMinor = 6 }},
		{name: "gl 5.0", mod: func(c *Config) { c.GL.VersionMajor, c.GL.VersionMinor = 5, 0 }},
		{name: "gl 4.0", mod: func(c *Config) { c.GL.VersionMinor = 0 }, hasErr: true},
		{name: "gl 3.3", mod: func(c *Config) { c.GL.VersionMajor, c.GL.VersionMinor = 3, 3 }, hasErr: true},
		{name: "compat 3.0", mod: func(c *Config) { c.GL.Profile, c.GL.VersionMajor, c.GL.VersionMinor = ProfileCompat, 3, 0 }, hasErr: true},
		{name: "es 3.0", mod: func(c *Config) { c.GL.Profile, c.GL.VersionMajor, c.GL.VersionMinor = "es", 3, 0 }, hasErr: true},
		{name: "es 4.1", mod: func(c *Config) { c.GL.Profile = "es" }, hasErr: true},
		{name: "negative minor", mod: func(c *Config) { c.GL.VersionMajor, c.GL.VersionMinor = 5, -1 }, hasErr: true},
		{name: "bad size", mod: func(c *Config) { c.Window.Height = 0 }, hasErr: true},
		{name: "bad color", mod: func(c *Config) { c.Render.ClearColor = "red" }, hasErr: true},
		{name: "bad frames", mod: func(c *Config) { c.Render.MaxFrames = -1 }, hasErr: true},
		{name: "bmp", mod: func(c *Config) { c.Render.Screenshot = Screenshot{Path: "a.BMP", Frame: 2} }},
		{name: "jpg", mod: func(c *Config) { c.Render.Screenshot = Screenshot{Path: "a.jpg", Frame: 1} }, hasErr: true},
		{name: "frame zero", mod: func(c *Config) { c.Render.Screenshot = Screenshot{Path: "a.png"} }, hasErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mod(&c)
			if err := c.Validate(); (err != nil) != tt.hasErr {
				t.Errorf("Validate() = %v, want error: %v", err, tt.hasErr)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want mgl32.Vec4
		err  bool
	}{
		{in: "#ff0000ff", want: mgl32.Vec4{1, 0, 0, 1}},
		{in: "#00FF00", want: mgl32.Vec4{0, 1, 0, 1}},
		{in: "#00000000", want: mgl32.Vec4{0, 0, 0, 0}},
		{in: "ff0000ff", err: true},
		{in: "#ff00", err: true},
		{in: "#gg0000ff", err: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if !got.ApproxEqual(tt.want) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMain(m *testing.M) {
	// isolate from a user config in the home dir
	_ = os.Setenv("HOME", os.TempDir())
	os.Exit(m.Run())
}
