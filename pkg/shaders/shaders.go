package shaders

import (
	"embed"
	"fmt"
	"os"

	"github.com/giongto35/glbootstrap/pkg/config"
)

//go:embed glsl
var builtin embed.FS

const (
	defaultVertex   = "glsl/default.vert"
	defaultFragment = "glsl/default.frag"
)

// Sources is a pair of vertex and fragment shader sources.
type Sources struct {
	Vertex   string
	Fragment string
}

// Load reads the shader files from the config,
// the built-in shaders are used for the empty paths.
func Load(conf config.Shaders) (src Sources, err error) {
	if src.Vertex, err = read(conf.Vertex, defaultVertex); err != nil {
		return
	}
	src.Fragment, err = read(conf.Fragment, defaultFragment)
	return
}

// Files returns the configured shader files.
func Files(conf config.Shaders) (files []string) {
	for _, f := range []string{conf.Vertex, conf.Fragment} {
		if f != "" {
			files = append(files, f)
		}
	}
	return
}

func read(path, fallback string) (string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = builtin.ReadFile(fallback)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("shader source: %w", err)
	}
	return string(data), nil
}
