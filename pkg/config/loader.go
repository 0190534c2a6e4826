package config

import (
	"os"
	"path/filepath"

	"github.com/kkyr/fig"
)

const EnvPrefix = "GLBOOT"

const DefaultFile = "config.yaml"

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file,
// either a directory or a yaml file.
// Reads and puts environment variables with the prefix GLBOOT_.
// Params from the config should be in uppercase separated with _.
func LoadConfig(config any, path string) error {
	file, dirs := DefaultFile, []string{path}
	if path != "" {
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			file, dirs = filepath.Base(path), []string{filepath.Dir(path)}
		}
	} else {
		dirs = append(dirs, ".", "configs", "../../configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".glbootstrap"))
		}
	}
	return fig.Load(config, fig.File(file), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
}

// LoadConfigEnv fills the config only with the defaults and environment variables.
func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}
