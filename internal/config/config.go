package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/xfail/xfail"
)

// configFileName is searched locally first, then under the user config dir.
const configFileName = ".xfail.yaml"

// Flags holds the values of command-line flags relevant to configuration.
// The *Set fields track whether a flag was given explicitly, so an unset
// boolean flag does not clobber file or environment settings.
type Flags struct {
	Runner  string
	Marker  string
	NoColor bool
	Debug   bool

	NoColorSet bool
	DebugSet   bool
}

// AppConfig is the resolved xfail configuration.
type AppConfig struct {
	Runner  string `yaml:"runner"`   // interpreter used to execute tests
	Marker  string `yaml:"marker"`   // tracking comment inserted above annotations
	NoColor bool   `yaml:"no_color"` // disable styled summary output
	Debug   bool   `yaml:"debug"`    // enable debug logging
}

// Load returns the configuration from defaults merged with .xfail.yaml.
// File problems degrade to defaults with a warning on stderr.
func Load() *AppConfig {
	cfg := &AppConfig{
		Runner: xfail.DefaultInterpreter,
		Marker: xfail.DefaultMarker,
	}

	path := configPath()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v. Using defaults.\n", path, err)
		}
		return cfg
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error unmarshalling config file %s: %v. Using defaults.\n", path, err)
		return cfg
	}

	if fileCfg.Runner != "" {
		cfg.Runner = fileCfg.Runner
	}
	if fileCfg.Marker != "" {
		cfg.Marker = fileCfg.Marker
	}
	cfg.NoColor = fileCfg.NoColor
	cfg.Debug = fileCfg.Debug
	return cfg
}

// configPath finds the .xfail.yaml configuration file.
// It checks the working directory first, then the user config dir.
func configPath() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "xfail", configFileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// MergeEnv overlays environment variables onto the configuration.
func (c *AppConfig) MergeEnv() {
	if v := os.Getenv("XFAIL_RUNNER"); v != "" {
		c.Runner = v
	}

	noColor := os.Getenv("XFAIL_NO_COLOR")
	if noColor == "" {
		noColor = os.Getenv("NO_COLOR")
	}
	if noColor != "" {
		if b, err := strconv.ParseBool(noColor); err == nil {
			c.NoColor = b
		} else {
			// NO_COLOR is significant by presence alone
			c.NoColor = true
		}
	}

	if v := os.Getenv("XFAIL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// MergeFlags overlays explicitly set command-line flags onto the
// configuration. Flags win over both the file and the environment.
func (c *AppConfig) MergeFlags(f Flags) {
	if f.Runner != "" {
		c.Runner = f.Runner
	}
	if f.Marker != "" {
		c.Marker = f.Marker
	}
	if f.NoColorSet {
		c.NoColor = f.NoColor
	}
	if f.DebugSet {
		c.Debug = f.Debug
	}
}
