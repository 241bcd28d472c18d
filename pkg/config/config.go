// Package config builds the kb configuration once at startup from built-in
// defaults, an optional YAML file and the environment, in increasing order
// of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/miketth/kb/pkg/kb"
	"codeberg.org/miketth/kb/pkg/notify"
	"codeberg.org/miketth/kb/pkg/setxkbmap"
	"codeberg.org/miketth/kb/pkg/xkblayouts"
	"github.com/adrg/xdg"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

const (
	EnvLayouts   = "LAYOUTS"
	EnvHome      = "HOME"
	EnvStateFile = "KEYBOARD_LAYOUT_FILE"

	stateFileName  = ".layout"
	configFileName = "kb/config.yaml"
)

// LookupEnv has the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

type Config struct {
	Layouts []string

	// StateFile is an explicit state file path, used verbatim.
	StateFile    string
	stateFileSet bool
	Home         string
	homeSet      bool

	NotifyTimeout  time.Duration
	NotifyDisabled bool

	QueryCommand []string
	SetCommand   []string

	EvdevXMLPath string

	// File is the config file that was loaded, if any.
	File string
}

type fileConfig struct {
	Layouts   []string `yaml:"layouts"`
	StateFile string   `yaml:"state_file"`
	EvdevXML  string   `yaml:"evdev_xml"`
	Notify    struct {
		Timeout  time.Duration `yaml:"timeout"`
		Disabled bool          `yaml:"disabled"`
	} `yaml:"notify"`
	Commands struct {
		Query string `yaml:"query"`
		Set   string `yaml:"set"`
	} `yaml:"commands"`
}

func Default() *Config {
	return &Config{
		Layouts:       kb.NormalizeLayouts(kb.DefaultLayouts),
		NotifyTimeout: notify.DefaultTimeout,
		QueryCommand:  setxkbmap.DefaultQueryCommand,
		SetCommand:    setxkbmap.DefaultSetCommand,
		EvdevXMLPath:  xkblayouts.DefaultRegistryPath,
	}
}

// DefaultConfigPath returns the config file in the XDG config directories,
// or "" if there is none.
func DefaultConfigPath() string {
	path, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return ""
	}
	return path
}

// Load reads the config file at path (skipped when path is empty) and then
// applies the environment from lookup.
func Load(path string, lookup LookupEnv) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	cfg.applyEnv(lookup)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: decode yaml: %w", kb.ErrConfig, err)
	}

	if fc.Layouts != nil {
		c.Layouts = kb.NormalizeLayouts(fc.Layouts)
	}
	if fc.StateFile != "" {
		c.StateFile = fc.StateFile
		c.stateFileSet = true
	}
	if fc.EvdevXML != "" {
		c.EvdevXMLPath = fc.EvdevXML
	}
	if fc.Notify.Timeout > 0 {
		c.NotifyTimeout = fc.Notify.Timeout
	}
	c.NotifyDisabled = fc.Notify.Disabled

	if fc.Commands.Query != "" {
		c.QueryCommand, err = splitCommand(fc.Commands.Query)
		if err != nil {
			return fmt.Errorf("commands.query: %w", err)
		}
	}
	if fc.Commands.Set != "" {
		c.SetCommand, err = splitCommand(fc.Commands.Set)
		if err != nil {
			return fmt.Errorf("commands.set: %w", err)
		}
	}

	c.File = path
	return nil
}

func (c *Config) applyEnv(lookup LookupEnv) {
	if lookup == nil {
		return
	}

	if val, ok := lookup(EnvLayouts); ok {
		c.Layouts = kb.SplitLayouts(val)
	}
	if val, ok := lookup(EnvStateFile); ok {
		c.StateFile = val
		c.stateFileSet = true
	}
	if val, ok := lookup(EnvHome); ok {
		c.Home = val
		c.homeSet = true
	}
}

// StatePath resolves the state file: the explicit override if any, else
// .layout in the home directory. "~" is not expanded. An empty HOME yields
// the relative path ".layout".
func (c *Config) StatePath() (string, error) {
	if c.stateFileSet {
		return c.StateFile, nil
	}

	if !c.homeSet {
		return "", fmt.Errorf("%w: %s is not set and %s is not set", kb.ErrConfig, EnvHome, EnvStateFile)
	}

	return filepath.Join(c.Home, stateFileName), nil
}

func splitCommand(s string) ([]string, error) {
	argv, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("%w: split %q: %w", kb.ErrConfig, s, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", kb.ErrConfig)
	}
	return argv, nil
}
