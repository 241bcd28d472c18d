package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/miketth/kb/pkg/kb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLayoutsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{"custom", map[string]string{"LAYOUTS": "ca,us,pl"}, []string{"ca", "us", "pl"}},
		{"empty", map[string]string{"LAYOUTS": ""}, []string{}},
		{"unset", map[string]string{}, []string{"us", "fr"}},
		{"only separator", map[string]string{"LAYOUTS": ","}, []string{}},
		{"duplicate", map[string]string{"LAYOUTS": "us,us"}, []string{"us"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", env(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Layouts)
		})
	}
}

func TestStatePath(t *testing.T) {
	cfg, err := Load("", env(map[string]string{"HOME": "/home/alice"}))
	require.NoError(t, err)

	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/.layout", path)
}

func TestStatePathOverrideIsLiteral(t *testing.T) {
	cfg, err := Load("", env(map[string]string{
		"HOME":                 "/home/alice",
		"KEYBOARD_LAYOUT_FILE": "~/layout.txt",
	}))
	require.NoError(t, err)

	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "~/layout.txt", path)
}

func TestStatePathOverrideWithoutHome(t *testing.T) {
	cfg, err := Load("", env(map[string]string{"KEYBOARD_LAYOUT_FILE": "/tmp/kb-layout"}))
	require.NoError(t, err)

	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kb-layout", path)
}

func TestStatePathWithoutHome(t *testing.T) {
	cfg, err := Load("", env(nil))
	require.NoError(t, err)

	_, err = cfg.StatePath()
	assert.ErrorIs(t, err, kb.ErrConfig)
}

func TestStatePathEmptyHome(t *testing.T) {
	cfg, err := Load("", env(map[string]string{"HOME": ""}))
	require.NoError(t, err)

	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, ".layout", path)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
layouts: [us, de, us]
state_file: /var/tmp/layout
evdev_xml: /opt/xkb/evdev.xml
notify:
  timeout: 500ms
commands:
  query: "setxkbmap -display ':1' -query"
  set: setxkbmap -display :1
`)

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, []string{"us", "de"}, cfg.Layouts)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyTimeout)
	assert.False(t, cfg.NotifyDisabled)
	assert.Equal(t, "/opt/xkb/evdev.xml", cfg.EvdevXMLPath)
	assert.Equal(t, []string{"setxkbmap", "-display", ":1", "-query"}, cfg.QueryCommand)
	assert.Equal(t, []string{"setxkbmap", "-display", ":1"}, cfg.SetCommand)

	statePath, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/layout", statePath)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "layouts: [us, de]\nstate_file: /var/tmp/layout\n")

	cfg, err := Load(path, env(map[string]string{
		"LAYOUTS":              "fr,it",
		"KEYBOARD_LAYOUT_FILE": "/tmp/other",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"fr", "it"}, cfg.Layouts)
	statePath, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other", statePath)
}

func TestLoadFileDisabledNotifications(t *testing.T) {
	path := writeConfig(t, "notify:\n  disabled: true\n")

	cfg, err := Load(path, env(nil))
	require.NoError(t, err)
	assert.True(t, cfg.NotifyDisabled)
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, []string{"us", "fr"}, cfg.Layouts)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "layouts: {not: a list}\n"), env(nil))
	assert.ErrorIs(t, err, kb.ErrConfig)

	_, err = Load(writeConfig(t, "commands:\n  set: \"setxkbmap 'unterminated\"\n"), env(nil))
	assert.ErrorIs(t, err, kb.ErrConfig)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"us", "fr"}, cfg.Layouts)
	assert.Equal(t, []string{"setxkbmap", "-query"}, cfg.QueryCommand)
	assert.Equal(t, "/usr/share/X11/xkb/rules/evdev.xml", cfg.EvdevXMLPath)
}
