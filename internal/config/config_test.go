package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/xfail/xfail"
)

// isolate points the working directory and the user config dir at empty
// temp dirs so tests never pick up a developer's real .xfail.yaml.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoad_When_NoConfigFile(t *testing.T) {
	isolate(t)

	cfg := Load()

	assert.Equal(t, xfail.DefaultInterpreter, cfg.Runner)
	assert.Equal(t, xfail.DefaultMarker, cfg.Marker)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Debug)
}

func TestLoad_When_LocalConfigFile(t *testing.T) {
	isolate(t)

	yaml := "runner: ./build/interp\nmarker: \"# TODO: legacy suite\"\nno_color: true\n"
	require.NoError(t, os.WriteFile(".xfail.yaml", []byte(yaml), 0o644))

	cfg := Load()

	assert.Equal(t, "./build/interp", cfg.Runner)
	assert.Equal(t, "# TODO: legacy suite", cfg.Marker)
	assert.True(t, cfg.NoColor)
}

func TestLoad_When_ConfigFileMalformed(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(".xfail.yaml", []byte(":\n\t- not yaml"), 0o644))

	cfg := Load()

	// degrades to defaults, never fails
	assert.Equal(t, xfail.DefaultInterpreter, cfg.Runner)
}

func TestLoad_When_UserConfigDirFile(t *testing.T) {
	isolate(t)

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if dir, err := os.UserConfigDir(); err != nil || dir != configHome {
		t.Skip("user config dir does not follow XDG_CONFIG_HOME on this platform")
	}
	dir := filepath.Join(configHome, "xfail")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".xfail.yaml"), []byte("runner: user-interp\n"), 0o644))

	cfg := Load()

	assert.Equal(t, "user-interp", cfg.Runner)
}

func TestMergeEnv_When_VariablesSet(t *testing.T) {
	isolate(t)
	t.Setenv("XFAIL_RUNNER", "env-interp")
	t.Setenv("XFAIL_DEBUG", "true")
	t.Setenv("NO_COLOR", "1")

	cfg := Load()
	cfg.MergeEnv()

	assert.Equal(t, "env-interp", cfg.Runner)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.NoColor)
}

func TestMergeEnv_When_NoColorIsNotABool(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "yes-please")

	cfg := Load()
	cfg.MergeEnv()

	// NO_COLOR is significant by presence alone
	assert.True(t, cfg.NoColor)
}

func TestMergeFlags_When_ExplicitFlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("XFAIL_RUNNER", "env-interp")

	cfg := Load()
	cfg.MergeEnv()
	cfg.MergeFlags(Flags{
		Runner:     "flag-interp",
		Marker:     "# TODO: from flag",
		NoColor:    true,
		NoColorSet: true,
	})

	assert.Equal(t, "flag-interp", cfg.Runner)
	assert.Equal(t, "# TODO: from flag", cfg.Marker)
	assert.True(t, cfg.NoColor)
}

func TestMergeFlags_When_UnsetFlagsDoNotClobber(t *testing.T) {
	isolate(t)

	cfg := Load()
	cfg.NoColor = true
	cfg.Debug = true
	cfg.MergeFlags(Flags{})

	assert.True(t, cfg.NoColor)
	assert.True(t, cfg.Debug)
	assert.Equal(t, xfail.DefaultInterpreter, cfg.Runner)
}
