package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	powerlineerrors "github.com/alexisbeaulieu97/powerline/pkg/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, path string, cfg *Config, err error)
	}{
		{
			name: "full configuration is parsed",
			contents: `theme: themes/dark.theme
shell: zsh
segments: [virtualenv, cwd, git, git-ahead, cmd]
cwd_max_depth: 4
log_level: debug
`,
			assert: func(t *testing.T, path string, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "zsh", cfg.Shell)
				require.Equal(t, []string{"virtualenv", "cwd", "git", "git-ahead", "cmd"}, cfg.Segments)
				require.Equal(t, 4, cfg.CwdMaxDepth)
				require.Equal(t, "debug", cfg.LogLevel)
				require.Equal(t, filepath.Join(filepath.Dir(path), "themes", "dark.theme"), cfg.Theme)
			},
		},
		{
			name:     "missing keys keep defaults",
			contents: "cwd_max_depth: 2\n",
			assert: func(t *testing.T, _ string, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "bare", cfg.Shell)
				require.Equal(t, "warn", cfg.LogLevel)
				require.Empty(t, cfg.Segments)
				require.Empty(t, cfg.Theme)
			},
		},
		{
			name:     "empty file is the default configuration",
			contents: "",
			assert: func(t *testing.T, _ string, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, Default(), cfg)
			},
		},
		{
			name:     "absolute theme path is kept",
			contents: "theme: /etc/powerline/default.theme\n",
			assert: func(t *testing.T, _ string, cfg *Config, err error) {
				require.NoError(t, err)
				require.Equal(t, "/etc/powerline/default.theme", cfg.Theme)
			},
		},
		{
			name:     "malformed yaml reports line",
			contents: "shell: bash\nsegments: [cwd\n",
			assert: func(t *testing.T, _ string, cfg *Config, err error) {
				require.Nil(t, cfg)
				var parseErr *powerlineerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "unknown key is rejected",
			contents: "colour: red\n",
			assert: func(t *testing.T, _ string, cfg *Config, err error) {
				require.Nil(t, cfg)
				var parseErr *powerlineerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name:     "unsupported shell",
			contents: "shell: fish\n",
			assert: func(t *testing.T, _ string, _ *Config, err error) {
				var validationErr *powerlineerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "shell", validationErr.Field)
			},
		},
		{
			name:     "invalid segment name",
			contents: "segments: [cwd, Git_Status]\n",
			assert: func(t *testing.T, _ string, _ *Config, err error) {
				var validationErr *powerlineerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "segments[1]", validationErr.Field)
				require.Contains(t, err.Error(), "segment_name")
			},
		},
		{
			name:     "duplicate segment",
			contents: "segments: [cwd, git, cwd]\n",
			assert: func(t *testing.T, _ string, _ *Config, err error) {
				var validationErr *powerlineerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "segments[2]", validationErr.Field)
			},
		},
		{
			name:     "depth out of range",
			contents: "cwd_max_depth: -1\n",
			assert: func(t *testing.T, _ string, _ *Config, err error) {
				var validationErr *powerlineerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "cwd_max_depth", validationErr.Field)
			},
		},
		{
			name:     "blank theme path",
			contents: "theme: \"  \"\n",
			assert: func(t *testing.T, _ string, _ *Config, err error) {
				var validationErr *powerlineerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "theme", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, path, cfg, err)
		})
	}
}

func TestParseConfigExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := ParseConfig(writeConfig(t, "theme: ~/themes/mine.theme\n"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "themes", "mine.theme"), cfg.Theme)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDefaultPathIsOptional(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadDefaultPathIsRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "powerline"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "powerline", "config.yaml"), []byte("shell: bash\n"), 0o644))

	path, err := DefaultPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "powerline", "config.yaml"), path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "bash", cfg.Shell)
}

func TestValidateConfigNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateConfig(nil))
}

func TestValidateSegmentsRejectsUnknownNames(t *testing.T) {
	t.Parallel()

	known := func(name string) bool { return name == "cwd" || name == "git" }

	require.NoError(t, ValidateSegments(&Config{Segments: []string{"git", "cwd"}}, known))
	require.NoError(t, ValidateSegments(Default(), known))

	err := ValidateSegments(&Config{Segments: []string{"cwd", "weather"}}, known)
	var validationErr *powerlineerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "segments[1]", validationErr.Field)
	require.ErrorContains(t, err, `unknown segment "weather"`)
}
