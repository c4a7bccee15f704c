package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

func TestThemeCheckReportsEachFile(t *testing.T) {
	isolateConfig(t)

	good := writeFile(t, "good.theme", "# fine\nhome_bg = 1,2,3\n")
	bad := writeFile(t, "bad.theme", "home_bg = 1,2,3\nnot_a_role = 1,2,3\n")

	stdout, _, err := executeCommand("theme", "check", good, bad)
	require.ErrorContains(t, err, "1 of 2")
	require.Contains(t, stdout, good+": ok")
	require.Contains(t, stdout, bad+":2")
	require.Contains(t, stdout, "unknown role not_a_role")
}

func TestThemeCheckAllValid(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand("theme", "check", writeFile(t, "ok.theme", "ssh_char = S\n"))
	require.NoError(t, err)
	require.Contains(t, stdout, ": ok")
}

func TestThemeShowWritesThemeFileWhenPiped(t *testing.T) {
	isolateConfig(t)

	path := writeFile(t, "mine.theme", "home_bg = 9,8,7\n")
	stdout, _, err := executeCommand("theme", "show", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "home_bg = 9,8,7\n")

	parsed, err := theme.Parse(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Equal(t, theme.RGB{R: 9, G: 8, B: 7}, parsed.HomeBG)
}

func TestThemeShowUsesConfiguredTheme(t *testing.T) {
	isolateConfig(t)

	themePath := writeFile(t, "configured.theme", "path_bg = 4,4,4\n")
	cfgPath := writeFile(t, "config.yaml", fmt.Sprintf("theme: %s\n", themePath))

	stdout, _, err := executeCommand("--config", cfgPath, "theme", "show", "--format", "theme")
	require.NoError(t, err)
	require.Contains(t, stdout, "path_bg = 4,4,4\n")
}

func TestThemeShowPreview(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand("theme", "show", "--format", "preview")
	require.NoError(t, err)
	require.Contains(t, stdout, "Colors")
	require.Contains(t, stdout, "git_conflicted_char")
}

func TestThemeShowRejectsUnknownFormat(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeCommand("theme", "show", "--format", "json")
	require.ErrorContains(t, err, "json")
}

func TestThemeRolesListsEveryRole(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := executeCommand("theme", "roles")
	require.NoError(t, err)
	require.Contains(t, stdout, "ROLE")
	for _, role := range theme.Roles() {
		require.Contains(t, stdout, role.Name)
	}
	require.Regexp(t, `ssh_char\s+glyph`, stdout)
	require.Regexp(t, `ps_bg\s+color`, stdout)
}

func TestThemeDiffAgainstDefault(t *testing.T) {
	isolateConfig(t)

	path := writeFile(t, "mine.theme", "home_bg = 1,1,1\nssh_char = S\n")
	stdout, _, err := executeCommand("theme", "diff", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "--- default\n")
	require.Contains(t, stdout, "+home_bg = 1,1,1\n")
	require.Contains(t, stdout, "+ssh_char = 0053\n")
	require.Contains(t, stdout, "2 roles differ")
}

func TestThemeDiffIdentical(t *testing.T) {
	isolateConfig(t)

	a := writeFile(t, "a.theme", "path_bg = 5,5,5\n")
	b := writeFile(t, "b.theme", "# same palette\npath_bg = 5, 5, 5\n")

	stdout, _, err := executeCommand("theme", "diff", a, b)
	require.NoError(t, err)
	require.Contains(t, stdout, "themes are identical")
}
