// Package theme holds the color and glyph roles used to paint prompt
// segments, and the parser for the line-oriented theme file format.
package theme

import "fmt"

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Theme is the flat set of every themeable role. The role tag is the name
// used in theme files; roles.go maps each name back to its field.
type Theme struct {
	SeparatorFG RGB `role:"separator_fg"`

	HomeBG RGB `role:"home_bg"`
	HomeFG RGB `role:"home_fg"`
	PathBG RGB `role:"path_bg"`
	PathFG RGB `role:"path_fg"`
	CwdFG  RGB `role:"cwd_fg"`

	UsernameBG     RGB `role:"username_bg"`
	UsernameFG     RGB `role:"username_fg"`
	UsernameRootBG RGB `role:"username_root_bg"`
	UsernameRootFG RGB `role:"username_root_fg"`
	HostnameBG     RGB `role:"hostname_bg"`
	HostnameFG     RGB `role:"hostname_fg"`

	JobsBG RGB `role:"jobs_bg"`
	JobsFG RGB `role:"jobs_fg"`

	TimeBG RGB `role:"time_bg"`
	TimeFG RGB `role:"time_fg"`

	SSHBG   RGB  `role:"ssh_bg"`
	SSHFG   RGB  `role:"ssh_fg"`
	SSHChar rune `role:"ssh_char"`

	ReadOnlyBG   RGB  `role:"ro_bg"`
	ReadOnlyFG   RGB  `role:"ro_fg"`
	ReadOnlyChar rune `role:"ro_char"`

	GitCleanBG      RGB `role:"git_clean_bg"`
	GitCleanFG      RGB `role:"git_clean_fg"`
	GitDirtyBG      RGB `role:"git_dirty_bg"`
	GitDirtyFG      RGB `role:"git_dirty_fg"`
	GitAheadBG      RGB `role:"git_ahead_bg"`
	GitAheadFG      RGB `role:"git_ahead_fg"`
	GitBehindBG     RGB `role:"git_behind_bg"`
	GitBehindFG     RGB `role:"git_behind_fg"`
	GitConflictedBG RGB `role:"git_conflicted_bg"`
	GitConflictedFG RGB `role:"git_conflicted_fg"`
	GitNotStagedBG  RGB `role:"git_notstaged_bg"`
	GitNotStagedFG  RGB `role:"git_notstaged_fg"`
	GitStagedBG     RGB `role:"git_staged_bg"`
	GitStagedFG     RGB `role:"git_staged_fg"`
	GitUntrackedBG  RGB `role:"git_untracked_bg"`
	GitUntrackedFG  RGB `role:"git_untracked_fg"`

	GitAheadChar      rune `role:"git_ahead_char"`
	GitBehindChar     rune `role:"git_behind_char"`
	GitStagedChar     rune `role:"git_staged_char"`
	GitNotStagedChar  rune `role:"git_notstaged_char"`
	GitUntrackedChar  rune `role:"git_untracked_char"`
	GitConflictedChar rune `role:"git_conflicted_char"`

	CmdPassedBG RGB `role:"cmd_passed_bg"`
	CmdPassedFG RGB `role:"cmd_passed_fg"`
	CmdFailedBG RGB `role:"cmd_failed_bg"`
	CmdFailedFG RGB `role:"cmd_failed_fg"`

	PromptBG RGB `role:"ps_bg"`
	PromptFG RGB `role:"ps_fg"`

	VirtualEnvBG RGB `role:"virtual_env_bg"`
	VirtualEnvFG RGB `role:"virtual_env_fg"`

	NixShellBG RGB `role:"nixshell_bg"`
	NixShellFG RGB `role:"nixshell_fg"`
}

// Default returns a fully populated theme based on the classic powerline
// palette. Each call returns a fresh copy.
func Default() *Theme {
	var (
		white     = RGB{255, 255, 255}
		nearBlack = RGB{8, 8, 8}
		lightGrey = RGB{188, 188, 188}
		paleGrey  = RGB{228, 228, 228}
		midGrey   = RGB{88, 88, 88}
		darkGrey  = RGB{68, 68, 68}
		darkest   = RGB{48, 48, 48}
	)

	return &Theme{
		SeparatorFG: RGB{128, 128, 128},

		HomeBG: RGB{0, 135, 175},
		HomeFG: white,
		PathBG: RGB{58, 58, 58},
		PathFG: lightGrey,
		CwdFG:  paleGrey,

		UsernameBG:     midGrey,
		UsernameFG:     lightGrey,
		UsernameRootBG: RGB{175, 0, 0},
		UsernameRootFG: white,
		HostnameBG:     darkGrey,
		HostnameFG:     lightGrey,

		JobsBG: darkGrey,
		JobsFG: RGB{0, 175, 255},

		TimeBG: darkGrey,
		TimeFG: lightGrey,

		SSHBG:   RGB{215, 95, 0},
		SSHFG:   paleGrey,
		SSHChar: '⌁',

		ReadOnlyBG:   RGB{175, 0, 0},
		ReadOnlyFG:   paleGrey,
		ReadOnlyChar: '\uE0A2',

		GitCleanBG:      RGB{175, 215, 0},
		GitCleanFG:      nearBlack,
		GitDirtyBG:      RGB{215, 0, 95},
		GitDirtyFG:      white,
		GitAheadBG:      midGrey,
		GitAheadFG:      lightGrey,
		GitBehindBG:     midGrey,
		GitBehindFG:     lightGrey,
		GitConflictedBG: RGB{255, 0, 0},
		GitConflictedFG: white,
		GitNotStagedBG:  RGB{175, 95, 0},
		GitNotStagedFG:  white,
		GitStagedBG:     RGB{0, 95, 0},
		GitStagedFG:     white,
		GitUntrackedBG:  RGB{95, 0, 0},
		GitUntrackedFG:  white,

		GitAheadChar:      '⬆',
		GitBehindChar:     '⬇',
		GitStagedChar:     '✔',
		GitNotStagedChar:  '✎',
		GitUntrackedChar:  '+',
		GitConflictedChar: '✼',

		CmdPassedBG: darkest,
		CmdPassedFG: white,
		CmdFailedBG: RGB{215, 0, 95},
		CmdFailedFG: white,

		PromptBG: darkest,
		PromptFG: white,

		VirtualEnvBG: RGB{0, 175, 95},
		VirtualEnvFG: nearBlack,

		NixShellBG: RGB{135, 135, 175},
		NixShellFG: nearBlack,
	}
}

// Color returns the value of a color role.
func (t *Theme) Color(name string) (RGB, bool) {
	role, ok := roleIndex[name]
	if !ok || role.Kind != KindColor {
		return RGB{}, false
	}
	return *role.color(t), true
}

// Glyph returns the value of a glyph role.
func (t *Theme) Glyph(name string) (rune, bool) {
	role, ok := roleIndex[name]
	if !ok || role.Kind != KindGlyph {
		return 0, false
	}
	return *role.glyph(t), true
}
