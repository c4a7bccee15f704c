package theme

import (
	"fmt"
	"sort"
	"strings"
)

// GlyphSuffix marks a role whose value is a single character rather than a color.
const GlyphSuffix = "_char"

// Kind tells which value grammar a role uses.
type Kind int

const (
	KindColor Kind = iota
	KindGlyph
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindGlyph:
		return "glyph"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf classifies a role name by its suffix.
func KindOf(name string) Kind {
	if strings.HasSuffix(name, GlyphSuffix) {
		return KindGlyph
	}
	return KindColor
}

// Role is one settable entry of a Theme.
type Role struct {
	Name string
	Kind Kind

	color func(*Theme) *RGB
	glyph func(*Theme) *rune
}

func colorRole(name string, field func(*Theme) *RGB) Role {
	return Role{Name: name, Kind: KindColor, color: field}
}

func glyphRole(name string, field func(*Theme) *rune) Role {
	return Role{Name: name, Kind: KindGlyph, glyph: field}
}

var roleTable = []Role{
	colorRole("separator_fg", func(t *Theme) *RGB { return &t.SeparatorFG }),

	colorRole("home_bg", func(t *Theme) *RGB { return &t.HomeBG }),
	colorRole("home_fg", func(t *Theme) *RGB { return &t.HomeFG }),
	colorRole("path_bg", func(t *Theme) *RGB { return &t.PathBG }),
	colorRole("path_fg", func(t *Theme) *RGB { return &t.PathFG }),
	colorRole("cwd_fg", func(t *Theme) *RGB { return &t.CwdFG }),

	colorRole("username_bg", func(t *Theme) *RGB { return &t.UsernameBG }),
	colorRole("username_fg", func(t *Theme) *RGB { return &t.UsernameFG }),
	colorRole("username_root_bg", func(t *Theme) *RGB { return &t.UsernameRootBG }),
	colorRole("username_root_fg", func(t *Theme) *RGB { return &t.UsernameRootFG }),
	colorRole("hostname_bg", func(t *Theme) *RGB { return &t.HostnameBG }),
	colorRole("hostname_fg", func(t *Theme) *RGB { return &t.HostnameFG }),

	colorRole("jobs_bg", func(t *Theme) *RGB { return &t.JobsBG }),
	colorRole("jobs_fg", func(t *Theme) *RGB { return &t.JobsFG }),

	colorRole("time_bg", func(t *Theme) *RGB { return &t.TimeBG }),
	colorRole("time_fg", func(t *Theme) *RGB { return &t.TimeFG }),

	colorRole("ssh_bg", func(t *Theme) *RGB { return &t.SSHBG }),
	colorRole("ssh_fg", func(t *Theme) *RGB { return &t.SSHFG }),
	glyphRole("ssh_char", func(t *Theme) *rune { return &t.SSHChar }),

	colorRole("ro_bg", func(t *Theme) *RGB { return &t.ReadOnlyBG }),
	colorRole("ro_fg", func(t *Theme) *RGB { return &t.ReadOnlyFG }),
	glyphRole("ro_char", func(t *Theme) *rune { return &t.ReadOnlyChar }),

	colorRole("git_clean_bg", func(t *Theme) *RGB { return &t.GitCleanBG }),
	colorRole("git_clean_fg", func(t *Theme) *RGB { return &t.GitCleanFG }),
	colorRole("git_dirty_bg", func(t *Theme) *RGB { return &t.GitDirtyBG }),
	colorRole("git_dirty_fg", func(t *Theme) *RGB { return &t.GitDirtyFG }),
	colorRole("git_ahead_bg", func(t *Theme) *RGB { return &t.GitAheadBG }),
	colorRole("git_ahead_fg", func(t *Theme) *RGB { return &t.GitAheadFG }),
	colorRole("git_behind_bg", func(t *Theme) *RGB { return &t.GitBehindBG }),
	colorRole("git_behind_fg", func(t *Theme) *RGB { return &t.GitBehindFG }),
	colorRole("git_conflicted_bg", func(t *Theme) *RGB { return &t.GitConflictedBG }),
	colorRole("git_conflicted_fg", func(t *Theme) *RGB { return &t.GitConflictedFG }),
	colorRole("git_notstaged_bg", func(t *Theme) *RGB { return &t.GitNotStagedBG }),
	colorRole("git_notstaged_fg", func(t *Theme) *RGB { return &t.GitNotStagedFG }),
	colorRole("git_staged_bg", func(t *Theme) *RGB { return &t.GitStagedBG }),
	colorRole("git_staged_fg", func(t *Theme) *RGB { return &t.GitStagedFG }),
	colorRole("git_untracked_bg", func(t *Theme) *RGB { return &t.GitUntrackedBG }),
	colorRole("git_untracked_fg", func(t *Theme) *RGB { return &t.GitUntrackedFG }),

	glyphRole("git_ahead_char", func(t *Theme) *rune { return &t.GitAheadChar }),
	glyphRole("git_behind_char", func(t *Theme) *rune { return &t.GitBehindChar }),
	glyphRole("git_staged_char", func(t *Theme) *rune { return &t.GitStagedChar }),
	glyphRole("git_notstaged_char", func(t *Theme) *rune { return &t.GitNotStagedChar }),
	glyphRole("git_untracked_char", func(t *Theme) *rune { return &t.GitUntrackedChar }),
	glyphRole("git_conflicted_char", func(t *Theme) *rune { return &t.GitConflictedChar }),

	colorRole("cmd_passed_bg", func(t *Theme) *RGB { return &t.CmdPassedBG }),
	colorRole("cmd_passed_fg", func(t *Theme) *RGB { return &t.CmdPassedFG }),
	colorRole("cmd_failed_bg", func(t *Theme) *RGB { return &t.CmdFailedBG }),
	colorRole("cmd_failed_fg", func(t *Theme) *RGB { return &t.CmdFailedFG }),

	colorRole("ps_bg", func(t *Theme) *RGB { return &t.PromptBG }),
	colorRole("ps_fg", func(t *Theme) *RGB { return &t.PromptFG }),

	colorRole("virtual_env_bg", func(t *Theme) *RGB { return &t.VirtualEnvBG }),
	colorRole("virtual_env_fg", func(t *Theme) *RGB { return &t.VirtualEnvFG }),

	colorRole("nixshell_bg", func(t *Theme) *RGB { return &t.NixShellBG }),
	colorRole("nixshell_fg", func(t *Theme) *RGB { return &t.NixShellFG }),
}

var roleIndex = buildIndex(roleTable)

// buildIndex panics on a malformed table: it runs at package init and a
// duplicate or misnamed role is a programming error.
func buildIndex(roles []Role) map[string]Role {
	index := make(map[string]Role, len(roles))
	for _, role := range roles {
		if _, exists := index[role.Name]; exists {
			panic(fmt.Sprintf("theme: role %q listed twice", role.Name))
		}
		if KindOf(role.Name) != role.Kind {
			panic(fmt.Sprintf("theme: role %q is a %s but its name says %s", role.Name, role.Kind, KindOf(role.Name)))
		}
		index[role.Name] = role
	}
	return index
}

// Roles lists every role sorted by name.
func Roles() []Role {
	roles := make([]Role, 0, len(roleTable))
	for _, role := range roleTable {
		roles = append(roles, Role{Name: role.Name, Kind: role.Kind})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles
}

// Lookup finds a role by name.
func Lookup(name string) (Role, bool) {
	role, ok := roleIndex[name]
	if !ok {
		return Role{}, false
	}
	return Role{Name: role.Name, Kind: role.Kind}, true
}

// ChangedRoles names the roles a and b set to different values, in role
// table order. A nil theme stands for Default().
func ChangedRoles(a, b *Theme) []string {
	if a == nil {
		a = Default()
	}
	if b == nil {
		b = Default()
	}

	var changed []string
	for _, role := range roleTable {
		switch role.Kind {
		case KindGlyph:
			if *role.glyph(a) == *role.glyph(b) {
				continue
			}
		default:
			if *role.color(a) == *role.color(b) {
				continue
			}
		}
		changed = append(changed, role.Name)
	}
	return changed
}
