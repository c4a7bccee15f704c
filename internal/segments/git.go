package segments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

// maxHistoryWalk bounds the commits visited when counting ahead/behind.
// Past it the counts are lower bounds.
const maxHistoryWalk = 10000

type gitStatus struct {
	Branch string

	Ahead  int
	Behind int

	Staged     int
	NotStaged  int
	Untracked  int
	Conflicted int
}

func (s *gitStatus) Dirty() bool {
	return s.Staged+s.NotStaged+s.Untracked+s.Conflicted > 0
}

type gitResult struct {
	status *gitStatus
	err    error
}

// gitProbe reads repository state once per working directory and shares it
// between the git detectors of one registry.
type gitProbe struct {
	mu    sync.Mutex
	cache map[string]gitResult
}

func newGitProbe() *gitProbe {
	return &gitProbe{cache: make(map[string]gitResult)}
}

// status returns nil without error when dir is not inside a repository.
func (g *gitProbe) status(env detector.Env) (*gitStatus, error) {
	dir, err := workingDir(env)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if cached, ok := g.cache[dir]; ok {
		return cached.status, cached.err
	}
	st, err := readGitStatus(dir)
	g.cache[dir] = gitResult{status: st, err: err}
	return st, err
}

func readGitStatus(dir string) (*gitStatus, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	st := &gitStatus{}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn branch: HEAD points at a ref with no commits yet.
		ref, refErr := repo.Storer.Reference(plumbing.HEAD)
		if refErr != nil {
			return nil, fmt.Errorf("read HEAD: %w", refErr)
		}
		st.Branch = ref.Target().Short()
	case err != nil:
		return nil, fmt.Errorf("read HEAD: %w", err)
	case head.Name().IsBranch():
		st.Branch = head.Name().Short()
	default:
		st.Branch = head.Hash().String()[:7]
	}

	if head != nil && head.Name().IsBranch() {
		st.Ahead, st.Behind, err = divergence(repo, head)
		if err != nil {
			return nil, err
		}
	}

	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	files, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}

	for _, fs := range files {
		switch {
		case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
			st.Conflicted++
		case fs.Worktree == git.Untracked:
			st.Untracked++
		default:
			if fs.Staging != git.Unmodified {
				st.Staged++
			}
			if fs.Worktree != git.Unmodified {
				st.NotStaged++
			}
		}
	}

	return st, nil
}

// divergence counts commits on head missing from its upstream and the
// reverse. A branch without a configured or fetched upstream yields 0, 0.
func divergence(repo *git.Repository, head *plumbing.Reference) (ahead, behind int, err error) {
	branch, err := repo.Branch(head.Name().Short())
	if errors.Is(err, git.ErrBranchNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("read branch config: %w", err)
	}
	if branch.Remote == "" || branch.Merge == "" {
		return 0, 0, nil
	}

	upstreamName := branch.Merge
	if branch.Remote != "." {
		upstreamName = plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())
	}
	upstream, err := repo.Reference(upstreamName, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("resolve upstream %s: %w", upstreamName, err)
	}

	return countDivergence(repo, head.Hash(), upstream.Hash())
}

const (
	sideLocal uint8 = 1 << iota
	sideUpstream

	sideBoth = sideLocal | sideUpstream
)

// countDivergence walks both histories newest first, marking every commit
// with the sides it is reachable from. A commit that gains a side is queued
// again so the mark reaches its ancestors even when commit times tie or are
// skewed. The walk ends when every queued commit is reachable from both
// sides, or after maxHistoryWalk commits. Commits marked with one side only
// are ahead or behind.
func countDivergence(repo *git.Repository, local, upstream plumbing.Hash) (ahead, behind int, err error) {
	if local == upstream {
		return 0, 0, nil
	}

	sides := make(map[plumbing.Hash]uint8)
	expanded := make(map[plumbing.Hash]uint8)
	queue := binaryheap.NewWith(func(a, b interface{}) int {
		return b.(*object.Commit).Committer.When.Compare(a.(*object.Commit).Committer.When)
	})

	mark := func(hash plumbing.Hash, side uint8) error {
		prev := sides[hash]
		if prev|side == prev {
			return nil
		}
		c, err := repo.CommitObject(hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			// shallow clone boundary
			return nil
		}
		if err != nil {
			return fmt.Errorf("read commit %s: %w", hash, err)
		}
		sides[hash] = prev | side
		queue.Push(c)
		return nil
	}

	if err := mark(local, sideLocal); err != nil {
		return 0, 0, err
	}
	if err := mark(upstream, sideUpstream); err != nil {
		return 0, 0, err
	}

	for walked := 0; walked < maxHistoryWalk && hasOneSided(queue, sides); walked++ {
		next, _ := queue.Pop()
		c := next.(*object.Commit)

		side := sides[c.Hash]
		if expanded[c.Hash] == side {
			continue
		}
		expanded[c.Hash] = side

		for _, parent := range c.ParentHashes {
			if err := mark(parent, side); err != nil {
				return 0, 0, err
			}
		}
	}

	for _, side := range sides {
		switch side {
		case sideLocal:
			ahead++
		case sideUpstream:
			behind++
		}
	}
	return ahead, behind, nil
}

func hasOneSided(queue *binaryheap.Heap, sides map[plumbing.Hash]uint8) bool {
	for _, v := range queue.Values() {
		if sides[v.(*object.Commit).Hash] != sideBoth {
			return true
		}
	}
	return false
}

type gitBranch struct {
	env   detector.Env
	probe *gitProbe
}

func (d *gitBranch) Metadata() detector.Metadata {
	return detector.Metadata{Name: "git", Description: "Git branch, colored clean or dirty."}
}

func (d *gitBranch) Detect(_ context.Context, p *segment.Powerline) error {
	st, err := d.probe.status(d.env)
	if err != nil || st == nil {
		return err
	}

	t := p.Theme()
	if st.Dirty() {
		p.Push(segment.New(t.GitDirtyFG, t.GitDirtyBG, st.Branch))
		return nil
	}
	p.Push(segment.New(t.GitCleanFG, t.GitCleanBG, st.Branch))
	return nil
}

// gitCount renders one counter of the repository status as "<n><glyph>".
type gitCount struct {
	meta  detector.Metadata
	env   detector.Env
	probe *gitProbe
	pick  func(st *gitStatus, t *theme.Theme) (n int, glyph rune, fg, bg theme.RGB)
}

func (d *gitCount) Metadata() detector.Metadata { return d.meta }

func (d *gitCount) Detect(_ context.Context, p *segment.Powerline) error {
	st, err := d.probe.status(d.env)
	if err != nil || st == nil {
		return err
	}

	n, glyph, fg, bg := d.pick(st, p.Theme())
	if n <= 0 {
		return nil
	}
	p.Push(segment.New(fg, bg, fmt.Sprintf("%d%c", n, glyph)))
	return nil
}

// gitFactories returns the git detectors keyed by registry name. They share
// probe so the repository is read once per render.
func gitFactories(probe *gitProbe) map[string]detector.Factory {
	count := func(name, desc string, pick func(*gitStatus, *theme.Theme) (int, rune, theme.RGB, theme.RGB)) detector.Factory {
		return func(env detector.Env) detector.Detector {
			return &gitCount{
				meta:  detector.Metadata{Name: name, Description: desc},
				env:   env.WithDefaults(),
				probe: probe,
				pick:  pick,
			}
		}
	}

	return map[string]detector.Factory{
		"git": func(env detector.Env) detector.Detector {
			return &gitBranch{env: env.WithDefaults(), probe: probe}
		},
		"git-ahead": count("git-ahead", "Commits ahead of upstream.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.Ahead, t.GitAheadChar, t.GitAheadFG, t.GitAheadBG
			}),
		"git-behind": count("git-behind", "Commits behind upstream.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.Behind, t.GitBehindChar, t.GitBehindFG, t.GitBehindBG
			}),
		"git-staged": count("git-staged", "Files staged for commit.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.Staged, t.GitStagedChar, t.GitStagedFG, t.GitStagedBG
			}),
		"git-notstaged": count("git-notstaged", "Modified files not staged.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.NotStaged, t.GitNotStagedChar, t.GitNotStagedFG, t.GitNotStagedBG
			}),
		"git-untracked": count("git-untracked", "Untracked files.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.Untracked, t.GitUntrackedChar, t.GitUntrackedFG, t.GitUntrackedBG
			}),
		"git-conflicted": count("git-conflicted", "Files with merge conflicts.",
			func(st *gitStatus, t *theme.Theme) (int, rune, theme.RGB, theme.RGB) {
				return st.Conflicted, t.GitConflictedChar, t.GitConflictedFG, t.GitConflictedBG
			}),
	}
}

var (
	_ detector.Detector = (*gitBranch)(nil)
	_ detector.Detector = (*gitCount)(nil)
)
