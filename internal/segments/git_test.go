package segments

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

func commitFile(t *testing.T, repo *git.Repository, dir, name, contents string) {
	t.Helper()

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit("update "+name, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Powerline",
			Email: "powerline@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func initGitRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	commitFile(t, repo, dir, "README.md", "hello repo")
	return dir, repo
}

func cloneRepo(t *testing.T, source string) (string, *git.Repository) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "clone")
	repo, err := git.PlainClone(dir, false, &git.CloneOptions{URL: source})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)

	if _, err := repo.Branch(head.Name().Short()); errors.Is(err, git.ErrBranchNotFound) {
		require.NoError(t, repo.CreateBranch(&config.Branch{
			Name:   head.Name().Short(),
			Remote: "origin",
			Merge:  head.Name(),
		}))
	}
	return dir, repo
}

// gitSegments runs every git detector from one registry against dir.
func gitSegments(t *testing.T, dir string) map[string]segment.Segment {
	t.Helper()

	env := detector.Env{Getwd: func() (string, error) { return dir, nil }}
	out := map[string]segment.Segment{}
	for name, factory := range gitFactories(newGitProbe()) {
		p := segment.NewPowerline(theme.Default())
		require.NoError(t, factory(env).Detect(context.Background(), p))
		segs := p.Segments()
		require.LessOrEqual(t, len(segs), 1)
		if len(segs) == 1 {
			out[name] = segs[0]
		}
	}
	return out
}

func TestGitOutsideRepository(t *testing.T) {
	t.Parallel()

	require.Empty(t, gitSegments(t, t.TempDir()))
}

func TestGitCleanRepository(t *testing.T) {
	t.Parallel()

	dir, _ := initGitRepo(t)
	segs := gitSegments(t, dir)

	require.Len(t, segs, 1)
	require.Equal(t, "master", segs["git"].Text())
	require.Equal(t, theme.Default().GitCleanBG, segs["git"].BG())
}

func TestGitDetectsFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir, _ := initGitRepo(t)
	sub := filepath.Join(dir, "pkg", "inner")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	segs := gitSegments(t, sub)
	require.Equal(t, "master", segs["git"].Text())
}

func TestGitDirtyRepository(t *testing.T) {
	t.Parallel()

	dir, repo := initGitRepo(t)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("staged"), 0o644))
	_, err = wt.Add("new.txt")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("u"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), []byte("u"), 0o644))

	th := theme.Default()
	segs := gitSegments(t, dir)

	require.Equal(t, th.GitDirtyBG, segs["git"].BG())
	require.Equal(t, "1"+string(th.GitStagedChar), segs["git-staged"].Text())
	require.Equal(t, "1"+string(th.GitNotStagedChar), segs["git-notstaged"].Text())
	require.Equal(t, "2"+string(th.GitUntrackedChar), segs["git-untracked"].Text())
	require.NotContains(t, segs, "git-conflicted")
	require.NotContains(t, segs, "git-ahead")
}

func TestGitUnbornBranch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	segs := gitSegments(t, dir)
	require.Equal(t, "master", segs["git"].Text())
}

func TestGitDetachedHead(t *testing.T) {
	t.Parallel()

	dir, repo := initGitRepo(t)
	head, err := repo.Head()
	require.NoError(t, err)
	commitFile(t, repo, dir, "second.txt", "2")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: head.Hash()}))

	segs := gitSegments(t, dir)
	require.Equal(t, head.Hash().String()[:7], segs["git"].Text())
}

func TestGitAheadAndBehind(t *testing.T) {
	t.Parallel()

	source, sourceRepo := initGitRepo(t)
	clone, cloned := cloneRepo(t, source)

	th := theme.Default()
	segs := gitSegments(t, clone)
	require.NotContains(t, segs, "git-ahead")
	require.NotContains(t, segs, "git-behind")

	commitFile(t, cloned, clone, "local.txt", "mine")
	commitFile(t, cloned, clone, "local2.txt", "mine")
	segs = gitSegments(t, clone)
	require.Equal(t, "2"+string(th.GitAheadChar), segs["git-ahead"].Text())
	require.NotContains(t, segs, "git-behind")

	commitFile(t, sourceRepo, source, "remote.txt", "theirs")
	err := cloned.Fetch(&git.FetchOptions{RemoteName: "origin"})
	if !errors.Is(err, git.NoErrAlreadyUpToDate) {
		require.NoError(t, err)
	}

	segs = gitSegments(t, clone)
	require.Equal(t, "2"+string(th.GitAheadChar), segs["git-ahead"].Text())
	require.Equal(t, "1"+string(th.GitBehindChar), segs["git-behind"].Text())
	require.Equal(t, th.GitBehindBG, segs["git-behind"].BG())
}

func TestGitProbeReadsRepositoryOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	probe := newGitProbe()
	probe.cache[dir] = gitResult{status: &gitStatus{Branch: "feature", Conflicted: 2}}

	env := detector.Env{Getwd: func() (string, error) { return dir, nil }}
	factories := gitFactories(probe)

	p := segment.NewPowerline(nil)
	for _, name := range []string{"git", "git-conflicted"} {
		require.NoError(t, factories[name](env).Detect(context.Background(), p))
	}

	th := theme.Default()
	segs := p.Segments()
	require.Len(t, segs, 2)
	require.Equal(t, "feature", segs[0].Text())
	require.Equal(t, th.GitDirtyBG, segs[0].BG())
	require.Equal(t, "2"+string(th.GitConflictedChar), segs[1].Text())
	require.Equal(t, th.GitConflictedBG, segs[1].BG())
}

func TestGitProbeCachesErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	probe := newGitProbe()
	probe.cache[dir] = gitResult{err: errors.New("corrupt index")}

	env := detector.Env{Getwd: func() (string, error) { return dir, nil }}
	err := gitFactories(probe)["git"](env).Detect(context.Background(), segment.NewPowerline(nil))
	require.ErrorContains(t, err, "corrupt index")
}

// memoryRepo returns an in-memory repository and the hash of an empty tree
// for commits stored with storeCommit.
func memoryRepo(t *testing.T) (*git.Repository, plumbing.Hash) {
	t.Helper()

	repo, err := git.Init(memory.NewStorage(), nil)
	require.NoError(t, err)

	obj := repo.Storer.NewEncodedObject()
	require.NoError(t, (&object.Tree{}).Encode(obj))
	tree, err := repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return repo, tree
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(seq int) time.Time {
	return epoch.Add(time.Duration(seq) * time.Second)
}

func storeCommit(t *testing.T, repo *git.Repository, tree plumbing.Hash, msg string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	t.Helper()

	sig := object.Signature{Name: "Powerline", Email: "powerline@example.com", When: when}
	c := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      msg,
		TreeHash:     tree,
		ParentHashes: parents,
	}

	obj := repo.Storer.NewEncodedObject()
	require.NoError(t, c.Encode(obj))
	hash, err := repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

// trackUpstream points refs/heads/main at local and origin/main at upstream,
// with main tracking origin/main.
func trackUpstream(t *testing.T, repo *git.Repository, local, upstream plumbing.Hash) *plumbing.Reference {
	t.Helper()

	head := plumbing.NewHashReference(plumbing.NewBranchReferenceName("main"), local)
	require.NoError(t, repo.Storer.SetReference(head))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "main"), upstream)))
	require.NoError(t, repo.CreateBranch(&config.Branch{
		Name:   "main",
		Remote: "origin",
		Merge:  plumbing.NewBranchReferenceName("main"),
	}))
	return head
}

func TestDivergenceBehindInLongHistory(t *testing.T) {
	t.Parallel()

	repo, tree := memoryRepo(t)
	n := maxHistoryWalk + 3
	hashes := make([]plumbing.Hash, 0, n)
	for i := 0; i < n; i++ {
		var parents []plumbing.Hash
		if i > 0 {
			parents = []plumbing.Hash{hashes[i-1]}
		}
		hashes = append(hashes, storeCommit(t, repo, tree, fmt.Sprintf("commit %d", i), at(i), parents...))
	}

	head := trackUpstream(t, repo, hashes[n-4], hashes[n-1])

	ahead, behind, err := divergence(repo, head)
	require.NoError(t, err)
	require.Zero(t, ahead)
	require.Equal(t, 3, behind)
}

func TestDivergenceAcrossMerge(t *testing.T) {
	t.Parallel()

	repo, tree := memoryRepo(t)
	base := storeCommit(t, repo, tree, "commit 0", at(0))
	for i := 1; i < 5; i++ {
		base = storeCommit(t, repo, tree, fmt.Sprintf("commit %d", i), at(i), base)
	}

	// main:   base - l1 - l2
	// origin: base - u1 - merge(u1, l1)
	l1 := storeCommit(t, repo, tree, "l1", at(5), base)
	l2 := storeCommit(t, repo, tree, "l2", at(6), l1)
	u1 := storeCommit(t, repo, tree, "u1", at(7), base)
	merge := storeCommit(t, repo, tree, "merge", at(8), u1, l1)

	head := trackUpstream(t, repo, l2, merge)

	ahead, behind, err := divergence(repo, head)
	require.NoError(t, err)
	require.Equal(t, 1, ahead)
	require.Equal(t, 2, behind)
}

func TestDivergenceWithEqualCommitTimes(t *testing.T) {
	t.Parallel()

	repo, tree := memoryRepo(t)
	base := storeCommit(t, repo, tree, "base", at(0))
	l1 := storeCommit(t, repo, tree, "l1", at(0), base)
	l2 := storeCommit(t, repo, tree, "l2", at(0), l1)
	u1 := storeCommit(t, repo, tree, "u1", at(0), base)

	head := trackUpstream(t, repo, l2, u1)

	ahead, behind, err := divergence(repo, head)
	require.NoError(t, err)
	require.Equal(t, 2, ahead)
	require.Equal(t, 1, behind)
}

func TestDivergenceSameCommit(t *testing.T) {
	t.Parallel()

	repo, tree := memoryRepo(t)
	tip := storeCommit(t, repo, tree, "tip", at(0))
	head := trackUpstream(t, repo, tip, tip)

	ahead, behind, err := divergence(repo, head)
	require.NoError(t, err)
	require.Zero(t, ahead)
	require.Zero(t, behind)
}
