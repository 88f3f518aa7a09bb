package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var showRef = []string{"show-ref", "--tags", "--heads"}

func newRefRepo(t *testing.T, res Result) (*Repository, *fakeRunner) {
	t.Helper()
	runner := newFakeRunner().on(res, showRef...)
	return New(t.TempDir(), WithRunner(runner)), runner
}

const sampleRefs = hashA + " refs/heads/main\n" +
	hashB + " refs/heads/feature\n" +
	hashA + " refs/heads/release\n" +
	hashA + " refs/tags/v1.0\n" +
	hashC + " refs/tags/v0.9\n"

func TestReferenceBag_Lookup(t *testing.T) {
	repo, runner := newRefRepo(t, stdout(sampleRefs))
	refs := repo.References()
	ctx := t.Context()

	main, err := refs.Branch(ctx, "main")
	require.NoError(t, err)
	byFull, err := refs.Get(ctx, "refs/heads/main")
	require.NoError(t, err)
	assert.Same(t, byFull, main)
	assert.True(t, main.IsBranch())
	assert.False(t, main.IsTag())
	assert.Equal(t, "branch", main.Kind().String())

	tag, err := refs.Tag(ctx, "v1.0")
	require.NoError(t, err)
	assert.True(t, tag.IsTag())
	assert.Equal(t, Hash(hashA), tag.CommitHash())
	assert.Same(t, repo.Commit(hashA), tag.Commit())

	_, err = refs.Get(ctx, "refs/heads/missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = refs.Tag(ctx, "main")
	require.ErrorIs(t, err, ErrNotFound)

	has, err := refs.Has(ctx, "refs/tags/v0.9")
	require.NoError(t, err)
	assert.True(t, has)

	assert.Equal(t, 1, runner.count(showRef...), "one listing serves every query")
}

func TestReferenceBag_Views(t *testing.T) {
	repo, _ := newRefRepo(t, stdout(sampleRefs))
	refs := repo.References()
	ctx := t.Context()

	count, err := refs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	branches, err := refs.Branches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "feature", "release"}, names(branches))

	tags, err := refs.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0", "v0.9"}, names(tags))

	all, err := refs.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	first, err := refs.FirstBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", first.Name())

	hasBranches, err := refs.HasBranches(ctx)
	require.NoError(t, err)
	assert.True(t, hasBranches)
}

func TestReferenceBag_Resolve(t *testing.T) {
	repo, _ := newRefRepo(t, stdout(sampleRefs))
	refs := repo.References()
	ctx := t.Context()

	branches, err := refs.ResolveBranches(ctx, hashA)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "release"}, branches)

	tags, err := refs.ResolveTags(ctx, hashA)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0"}, tags)

	none, err := refs.ResolveTags(ctx, hashB)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestReferenceBag_EmptyRepository(t *testing.T) {
	repo, _ := newRefRepo(t, Result{ExitCode: 1})
	refs := repo.References()
	ctx := t.Context()

	count, err := refs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	hasBranches, err := refs.HasBranches(ctx)
	require.NoError(t, err)
	assert.False(t, hasBranches)

	_, err = refs.FirstBranch(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	branches, err := refs.ResolveBranches(ctx, hashA)
	require.NoError(t, err)
	assert.Empty(t, branches)
}

func TestReferenceBag_Failures(t *testing.T) {
	t.Run("git error", func(t *testing.T) {
		repo, _ := newRefRepo(t, failed(128, "fatal: not a git repository"))
		_, err := repo.References().Count(t.Context())
		require.ErrorIs(t, err, ErrCommandFailed)
	})

	t.Run("exit 1 with stderr is not an empty repository", func(t *testing.T) {
		repo, _ := newRefRepo(t, failed(1, "error: something"))
		_, err := repo.References().Count(t.Context())
		require.ErrorIs(t, err, ErrCommandFailed)
	})

	t.Run("unclassifiable reference", func(t *testing.T) {
		repo, _ := newRefRepo(t, stdout(hashA+" refs/heads/main\n"+hashB+" refs/remotes/origin/main\n"))
		_, err := repo.References().Branch(t.Context(), "main")
		require.ErrorIs(t, err, ErrParse)
	})

	t.Run("malformed line", func(t *testing.T) {
		repo, _ := newRefRepo(t, stdout("garbage\n"))
		_, err := repo.References().All(t.Context())
		require.ErrorIs(t, err, ErrParse)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		repo, _ := newRefRepo(t, stdout(hashA+" refs/heads/main\n"+hashB+" refs/heads/main\n"))
		_, err := repo.References().All(t.Context())
		require.ErrorIs(t, err, ErrParse)
	})
}

func TestReferenceBag_Reload(t *testing.T) {
	repo, runner := newRefRepo(t, stdout(hashA+" refs/heads/main\n"))
	refs := repo.References()
	ctx := t.Context()

	count, err := refs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	runner.on(stdout(hashA+" refs/heads/main\n"+hashB+" refs/tags/v2\n"), showRef...)
	count, err = refs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "snapshot until reload")

	refs.Reload()
	count, err = refs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, runner.count(showRef...))
}

func names(refs []*Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Name())
	}
	return out
}
