package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hashSub = "ffffffffffffffffffffffffffffffffffffffff"

func newTreeRepo(t *testing.T) (*Repository, *fakeRunner) {
	t.Helper()
	runner := newFakeRunner().
		on(stdout("100644 blob "+hashBlob+"\tREADME.md\x00"+
			"040000 tree "+hashSub+"\tcmd\x00"), "ls-tree", "-z", "--full-tree", "--end-of-options", hashTree).
		on(stdout("100644 blob "+hashA+"\tmain.go\x00"), "ls-tree", "-z", "--full-tree", "--end-of-options", hashSub).
		on(stdout("# grove\n"), "cat-file", "blob", "--end-of-options", hashBlob)
	return New(t.TempDir(), WithRunner(runner)), runner
}

func TestTree_Entries(t *testing.T) {
	repo, runner := newTreeRepo(t)
	tree := repo.Tree(hashTree)

	entries, err := tree.Entries(t.Context())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "README.md", entries[0].Name)
	assert.Equal(t, TypeTree, entries[1].Type)

	entry, err := tree.Entry(t.Context(), "cmd")
	require.NoError(t, err)
	assert.Equal(t, Hash(hashSub), entry.Hash)

	_, err = tree.Entry(t.Context(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, runner.count("ls-tree", "-z", "--full-tree", "--end-of-options", hashTree))
}

func TestTree_Resolve(t *testing.T) {
	repo, _ := newTreeRepo(t)
	tree := repo.Tree(hashTree)
	ctx := t.Context()

	tests := []struct {
		name     string
		path     string
		wantHash Hash
		wantType ObjectType
	}{
		{"top-level file", "README.md", hashBlob, TypeBlob},
		{"nested file", "cmd/main.go", hashA, TypeBlob},
		{"leading slash", "/cmd/main.go", hashA, TypeBlob},
		{"directory", "cmd/", hashSub, TypeTree},
		{"root", "", hashTree, TypeTree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := tree.Resolve(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, entry.Hash)
			assert.Equal(t, tt.wantType, entry.Type)
		})
	}

	for _, path := range []string{"nope", "cmd/nope.go", "README.md/child"} {
		t.Run("missing "+path, func(t *testing.T) {
			_, err := tree.Resolve(ctx, path)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestTree_SubtreeAndBlob(t *testing.T) {
	repo, _ := newTreeRepo(t)
	tree := repo.Tree(hashTree)

	readme, err := tree.Entry(t.Context(), "README.md")
	require.NoError(t, err)
	cmd, err := tree.Entry(t.Context(), "cmd")
	require.NoError(t, err)

	sub, ok := tree.Subtree(cmd)
	require.True(t, ok)
	assert.Same(t, repo.Tree(hashSub), sub)
	_, ok = tree.Subtree(readme)
	assert.False(t, ok)

	blob, ok := tree.Blob(readme)
	require.True(t, ok)
	assert.Same(t, repo.Blob(hashBlob), blob)
	_, ok = tree.Blob(cmd)
	assert.False(t, ok)
}

func TestTree_Failure(t *testing.T) {
	runner := newFakeRunner().on(stdout("broken"), "ls-tree", "-z", "--full-tree", "--end-of-options", hashTree)
	repo := New(t.TempDir(), WithRunner(runner))

	_, err := repo.Tree(hashTree).Entries(t.Context())
	require.ErrorIs(t, err, ErrParse)
}

func TestBlob(t *testing.T) {
	repo, runner := newTreeRepo(t)
	blob := repo.Blob(hashBlob)
	assert.Equal(t, Hash(hashBlob), blob.Hash())

	content, err := blob.Content(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "# grove\n", string(content))

	content[0] = 'X'
	again, err := blob.Content(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "# grove\n", string(again), "content is returned as a copy")

	size, err := blob.Size(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 8, size)
	assert.Equal(t, 1, runner.count("cat-file", "blob", "--end-of-options", hashBlob))
}

func TestBlob_Missing(t *testing.T) {
	runner := newFakeRunner().on(failed(128, "fatal: Not a valid object name"), "cat-file", "blob", "--end-of-options", hashBlob)
	repo := New(t.TempDir(), WithRunner(runner))

	_, err := repo.Blob(hashBlob).Content(t.Context())
	require.ErrorIs(t, err, ErrCommandFailed)
}

func TestTree_TreeAtAndBlobAt(t *testing.T) {
	repo, _ := newTreeRepo(t)
	root := repo.Tree(hashTree)
	ctx := t.Context()

	self, err := root.TreeAt(ctx, "/")
	require.NoError(t, err)
	assert.Same(t, root, self)

	cmd, err := root.TreeAt(ctx, "cmd")
	require.NoError(t, err)
	assert.Same(t, repo.Tree(hashSub), cmd)

	_, err = root.TreeAt(ctx, "README.md")
	require.ErrorIs(t, err, ErrNotFound)

	blob, err := root.BlobAt(ctx, "/cmd/main.go")
	require.NoError(t, err)
	assert.Equal(t, Hash(hashA), blob.Hash())

	_, err = root.BlobAt(ctx, "cmd")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = root.BlobAt(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}
