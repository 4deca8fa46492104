package types

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/promptline/pkg/claude"
	"github.com/arthur-debert/promptline/pkg/config"
)

func testContext(t *testing.T, dir string) *Context {
	t.Helper()
	return NewContext(&claude.Input{
		SessionID: "s",
		Cwd:       dir,
		Model:     claude.ModelInfo{ID: "m"},
	}, config.Default())
}

func TestRepoOutsideRepository(t *testing.T) {
	ctx := testContext(t, t.TempDir())
	_, ok := ctx.Repo()
	assert.False(t, ok)
	assert.False(t, ctx.InRepo())
	assert.Empty(t, ctx.RepoRoot())
}

func TestRepoDetectsDotGitInParent(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	ctx := testContext(t, sub)
	assert.True(t, ctx.InRepo())

	rel, ok := ctx.RelativeToRepo()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(filepath.Base(root), "a", "b"), rel)
}

func TestRelativeToRepoAtRoot(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	ctx := testContext(t, root)
	rel, ok := ctx.RelativeToRepo()
	require.True(t, ok)
	assert.Equal(t, filepath.Base(root), rel)
}

func TestDirContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "pkg"), 0o755))

	ctx := testContext(t, dir)
	assert.ElementsMatch(t, []string{"go.mod", "pkg"}, ctx.DirContents())
}

func TestDirContentsMissingDirectory(t *testing.T) {
	ctx := testContext(t, filepath.Join(t.TempDir(), "gone"))
	assert.Empty(t, ctx.DirContents())
}

func TestMemoizationIsConcurrencySafe(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	ctx := testContext(t, root)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx.Repo()
			ctx.DirContents()
		}()
	}
	wg.Wait()

	assert.True(t, ctx.InRepo())
}
