package simrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGeneratesIDAndIndexes(t *testing.T) {
	repo := New(t.TempDir())

	id := repo.Set(Info{Tag: "leader", Type: TypeAircraft, Title: "Cessna 172"})
	assert.NotEmpty(t, id)

	got, ok := repo.GetByID(id)
	require.True(t, ok)
	assert.Equal(t, "Cessna 172", got.Title)

	byTag, ok := repo.GetByTag("leader")
	require.True(t, ok)
	assert.Equal(t, id, byTag.ID)

	ids := repo.IDsByTitle("Cessna 172")
	assert.ElementsMatch(t, []string{id}, ids)
	assert.True(t, repo.HasID(id))
	assert.True(t, repo.HasTag("leader"))
	assert.Equal(t, 1, repo.Len())
}

func TestSetUpdateCleansUpOldIndices(t *testing.T) {
	repo := New(t.TempDir())

	id := repo.Set(Info{Tag: "old-tag", Title: "Title A"})
	repo.Set(Info{ID: id, Tag: "new-tag", Title: "Title B"})

	assert.False(t, repo.HasTag("old-tag"))
	assert.True(t, repo.HasTag("new-tag"))
	assert.Empty(t, repo.IDsByTitle("Title A"))
	assert.ElementsMatch(t, []string{id}, repo.IDsByTitle("Title B"))
	assert.Equal(t, 1, repo.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := New(dir)

	id1 := repo.Set(Info{Tag: "flight1", Type: TypeAircraft, Title: "Cessna 172", Livery: "white"})
	id2 := repo.Set(Info{Type: TypeHelicopter, Title: "Bell 407"})

	require.NoError(t, repo.Save(""))
	assert.FileExists(t, filepath.Join(dir, defaultFileName))

	reloaded := New(dir)
	require.NoError(t, reloaded.Load(""))
	assert.Equal(t, 2, reloaded.Len())

	got1, ok := reloaded.GetByID(id1)
	require.True(t, ok)
	assert.Equal(t, "flight1", got1.Tag)
	assert.Equal(t, TypeAircraft, got1.Type)
	assert.Equal(t, "white", got1.Livery)

	got2, ok := reloaded.GetByID(id2)
	require.True(t, ok)
	assert.Equal(t, TypeHelicopter, got2.Type)
	assert.Empty(t, got2.Tag)
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, defaultFileName)
	content := "# a comment\n\n- id: abc-123\n  type: ground\n  title: Pushback Truck\n\n# trailing comment\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := New(dir)
	require.NoError(t, repo.Load(""))

	got, ok := repo.GetByID("abc-123")
	require.True(t, ok)
	assert.Equal(t, TypeGround, got.Type)
	assert.Equal(t, "Pushback Truck", got.Title)
}

func TestParseTypeDefaultsToAircraft(t *testing.T) {
	assert.Equal(t, TypeAircraft, ParseType("nonsense"))
	assert.Equal(t, TypeUserAvatar, ParseType("userAvatar"))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, defaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("- id: seed\n  title: Seed\n"), 0o644))

	repo := New(dir)
	require.NoError(t, repo.Load(""))
	assert.Equal(t, 1, repo.Len())

	w := NewWatcher(repo, "")
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("- id: seed\n  title: Seed\n\n- id: second\n  title: Second\n"), 0o644))

	require.Eventually(t, func() bool {
		return repo.Len() == 2
	}, 2*time.Second, 20*time.Millisecond)
}
