package wikistore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit/usernotes/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wiki.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReadMissingPage(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Read("usernotes")
	assert.ErrorIs(t, err, types.ErrPageNotFound)
}

func TestCreateAndRead(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Create("usernotes", `{"ver":6}`, "Initializing"))

	content, err := s.Read("usernotes")
	require.NoError(t, err)
	assert.Equal(t, `{"ver":6}`, content)
}

func TestCreateExistingPageFails(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Create("usernotes", "v1", "Initializing"))
	assert.Error(t, s.Create("usernotes", "v2", "again"))

	content, err := s.Read("usernotes")
	require.NoError(t, err)
	assert.Equal(t, "v1", content, "failed create must not clobber the page")
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Create("usernotes", "v1", "Initializing"))
	require.NoError(t, s.Update("usernotes", "v2", "edited"))

	content, err := s.Read("usernotes")
	require.NoError(t, err)
	assert.Equal(t, "v2", content)
}

func TestUpdateMissingPage(t *testing.T) {
	s := openTestStore(t)

	err := s.Update("usernotes", "content", "reason")
	assert.ErrorIs(t, err, types.ErrPageNotFound)
}

func TestRevisionLog(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Create("usernotes", "v1", "Initializing"))
	require.NoError(t, s.Update("usernotes", "v2", "create new note on user someone"))
	require.NoError(t, s.Update("usernotes", "v3", "delete note #0 on user someone"))

	revisions, err := s.Revisions("usernotes")
	require.NoError(t, err)
	require.Len(t, revisions, 3)

	// Newest first, each revision carrying its reason and content.
	assert.Equal(t, "delete note #0 on user someone", revisions[0].Reason)
	assert.Equal(t, "v3", revisions[0].Content)
	assert.Equal(t, "create new note on user someone", revisions[1].Reason)
	assert.Equal(t, "Initializing", revisions[2].Reason)

	for _, rev := range revisions {
		assert.NotEmpty(t, rev.RevisionID)
		assert.Equal(t, "usernotes", rev.Page)
		assert.False(t, rev.CreatedAt.IsZero())
	}
}

func TestRevisionsOfUnknownPage(t *testing.T) {
	s := openTestStore(t)

	revisions, err := s.Revisions("usernotes")
	require.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestPagesAreIndependent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Create("usernotes", "notes", "Initializing"))
	require.NoError(t, s.Create("config", "settings", "Initializing"))
	require.NoError(t, s.Update("config", "settings v2", "tweak"))

	content, err := s.Read("usernotes")
	require.NoError(t, err)
	assert.Equal(t, "notes", content)

	revisions, err := s.Revisions("usernotes")
	require.NoError(t, err)
	assert.Len(t, revisions, 1)
}
