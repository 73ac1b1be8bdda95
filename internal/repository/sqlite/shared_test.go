package sqlite

import (
	"database/sql"
	"log"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist/internal/repository"
)

// testDB keeps the in-memory database alive for the whole test run.
var testDB *sql.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		log.Fatalf("failed to open in-memory database: %v", err)
	}

	repo := NewSharedWatchlistRepository(testDB)
	if err := repo.InitSchema(); err != nil {
		log.Fatalf("failed to setup schema: %v", err)
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func resetDB(t *testing.T) *SharedWatchlistRepository {
	t.Helper()
	if _, err := testDB.Exec("DELETE FROM watchlist"); err != nil {
		t.Fatalf("failed to clear watchlist table: %v", err)
	}
	return NewSharedWatchlistRepository(testDB)
}

func TestAddAndList(t *testing.T) {
	repo := resetDB(t)

	entry, err := repo.Add("The Matrix", 1999, "User")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "The Matrix", entry.Title)

	_, err = repo.Add("Inception", 2010, "User")
	require.NoError(t, err)

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "The Matrix", entries[0].Title)
	require.NotNil(t, entries[0].Year)
	assert.Equal(t, 1999, *entries[0].Year)
	assert.Equal(t, "Inception", entries[1].Title)
}

func TestList_Empty(t *testing.T) {
	repo := resetDB(t)

	entries, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	repo := resetDB(t)

	entry, err := repo.Add("The Matrix", 1999, "User")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(entry.ID))

	entries, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete_Missing(t *testing.T) {
	repo := resetDB(t)

	err := repo.Delete(12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
