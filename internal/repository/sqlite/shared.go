// Package sqlite backs the legacy shared watchlist demo: one flat table,
// no per-user lists, independent of the document store schema.
package sqlite

import (
	"database/sql"
	"fmt"

	"watchlist/internal/repository"
)

type SharedEntry struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Year    *int   `json:"year"`
	AddedBy string `json:"added_by"`
}

type SharedWatchlistRepository struct {
	db *sql.DB
}

func NewSharedWatchlistRepository(db *sql.DB) *SharedWatchlistRepository {
	return &SharedWatchlistRepository{db: db}
}

func (r *SharedWatchlistRepository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS watchlist (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			year INTEGER,
			added_by TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create watchlist table: %w", err)
	}
	return nil
}

func (r *SharedWatchlistRepository) List() ([]SharedEntry, error) {
	rows, err := r.db.Query("SELECT id, title, year, added_by FROM watchlist ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []SharedEntry
	for rows.Next() {
		var entry SharedEntry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Year, &entry.AddedBy); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *SharedWatchlistRepository) Add(title string, year int, addedBy string) (*SharedEntry, error) {
	result, err := r.db.Exec(
		"INSERT INTO watchlist (title, year, added_by) VALUES (?, ?, ?)",
		title, year, addedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry id: %w", err)
	}

	return &SharedEntry{ID: int(id), Title: title, Year: &year, AddedBy: addedBy}, nil
}

func (r *SharedWatchlistRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM watchlist WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
