// Package wikistore implements a SQLite-backed document store for wiki
// pages. Every write appends to a revision log carrying the changelog
// reason, mirroring the changelog of the hosted wiki the usernotes record
// normally lives on.
package wikistore

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/modkit/usernotes/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store is a local DocumentStore backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Revision is one entry in a page's changelog, newest first.
type Revision struct {
	RevisionID string
	Page       string
	Content    string
	Reason     string
	CreatedAt  time.Time
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Read returns the current content of the named page, or ErrPageNotFound.
func (s *Store) Read(page string) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM pages WHERE name = ?`, page).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("page %s: %w", page, types.ErrPageNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading page %s: %w", page, err)
	}
	return content, nil
}

// Create writes a page that does not yet exist and records the first
// revision. Fails if the page already exists.
func (s *Store) Create(page, content, reason string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("creating page %s: %w", page, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(
		`INSERT INTO pages (name, content, updated_at) VALUES (?, ?, ?)`,
		page, content, now,
	); err != nil {
		return fmt.Errorf("creating page %s: %w", page, err)
	}

	if err := insertRevision(tx, page, content, reason, now); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces the content of an existing page and appends a revision.
// Returns ErrPageNotFound if the page was never created.
func (s *Store) Update(page, content, reason string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("updating page %s: %w", page, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.Exec(
		`UPDATE pages SET content = ?, updated_at = ? WHERE name = ?`,
		content, now, page,
	)
	if err != nil {
		return fmt.Errorf("updating page %s: %w", page, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating page %s: %w", page, err)
	}
	if affected == 0 {
		return fmt.Errorf("page %s: %w", page, types.ErrPageNotFound)
	}

	if err := insertRevision(tx, page, content, reason, now); err != nil {
		return err
	}
	return tx.Commit()
}

// Revisions returns the page's changelog, newest first.
func (s *Store) Revisions(page string) ([]Revision, error) {
	rows, err := s.db.Query(
		`SELECT revision_id, page, content, reason, created_at
		   FROM revisions WHERE page = ? ORDER BY rowid DESC`,
		page,
	)
	if err != nil {
		return nil, fmt.Errorf("listing revisions of %s: %w", page, err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var rev Revision
		var created string
		if err := rows.Scan(&rev.RevisionID, &rev.Page, &rev.Content, &rev.Reason, &created); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing revision timestamp: %w", err)
		}
		rev.CreatedAt = ts
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing revisions of %s: %w", page, err)
	}
	return revisions, nil
}

func insertRevision(tx *sql.Tx, page, content, reason, now string) error {
	if _, err := tx.Exec(
		`INSERT INTO revisions (revision_id, page, content, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		generateUUID(), page, content, reason, now,
	); err != nil {
		return fmt.Errorf("recording revision of %s: %w", page, err)
	}
	return nil
}

// generateUUID generates a UUID v7 for revision ids, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
