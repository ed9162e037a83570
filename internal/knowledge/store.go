// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge keeps a local SQLite collection of short articles and
// serves them as an offline research source for the pipeline.
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"
)

// Article is one entry in the local knowledge base.
type Article struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
}

// ImportFile is the YAML layout accepted by Store.ImportFile.
type ImportFile struct {
	Articles []Article `yaml:"articles"`
}

// Store manages the knowledge base SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at path and its schema.
// Use ":memory:" for a throwaway store.
func NewStore(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating knowledge directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A :memory: database lives per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE COLLATE NOCASE,
			summary TEXT NOT NULL,
			source TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Import upserts articles by title in one transaction and returns how many
// were written. Articles with an empty title or summary are rejected.
func (s *Store) Import(ctx context.Context, articles []Article) (int, error) {
	for i, a := range articles {
		if strings.TrimSpace(a.Title) == "" {
			return 0, fmt.Errorf("article %d: empty title", i)
		}
		if strings.TrimSpace(a.Summary) == "" {
			return 0, fmt.Errorf("article %d (%s): empty summary", i, a.Title)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO articles (title, summary, source, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			summary = excluded.summary,
			source = excluded.source,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx, strings.TrimSpace(a.Title), strings.TrimSpace(a.Summary), a.Source, now); err != nil {
			return 0, fmt.Errorf("inserting article %q: %w", a.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(articles), nil
}

// ImportFile reads a YAML file with an `articles:` list and imports it.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	var f ImportFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	return s.Import(ctx, f.Articles)
}

// Count returns the number of stored articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// Search returns up to limit articles whose title or summary contains query,
// case-insensitively. Title matches rank first, then shorter titles, then
// alphabetical order. An empty query matches every article.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 3
	}
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"

	rows, err := s.db.QueryContext(ctx, `SELECT title, summary, COALESCE(source, '')
		FROM articles
		WHERE lower(title) LIKE ? ESCAPE '\' OR lower(summary) LIKE ? ESCAPE '\'
		ORDER BY CASE WHEN lower(title) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END,
			length(title), title
		LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge base: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Title, &a.Summary, &a.Source); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE wildcards so user text matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
