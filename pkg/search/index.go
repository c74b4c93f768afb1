package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/chyyran/noter/pkg/models"
)

// Index manages the note search index. The index is a rebuildable cache over
// the directory tree, never the source of truth.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex opens (or creates) the search index at dbPath.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	// First, check if FTS5 is available
	idx.useFTS = idx.checkFTS5Support()

	// Create metadata table first (always needed)
	metaSchema := `
	CREATE TABLE IF NOT EXISTS notes_meta (
		path TEXT PRIMARY KEY,
		course TEXT,
		title TEXT,
		content TEXT,
		created_at TIMESTAMP,
		modified_at TIMESTAMP,
		word_count INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_notes_meta_course ON notes_meta(course);
	CREATE INDEX IF NOT EXISTS idx_notes_meta_title ON notes_meta(title);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	// Create FTS table if supported
	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			path UNINDEXED,
			course,
			title,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	// Try to create a test FTS5 table to check if it's supported
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	// Clean up test table
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexNote indexes or reindexes a note
func (idx *Index) IndexNote(note *models.Note) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		_, err = tx.Exec("DELETE FROM notes_fts WHERE path = ?", note.Path)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec("DELETE FROM notes_meta WHERE path = ?", note.Path)
	if err != nil {
		return err
	}

	if idx.useFTS {
		_, err = tx.Exec(`
			INSERT INTO notes_fts (path, course, title, content)
			VALUES (?, ?, ?, ?)
		`, note.Path, note.Course, note.Title, note.Content)
		if err != nil {
			return err
		}
	}

	// Insert into metadata table (always)
	_, err = tx.Exec(`
		INSERT INTO notes_meta (
			path, course, title, content, created_at, modified_at, word_count
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, note.Path, note.Course, note.Title, note.Content,
		note.CreatedAt, note.ModifiedAt, note.WordCount)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Options for searching
type Options struct {
	Course string
	Limit  int
}

// Search performs a full-text search
func (idx *Index) Search(query string, opts *Options) ([]*models.Note, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

// searchWithFTS performs search using FTS5
func (idx *Index) searchWithFTS(query string, opts *Options) ([]*models.Note, error) {
	var conditions []string
	var args []any

	if opts.Course != "" {
		conditions = append(conditions, "m.course = ?")
		args = append(args, opts.Course)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ") + " AND"
	} else {
		whereClause = "WHERE"
	}

	searchQuery := fmt.Sprintf(`
		SELECT
			f.path, f.course, f.title,
			m.created_at, m.modified_at, m.word_count
		FROM notes_fts f
		JOIN notes_meta m ON f.path = m.path
		%s notes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, whereClause)

	args = append(args, query, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

// searchWithoutFTS performs search using LIKE queries on metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*models.Note, error) {
	var conditions []string
	var args []any

	if opts.Course != "" {
		conditions = append(conditions, "course = ?")
		args = append(args, opts.Course)
	}

	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(title LIKE ? OR content LIKE ?)")
	args = append(args, searchPattern, searchPattern)

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	searchQuery := fmt.Sprintf(`
		SELECT
			path, course, title,
			created_at, modified_at, word_count
		FROM notes_meta
		%s
		ORDER BY modified_at DESC
		LIMIT ?
	`, whereClause)

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	var results []*models.Note
	for rows.Next() {
		note := &models.Note{}
		err := rows.Scan(
			&note.Path, &note.Course, &note.Title,
			&note.CreatedAt, &note.ModifiedAt, &note.WordCount,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, note)
	}
	return results, rows.Err()
}

// RemoveNote removes a note from the index
func (idx *Index) RemoveNote(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		_, err = tx.Exec("DELETE FROM notes_fts WHERE path = ?", path)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec("DELETE FROM notes_meta WHERE path = ?", path)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Clear drops every indexed note, used before a full rebuild.
func (idx *Index) Clear() error {
	if idx.useFTS {
		if _, err := idx.db.Exec("DELETE FROM notes_fts"); err != nil {
			return err
		}
	}
	_, err := idx.db.Exec("DELETE FROM notes_meta")
	return err
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
