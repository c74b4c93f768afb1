package models

import "time"

// Course represents one course directory under the notes root.
type Course struct {
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	NoteCount int       `json:"note_count"`
}

// Note represents a note file inside a course directory.
type Note struct {
	Path       string    `json:"path"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	Course     string    `json:"course"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	WordCount  int       `json:"word_count"`
	Untitled   bool      `json:"untitled,omitempty"`

	// Frontmatter fields
	ID   string   `json:"id,omitempty"`
	Tags []string `json:"tags,omitempty"`
}
