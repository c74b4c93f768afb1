package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {
	tempDir := t.TempDir()
	courseDir := filepath.Join(tempDir, "CSC263-data-structures")
	require.NoError(t, os.MkdirAll(courseDir, 0755))

	notePath := filepath.Join(courseDir, "binomial-heaps.md")
	noteContent := `---
id: 20260314-090000-binomial-heaps
title: Binomial Heaps
course: CSC263
tags: [csc263, heaps]
created: 2026-03-14 09:00:00
modified: 2026-03-14 09:30:00
---

# Binomial Heaps

Merging is O(log n).
`
	require.NoError(t, os.WriteFile(notePath, []byte(noteContent), 0644))

	note, err := ParseNote(notePath)
	require.NoError(t, err)
	require.NotNil(t, note)

	assert.Equal(t, notePath, note.Path)
	assert.Equal(t, "binomial-heaps.md", note.Filename)
	assert.Equal(t, "Binomial Heaps", note.Title)
	assert.Equal(t, "CSC263", note.Course)
	assert.Equal(t, "20260314-090000-binomial-heaps", note.ID)
	assert.Equal(t, []string{"csc263", "heaps"}, note.Tags)
	assert.False(t, note.Untitled)
	assert.Greater(t, note.WordCount, 0)

	expectedCreated, _ := time.Parse("2006-01-02 15:04:05", "2026-03-14 09:00:00")
	expectedModified, _ := time.Parse("2006-01-02 15:04:05", "2026-03-14 09:30:00")
	assert.Equal(t, expectedCreated.Unix(), note.CreatedAt.Unix())
	assert.Equal(t, expectedModified.Unix(), note.ModifiedAt.Unix())
}

func TestParseNoteWithoutFrontmatter(t *testing.T) {
	tempDir := t.TempDir()
	courseDir := filepath.Join(tempDir, "EAS103-premodern-east-asia")
	require.NoError(t, os.MkdirAll(courseDir, 0755))

	notePath := filepath.Join(courseDir, "heian-court.md")
	require.NoError(t, os.WriteFile(notePath, []byte("# Heian Court\n\nNotes.\n"), 0644))

	note, err := ParseNote(notePath)
	require.NoError(t, err)

	assert.Equal(t, "Heian Court", note.Title)
	assert.Equal(t, "EAS103", note.Course)
	assert.Empty(t, note.Tags)
}

func TestParseNoteBlank(t *testing.T) {
	tempDir := t.TempDir()
	courseDir := filepath.Join(tempDir, "EAS330")
	require.NoError(t, os.MkdirAll(courseDir, 0755))

	notePath := filepath.Join(courseDir, "untitled-1.md")
	require.NoError(t, os.WriteFile(notePath, nil, 0644))

	note, err := ParseNote(notePath)
	require.NoError(t, err)

	// Blank notes fall back to the filename for a title.
	assert.Equal(t, "untitled-1", note.Title)
	assert.Equal(t, "EAS330", note.Course)
	assert.True(t, note.Untitled)
	assert.Zero(t, note.WordCount)
}

func TestNoteContent(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	content := NoteContent("Binomial Heaps", "binomial-heaps", "CSC263", now)

	assert.Contains(t, content, "id: 20260314-092653-binomial-heaps")
	assert.Contains(t, content, "title: Binomial Heaps")
	assert.Contains(t, content, "course: CSC263")
	assert.Contains(t, content, "tags: [csc263]")
	assert.Contains(t, content, "# Binomial Heaps")
}

func TestGenerateNoteID(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "20260314-092653-heaps", GenerateNoteID("heaps", now))
	assert.Equal(t, "20260314-092653", GenerateNoteID("", now))
}
