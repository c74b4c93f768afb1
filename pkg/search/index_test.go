package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyyran/noter/pkg/models"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func testNote(path, course, title, content string) *models.Note {
	now := time.Now()
	return &models.Note{
		Path:       path,
		Course:     course,
		Title:      title,
		Content:    content,
		CreatedAt:  now,
		ModifiedAt: now,
		WordCount:  len(content),
	}
}

func TestIndexAndSearch(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.IndexNote(testNote("/n/CSC263-ds/binomial-heaps.md", "CSC263", "Binomial Heaps", "merging binomial trees")))
	require.NoError(t, idx.IndexNote(testNote("/n/EAS103-pea/untitled-1.md", "EAS103", "Untitled", "the heian court")))

	results, err := idx.Search("binomial", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Binomial Heaps", results[0].Title)
	assert.Equal(t, "CSC263", results[0].Course)

	results, err = idx.Search("heian", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/n/EAS103-pea/untitled-1.md", results[0].Path)
}

func TestSearchCourseFilter(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.IndexNote(testNote("/n/CSC263-ds/heaps.md", "CSC263", "Heaps", "lecture notes")))
	require.NoError(t, idx.IndexNote(testNote("/n/EAS103-pea/lecture.md", "EAS103", "Lecture One", "lecture notes")))

	results, err := idx.Search("lecture", &Options{Course: "CSC263"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "CSC263", results[0].Course)
}

func TestReindexReplacesEntry(t *testing.T) {
	idx := newTestIndex(t)

	path := "/n/CSC263-ds/heaps.md"
	require.NoError(t, idx.IndexNote(testNote(path, "CSC263", "Heaps", "old content")))
	require.NoError(t, idx.IndexNote(testNote(path, "CSC263", "Heaps", "amortized analysis")))

	results, err := idx.Search("amortized", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The old content must be gone, not shadowed by a duplicate row.
	results, err = idx.Search("old", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRemoveNote(t *testing.T) {
	idx := newTestIndex(t)

	path := "/n/CSC263-ds/heaps.md"
	require.NoError(t, idx.IndexNote(testNote(path, "CSC263", "Heaps", "content")))
	require.NoError(t, idx.RemoveNote(path))

	results, err := idx.Search("content", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClear(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.IndexNote(testNote("/n/a.md", "A", "Alpha", "alpha words")))
	require.NoError(t, idx.IndexNote(testNote("/n/b.md", "B", "Beta", "beta words")))
	require.NoError(t, idx.Clear())

	results, err := idx.Search("words", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
