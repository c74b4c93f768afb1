package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyyran/noter/pkg/models"
)

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("EAS103"))
	assert.NoError(t, ValidateCode("csc263"))
	assert.NoError(t, ValidateCode("MAT235_2026"))

	for _, bad := range []string{"", "EAS 103", "a/b", "../etc", "-lead", ".hidden"} {
		err := ValidateCode(bad)
		assert.ErrorIs(t, err, models.ErrInvalidCode, "code %q", bad)
	}
}

func TestCourseDirName(t *testing.T) {
	assert.Equal(t, "EAS103-premodern-east-asia", CourseDirName("EAS103", "premodern-east-asia"))
	assert.Equal(t, "EAS103", CourseDirName("EAS103", ""))
}

func TestMatchCourseDir(t *testing.T) {
	entries := []string{
		"CSC263-data-structures",
		"EAS103-premodern-east-asia",
		"EAS330",
		"notes.txt",
	}

	got, err := MatchCourseDir(entries, "EAS103")
	require.NoError(t, err)
	assert.Equal(t, "EAS103-premodern-east-asia", got)

	// Bare code directory, no slug suffix.
	got, err = MatchCourseDir(entries, "EAS330")
	require.NoError(t, err)
	assert.Equal(t, "EAS330", got)

	// Codes are case-insensitive.
	got, err = MatchCourseDir(entries, "csc263")
	require.NoError(t, err)
	assert.Equal(t, "CSC263-data-structures", got)

	// EAS103 must not match as a prefix of another code segment.
	_, err = MatchCourseDir(entries, "EAS1")
	assert.ErrorIs(t, err, models.ErrCourseNotFound)

	_, err = MatchCourseDir(entries, "NOPE")
	assert.ErrorIs(t, err, models.ErrCourseNotFound)
}

func TestCodeFromDirName(t *testing.T) {
	assert.Equal(t, "EAS103", CodeFromDirName("EAS103-premodern-east-asia"))
	assert.Equal(t, "EAS330", CodeFromDirName("EAS330"))
}

func TestTitleFromDirName(t *testing.T) {
	assert.Equal(t, "premodern east asia", TitleFromDirName("EAS103-premodern-east-asia"))
	assert.Equal(t, "", TitleFromDirName("EAS330"))
}

func TestNoteFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "binomial-heaps.md", NoteFilename("binomial-heaps", false, now))
	assert.Equal(t, "2026-03-14-binomial-heaps.md", NoteFilename("binomial-heaps", true, now))
}

func TestNextUntitled(t *testing.T) {
	assert.Equal(t, "untitled-1.md", NextUntitled(nil))
	assert.Equal(t, "untitled-2.md", NextUntitled([]string{"untitled-1.md"}))
	assert.Equal(t, "untitled-1.md", NextUntitled([]string{"untitled-2.md", "untitled-3.md"}))
	assert.Equal(t, "untitled-4.md", NextUntitled([]string{"untitled-1.md", "untitled-2.md", "untitled-3.md"}))

	// Unrelated files never influence the counter.
	assert.Equal(t, "untitled-1.md", NextUntitled([]string{"binomial-heaps.md", "untitled.md", "untitled-x.md"}))
}
