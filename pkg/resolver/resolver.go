// Package resolver computes course directory and note file names. All
// functions are pure: they take directory listings as input and never touch
// the filesystem, so the naming rules are testable in isolation from the
// create calls that apply them.
package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chyyran/noter/pkg/models"
)

var (
	codePattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_]*$`)
	untitledPattern = regexp.MustCompile(`^untitled-([0-9]+)\.md$`)
)

// ValidateCode rejects empty codes and codes containing characters that are
// unsafe in a directory name.
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%w: %q", models.ErrInvalidCode, code)
	}
	return nil
}

// CourseDirName combines a course code and a title slug into the directory
// name, e.g. ("EAS103", "premodern-east-asia") -> "EAS103-premodern-east-asia".
// An empty slug yields the code alone.
func CourseDirName(code, titleSlug string) string {
	if titleSlug == "" {
		return code
	}
	return code + "-" + titleSlug
}

// MatchCourseDir finds the entry whose name is the course code or starts
// with "<code>-". Codes compare ASCII case-insensitively, so "eas103"
// matches "EAS103-premodern-east-asia". Returns models.ErrCourseNotFound
// when no entry matches.
func MatchCourseDir(entries []string, code string) (string, error) {
	prefix := strings.ToLower(code) + "-"
	for _, name := range entries {
		lower := strings.ToLower(name)
		if strings.EqualFold(name, code) || strings.HasPrefix(lower, prefix) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w %s", models.ErrCourseNotFound, code)
}

// CodeFromDirName extracts the course code segment from a course directory
// name: "EAS103-premodern-east-asia" -> "EAS103", "EAS330" -> "EAS330".
func CodeFromDirName(name string) string {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i]
	}
	return name
}

// TitleFromDirName reconstructs a display title from the slug portion of a
// course directory name. Hyphens become spaces; the original casing is gone.
func TitleFromDirName(name string) string {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return strings.ReplaceAll(name[i+1:], "-", " ")
	}
	return ""
}

// NoteFilename builds the filename for a titled note. With datePrefix set
// the note is named the way the original noter named everything:
// 2006-01-02-<slug>.md.
func NoteFilename(titleSlug string, datePrefix bool, now time.Time) string {
	if datePrefix {
		return now.Format("2006-01-02") + "-" + titleSlug + ".md"
	}
	return titleSlug + ".md"
}

// NextUntitled returns the lowest untitled-<n>.md (n starting at 1) not
// present in the given listing. Numbering is deterministic: deleting
// untitled-1.md and calling again reuses the hole.
func NextUntitled(entries []string) string {
	taken := make(map[int]bool, len(entries))
	for _, name := range entries {
		m := untitledPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			taken[n] = true
		}
	}

	n := 1
	for taken[n] {
		n++
	}
	return fmt.Sprintf("untitled-%d.md", n)
}
