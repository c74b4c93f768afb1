package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chyyran/noter/pkg/frontmatter"
	"github.com/chyyran/noter/pkg/models"
	"github.com/chyyran/noter/pkg/resolver"
)

var untitledName = regexp.MustCompile(`^untitled-[0-9]+\.md$`)

// GenerateNoteID creates a frontmatter ID from the creation time and slug.
func GenerateNoteID(titleSlug string, now time.Time) string {
	timestamp := now.Format("20060102-150405")
	if titleSlug != "" {
		return fmt.Sprintf("%s-%s", timestamp, titleSlug)
	}
	return timestamp
}

// NoteContent generates the initial document for a new note: YAML
// frontmatter followed by a level-one heading.
func NoteContent(title, titleSlug, code string, now time.Time) string {
	timestampStr := frontmatter.FormatTimestamp(now)
	fm := &frontmatter.Frontmatter{
		ID:       GenerateNoteID(titleSlug, now),
		Title:    title,
		Course:   code,
		Tags:     []string{strings.ToLower(code)},
		Created:  timestampStr,
		Modified: timestampStr,
	}

	body := fmt.Sprintf("# %s\n\n", title)
	return frontmatter.BuildContent(fm, body)
}

// ParseNote reads and parses a note file
func ParseNote(path string) (*models.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contentStr := string(content)

	// Parse frontmatter
	fm, _, err := frontmatter.Parse(contentStr)
	if err != nil {
		// If frontmatter parsing fails, continue with default parsing
		fm = nil
	}

	filename := filepath.Base(path)
	note := &models.Note{
		Path:       path,
		Filename:   filename,
		Title:      extractTitle(contentStr, filename),
		Course:     resolver.CodeFromDirName(filepath.Base(filepath.Dir(path))),
		CreatedAt:  info.ModTime(), // Could use birthtime if available
		ModifiedAt: info.ModTime(),
		Content:    contentStr,
		WordCount:  countWords(contentStr),
		Untitled:   untitledName.MatchString(filename),
	}

	if fm != nil {
		if fm.Title != "" {
			note.Title = fm.Title
		}
		if fm.ID != "" {
			note.ID = fm.ID
		}
		if fm.Course != "" {
			note.Course = fm.Course
		}
		if len(fm.Tags) > 0 {
			note.Tags = fm.Tags
		}
		if fm.Created != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
				note.CreatedAt = t
			}
		}
		if fm.Modified != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Modified); err == nil {
				note.ModifiedAt = t
			}
		}
	}

	return note, nil
}

// extractTitle gets the title from markdown content, falling back to the
// filename for blank notes.
func extractTitle(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	if name := strings.TrimSuffix(filename, ".md"); name != "" {
		return name
	}
	return "Untitled"
}

// countWords counts words in content
func countWords(content string) int {
	return len(strings.Fields(content))
}
