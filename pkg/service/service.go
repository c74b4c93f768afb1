package service

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chyyran/noter/pkg/models"
	"github.com/chyyran/noter/pkg/resolver"
	"github.com/chyyran/noter/pkg/search"
	"github.com/chyyran/noter/pkg/slug"
	"github.com/chyyran/noter/pkg/workspace"
)

// Service is the core noter service, tying the notes root to the path
// resolution rules and the search index.
type Service struct {
	Root   *workspace.Root
	Index  *search.Index
	Config *Config

	log *logrus.Logger
}

// Config holds service configuration
type Config struct {
	DataDir    string
	Editor     string
	DatePrefix bool
}

// New creates a new noter service rooted at root.
func New(config *Config, root *workspace.Root, log *logrus.Logger) (*Service, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	index, err := search.NewIndex(filepath.Join(config.DataDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Service{
		Root:   root,
		Index:  index,
		Config: config,
		log:    log,
	}, nil
}

// Close releases the search index.
func (s *Service) Close() error {
	return s.Index.Close()
}

// CreateCourse creates the directory for a new course under the notes root.
// The directory is named <CODE>-<slug(title)>, or <CODE> alone when the
// title slugs to nothing. A course whose code already exists, under any
// title, is rejected with models.ErrCourseExists.
func (s *Service) CreateCourse(code, title string) (*models.Course, error) {
	if err := resolver.ValidateCode(code); err != nil {
		return nil, err
	}

	titleSlug := slug.Slugify(title)
	dirName := resolver.CourseDirName(code, titleSlug)

	// Reject a same-code directory under a different title. The Mkdir below
	// stays the atomic guard for the exact-name case.
	if dirs, err := s.Root.CourseDirs(); err == nil {
		if existing, err := resolver.MatchCourseDir(dirs, code); err == nil {
			return nil, fmt.Errorf("%w: %s", models.ErrCourseExists, existing)
		}
	}

	path := filepath.Join(s.Root.Path, dirName)
	if err := os.Mkdir(path, 0755); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrCourseExists, dirName)
		}
		return nil, fmt.Errorf("create course folder: %w", err)
	}

	s.log.WithFields(logrus.Fields{"code": code, "path": path}).Debug("created course folder")

	return &models.Course{
		Code:      code,
		Title:     title,
		Slug:      titleSlug,
		Path:      path,
		CreatedAt: time.Now(),
	}, nil
}

// CreateOption customizes note creation.
type CreateOption func(*createOptions)

type createOptions struct {
	openEditor bool
	blank      bool
}

// WithoutEditor skips launching the editor after the note is created.
func WithoutEditor() CreateOption {
	return func(o *createOptions) { o.openEditor = false }
}

// Blank creates an empty file instead of the frontmatter template.
func Blank() CreateOption {
	return func(o *createOptions) { o.blank = true }
}

// CreateNote creates a note file in the course directory matching code.
// With a title the file is <slug(title)>.md; without one it is the lowest
// free untitled-<n>.md. Creation uses O_CREATE|O_EXCL so two concurrent
// invocations can never claim the same file.
func (s *Service) CreateNote(code, title string, options ...CreateOption) (*models.Note, error) {
	opts := &createOptions{openEditor: true}
	for _, opt := range options {
		opt(opts)
	}

	if err := resolver.ValidateCode(code); err != nil {
		return nil, err
	}

	dirs, err := s.Root.CourseDirs()
	if err != nil {
		return nil, err
	}
	dirName, err := resolver.MatchCourseDir(dirs, code)
	if err != nil {
		return nil, err
	}
	courseDir := filepath.Join(s.Root.Path, dirName)
	courseCode := resolver.CodeFromDirName(dirName)

	entries, err := listFilenames(courseDir)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	titleSlug := slug.Slugify(title)
	untitled := titleSlug == ""

	var filename string
	if untitled {
		filename = resolver.NextUntitled(entries)
	} else {
		filename = resolver.NoteFilename(titleSlug, s.Config.DatePrefix, now)
	}

	var f *os.File
	for {
		notePath := filepath.Join(courseDir, filename)
		f, err = os.OpenFile(notePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create note: %w", err)
		}
		if !untitled {
			return nil, fmt.Errorf("%w: %s", models.ErrNoteExists, filename)
		}
		// Another invocation claimed this number between our listing and the
		// open; fold it into the listing and take the next free one.
		entries = append(entries, filename)
		filename = resolver.NextUntitled(entries)
	}

	noteTitle := title
	if untitled {
		noteTitle = strings.TrimSuffix(filename, ".md")
	}

	var content string
	if !opts.blank {
		content = NoteContent(noteTitle, titleSlug, courseCode, now)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("write note: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}

	note, err := ParseNote(filepath.Join(courseDir, filename))
	if err != nil {
		return nil, fmt.Errorf("parse created note: %w", err)
	}
	note.Course = courseCode
	note.Untitled = untitled

	if err := s.Index.IndexNote(note); err != nil {
		s.log.WithError(err).Warn("failed to index note")
	}

	if opts.openEditor && s.Config.Editor != "" {
		if err := s.openInEditor(note.Path); err != nil {
			s.log.WithError(err).Warn("failed to open editor")
		}
	}

	return note, nil
}

// ListCourses lists the course directories under the notes root.
func (s *Service) ListCourses() ([]*models.Course, error) {
	dirs, err := s.Root.CourseDirs()
	if err != nil {
		return nil, err
	}

	var courses []*models.Course
	for _, dirName := range dirs {
		code := resolver.CodeFromDirName(dirName)
		if resolver.ValidateCode(code) != nil {
			continue // not a course directory
		}

		path := filepath.Join(s.Root.Path, dirName)
		course := &models.Course{
			Code:  code,
			Title: resolver.TitleFromDirName(dirName),
			Slug:  strings.TrimPrefix(strings.TrimPrefix(dirName, code), "-"),
			Path:  path,
		}
		if info, err := os.Stat(path); err == nil {
			course.CreatedAt = info.ModTime()
		}
		if entries, err := listFilenames(path); err == nil {
			for _, name := range entries {
				if strings.HasSuffix(name, ".md") {
					course.NoteCount++
				}
			}
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// ListNotes lists the notes inside the course directory matching code.
func (s *Service) ListNotes(code string) ([]*models.Note, error) {
	if err := resolver.ValidateCode(code); err != nil {
		return nil, err
	}

	dirs, err := s.Root.CourseDirs()
	if err != nil {
		return nil, err
	}
	dirName, err := resolver.MatchCourseDir(dirs, code)
	if err != nil {
		return nil, err
	}
	courseDir := filepath.Join(s.Root.Path, dirName)
	courseCode := resolver.CodeFromDirName(dirName)

	entries, err := listFilenames(courseDir)
	if err != nil {
		return nil, err
	}

	var notes []*models.Note
	for _, name := range entries {
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		note, err := ParseNote(filepath.Join(courseDir, name))
		if err != nil {
			s.log.WithError(err).WithField("file", name).Warn("skipping unreadable note")
			continue
		}
		note.Course = courseCode
		notes = append(notes, note)
	}
	return notes, nil
}

// SearchOption customizes a search.
type SearchOption func(*searchOptions)

type searchOptions struct {
	course string
	limit  int
}

// InCourse restricts the search to one course code.
func InCourse(code string) SearchOption {
	return func(o *searchOptions) { o.course = code }
}

// WithLimit caps the number of results.
func WithLimit(n int) SearchOption {
	return func(o *searchOptions) { o.limit = n }
}

// SearchNotes reindexes the tree and runs a full-text query against it.
func (s *Service) SearchNotes(query string, options ...SearchOption) ([]*models.Note, error) {
	opts := &searchOptions{limit: 50}
	for _, opt := range options {
		opt(opts)
	}

	if _, err := s.Reindex(); err != nil {
		return nil, fmt.Errorf("reindex: %w", err)
	}

	courseFilter := ""
	if opts.course != "" {
		dirs, err := s.Root.CourseDirs()
		if err != nil {
			return nil, err
		}
		dirName, err := resolver.MatchCourseDir(dirs, opts.course)
		if err != nil {
			return nil, err
		}
		courseFilter = resolver.CodeFromDirName(dirName)
	}

	results, err := s.Index.Search(query, &search.Options{
		Course: courseFilter,
		Limit:  opts.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return results, nil
}

// Reindex rebuilds the search index from the directory tree and returns the
// number of notes indexed. The tree is the source of truth; the index can
// always be thrown away and rebuilt.
func (s *Service) Reindex() (int, error) {
	if err := s.Index.Clear(); err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}

	courses, err := s.ListCourses()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, course := range courses {
		notes, err := s.ListNotes(course.Code)
		if err != nil {
			if errors.Is(err, models.ErrCourseNotFound) {
				continue
			}
			return count, err
		}
		for _, note := range notes {
			if err := s.Index.IndexNote(note); err != nil {
				return count, fmt.Errorf("index %s: %w", note.Path, err)
			}
			count++
		}
	}
	return count, nil
}

// UpdateNoteContent rewrites a note's content and refreshes its index entry.
func (s *Service) UpdateNoteContent(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	note, err := ParseNote(path)
	if err != nil {
		return fmt.Errorf("parse note: %w", err)
	}
	if err := s.Index.IndexNote(note); err != nil {
		s.log.WithError(err).Warn("failed to index note")
	}
	return nil
}

// openInEditor opens the given path in the configured editor.
func (s *Service) openInEditor(path string) error {
	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// listFilenames returns the file names directly inside dir.
func listFilenames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read course folder: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
