// Package workspace locates the notes root that course directories live
// under. A root is marked by a .noter.yaml file written by `noter init`;
// commands walk upward from the working directory to the nearest marker,
// the same way git finds its repository root.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MarkerName is the file that marks a directory as a notes root.
const MarkerName = ".noter.yaml"

// Config holds per-root settings stored in the marker file.
type Config struct {
	Editor     string `yaml:"editor,omitempty"`
	DatePrefix bool   `yaml:"date_prefix,omitempty"`
}

// Root is a resolved notes root.
type Root struct {
	Path   string
	Config Config

	// Marked reports whether the root was found via a marker file, as
	// opposed to falling back to the working directory.
	Marked bool
}

// Init marks dir as a notes root by writing the marker file. Creating the
// marker uses O_EXCL so two concurrent inits cannot clobber each other;
// initializing an already-marked root just reloads it.
func Init(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve notes root: %w", err)
	}

	data, err := yaml.Marshal(Config{})
	if err != nil {
		return nil, fmt.Errorf("marshal root config: %w", err)
	}

	markerPath := filepath.Join(abs, MarkerName)
	f, err := os.OpenFile(markerPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return load(abs, true)
		}
		return nil, fmt.Errorf("write %s: %w", MarkerName, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return nil, fmt.Errorf("write %s: %w", MarkerName, err)
	}

	return &Root{Path: abs, Marked: true}, nil
}

// Discover resolves the notes root for a command started in startDir.
//
// Resolution order:
//  1. override (--root flag, NOTER_ROOT, or the config "root" key),
//  2. the nearest ancestor of startDir containing a marker file,
//  3. startDir itself.
func Discover(startDir, override string) (*Root, error) {
	if override != "" {
		path, err := expandHome(override)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("notes root %s: %w", override, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("notes root %s is not a directory", override)
		}
		return load(path, true)
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	for dir := abs; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, MarkerName)); err == nil {
			return load(dir, true)
		}
		if dir == filepath.Dir(dir) {
			break
		}
	}

	// No marker anywhere above us: the working directory is the root. This
	// matches the original tool, which always worked relative to cwd.
	return load(abs, false)
}

// load builds a Root, reading the marker config when present.
func load(dir string, marked bool) (*Root, error) {
	r := &Root{Path: dir, Marked: marked}

	data, err := os.ReadFile(filepath.Join(dir, MarkerName))
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", MarkerName, err)
	}

	if err := yaml.Unmarshal(data, &r.Config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", MarkerName, err)
	}
	return r, nil
}

// CourseDirs lists the names of course candidate directories directly under
// the root, in directory order.
func (r *Root) CourseDirs() ([]string, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read notes root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

func expandHome(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
