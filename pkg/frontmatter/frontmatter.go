package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// Frontmatter represents the structured metadata at the beginning of a note
type Frontmatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Course   string   `yaml:"course,omitempty"`
	Tags     []string `yaml:"tags,flow"`
	Created  string   `yaml:"created"`
	Modified string   `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	frontmatterStr := matches[1]
	bodyContent := matches[2]

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(frontmatterStr), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	return &fm, bodyContent, nil
}

// Build creates the YAML frontmatter string from a Frontmatter struct
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Always include these fields in a consistent order
	sb.WriteString(fmt.Sprintf("id: %s\n", fm.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", fm.Title))
	if fm.Course != "" {
		sb.WriteString(fmt.Sprintf("course: %s\n", fm.Course))
	}
	sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	sb.WriteString(fmt.Sprintf("modified: %s\n", fm.Modified))
	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body content into a complete document
func BuildContent(fm *Frontmatter, bodyContent string) string {
	frontmatterStr := Build(fm)

	// Ensure proper spacing between frontmatter and body
	if !strings.HasPrefix(bodyContent, "\n") {
		return frontmatterStr + "\n\n" + bodyContent
	}
	return frontmatterStr + "\n" + bodyContent
}

// FormatTimestamp formats a time.Time into the standard frontmatter timestamp format
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ParseTimestamp parses a frontmatter timestamp string into time.Time
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quotedItems := make([]string, len(items))
	for i, item := range items {
		if needsQuoting(item) {
			quotedItems[i] = fmt.Sprintf("%q", item)
		} else {
			quotedItems[i] = item
		}
	}

	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ",:[]{}\"'")
}
