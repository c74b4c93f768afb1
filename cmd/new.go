package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/cmd/config"
	"github.com/chyyran/noter/pkg/service"
)

func NewNewCmd() *cobra.Command {
	var (
		noEdit    bool
		blank     bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "new <code> [title]",
		Short: "Create a new note in a course folder",
		Long: `Create a new note in the course folder matching the given code.

The course folder is located under the notes root, wherever the command is
run from inside that root. With a title, the note is named <slug>.md; without
one, the next free untitled-<n>.md is used.

Examples:
  noter new CSC263 "Binomial Heaps"   # creates binomial-heaps.md
  noter new EAS330                    # creates untitled-1.md, then untitled-2.md, ...

  # From stdin (auto-detected):
  echo "Quick thought" | noter new CSC263 "office hours"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			code := args[0]
			title := strings.Join(args[1:], " ")

			// Auto-detect stdin if not explicitly set
			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}

			var opts []service.CreateOption
			if noEdit || fromStdin {
				opts = append(opts, service.WithoutEditor())
			}
			if blank {
				opts = append(opts, service.Blank())
			}

			note, err := svc.CreateNote(code, title, opts...)
			if err != nil {
				return err
			}

			// If reading from stdin, append the content
			if fromStdin {
				content, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}

				existing, err := os.ReadFile(note.Path)
				if err != nil {
					return fmt.Errorf("read note: %w", err)
				}

				newContent := string(existing) + "\n" + string(content)
				if err := svc.UpdateNoteContent(note.Path, newContent); err != nil {
					return fmt.Errorf("update note content: %w", err)
				}
			}

			fmt.Printf("Created %s::%s\n", note.Course, note.Filename)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEdit, "no-edit", false, "Don't open editor after creating")
	cmd.Flags().BoolVar(&blank, "blank", false, "Create an empty file instead of the frontmatter template")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin (auto-detected when piped)")

	return cmd
}
