package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/cmd/config"
)

func NewListCmd() *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list [code]",
		Short:   "List courses, or the notes in one course",
		Aliases: []string{"ls"},
		Long: `List the course folders under the notes root, or with a course code,
the notes inside that course.

Examples:
  noter list             # all courses
  noter list CSC263      # notes in CSC263
  noter list --json      # machine-readable output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if len(args) == 0 {
				courses, err := svc.ListCourses()
				if err != nil {
					return err
				}

				if listJSON {
					return printJSON(courses)
				}

				if len(courses) == 0 {
					fmt.Println("No courses found. Create one with 'noter course CODE \"Title\"'.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CODE\tTITLE\tNOTES")
				for _, c := range courses {
					fmt.Fprintf(w, "%s\t%s\t%d\n", c.Code, c.Title, c.NoteCount)
				}
				return w.Flush()
			}

			notes, err := svc.ListNotes(args[0])
			if err != nil {
				return err
			}

			if listJSON {
				for _, n := range notes {
					n.Content = "" // keep the listing lean
				}
				return printJSON(notes)
			}

			if len(notes) == 0 {
				fmt.Printf("No notes in %s yet.\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tTITLE\tMODIFIED\tWORDS")
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", n.Filename, n.Title, n.ModifiedAt.Format("2006-01-02 15:04"), n.WordCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	return cmd
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
