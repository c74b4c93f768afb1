package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/cmd/config"
	"github.com/chyyran/noter/pkg/service"
)

func NewSearchCmd() *cobra.Command {
	var (
		searchCourse string
		searchLimit  int
		searchJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes",
		Long: `Search for notes matching the query across all courses under the
notes root. The index is rebuilt from the files before searching, so notes
edited outside noter are always found.

Examples:
  noter search "binomial heaps"
  noter search amortized -c CSC263
  noter search heian --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			query := strings.Join(args, " ")

			var opts []service.SearchOption
			if searchCourse != "" {
				opts = append(opts, service.InCourse(searchCourse))
			}
			opts = append(opts, service.WithLimit(searchLimit))

			results, err := svc.SearchNotes(query, opts...)
			if err != nil {
				return err
			}

			if searchJSON {
				return printJSON(results)
			}

			if len(results) == 0 {
				fmt.Println("No results found")
				return nil
			}

			fmt.Printf("Found %d results:\n\n", len(results))
			for i, note := range results {
				fmt.Printf("%d. %s\n", i+1, note.Title)
				fmt.Printf("   %s\n", note.Path)
				if note.Course != "" {
					fmt.Printf("   Course: %s\n", note.Course)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&searchCourse, "course", "c", "", "Restrict the search to one course code")
	cmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
	cmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")

	return cmd
}
