package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				data, err := json.MarshalIndent(map[string]string{
					"version": Version,
					"commit":  Commit,
					"date":    Date,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info to JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("noter %s (commit %s, built %s)\n", Version, Commit, Date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}
