package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/pkg/workspace"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Mark the current directory as the notes root",
		Long: `Mark the current directory as the notes root by writing a ` + workspace.MarkerName + `
marker file.

Afterwards, 'noter new' and friends work from anywhere inside this tree:
they walk upward to the nearest marker to find the root, the way git finds
a repository. Without a marker, commands treat the working directory as the
root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			root, err := workspace.Init(cwd)
			if err != nil {
				return err
			}

			fmt.Printf("Initialized notes root at %s\n", root.Path)
			fmt.Println("\nReady to use! Try 'noter course CODE \"Title\"' to create your first course.")
			return nil
		},
	}

	return cmd
}
