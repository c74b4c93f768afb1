package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/cmd"
	"github.com/chyyran/noter/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "noter",
		Short: "Organize plain-text course notes into folders",
		Long: `noter organizes markdown notes into one folder per course.

Create a course folder with 'noter course CODE "Title"', then add notes to
it from anywhere under the notes root with 'noter new CODE [title]'.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(config.InitConfig)
	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewCourseCmd())
	rootCmd.AddCommand(cmd.NewNewCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewSearchCmd())
	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
