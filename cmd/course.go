package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chyyran/noter/cmd/config"
	"github.com/chyyran/noter/pkg/models"
)

func NewCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course <code> <title>",
		Short: "Create a folder for a new course",
		Long: `Create a folder for a new course under the notes root.

The folder is named by combining the course code with a slug of the title:

  noter course EAS103 "Premodern East Asia"   # creates EAS103-premodern-east-asia/
  noter course EAS330 ""                      # creates EAS330/

A course code can only be used once per notes root.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			code := args[0]
			title := strings.Join(args[1:], " ")

			course, err := svc.CreateCourse(code, title)
			if err != nil {
				if errors.Is(err, models.ErrCourseExists) {
					return fmt.Errorf("folder for %s %s already exists", code, title)
				}
				return err
			}

			fmt.Printf("Created folder for %s %s.\n", code, title)
			fmt.Println(course.Path)
			return nil
		},
	}

	return cmd
}
