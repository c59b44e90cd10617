package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/workflowgen"
)

func newWorkflowCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Generate the GitHub Actions workflow files",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := workflowgen.NewGenerator(dir)
			paths, err := generator.WriteAll()
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Println(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".github/workflows", "directory to write workflow files")

	return cmd
}
