package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/persistence"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, _, _, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := persistence.NewSQLiteStore(ctx, cfg.StorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)

			bold.Printf("%-6s %-22s %-8s %-8s %-8s %s\n", "ID", "STARTED", "TASKS", "OK", "FAILED", "DURATION")
			for _, run := range runs {
				fmt.Printf("%-6d %-22s %-8d ", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), run.TotalTasks)
				green.Printf("%-8d ", run.Successful)
				if run.Failed > 0 {
					red.Printf("%-8d ", run.Failed)
				} else {
					fmt.Printf("%-8d ", run.Failed)
				}
				fmt.Printf("%.2fs\n", run.TotalExecutionTime)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max runs to show (0 for all)")

	return cmd
}
