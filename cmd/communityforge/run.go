package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/orchestrator"
	"github.com/thirstys/communityforge/internal/persistence"
	"github.com/thirstys/communityforge/internal/scheduler"
)

func newRunCmd() *cobra.Command {
	var (
		outputDir string
		limit     int
		jsonOut   bool
		noStore   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full agent team pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, _, _, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if limit > 0 {
				cfg.LimitPerSource = limit
			}

			manager := orchestrator.NewManager(scheduler.NewRegistry(), nil)
			runner := orchestrator.NewTeamRunner(manager, orchestrator.DependenciesFromConfig(cfg), cfg.OutputDir)
			runner.SetLimitPerSource(cfg.LimitPerSource)
			for _, role := range cfg.DisabledRoles {
				runner.DisableRoles(scheduler.Role(role))
			}

			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			if !noStore {
				if err := persistRun(ctx, cfg.StorePath, manager, report); err != nil {
					// History is best effort; the run itself succeeded.
					fmt.Fprintf(os.Stderr, "WARNING: saving run history: %v\n", err)
				}
			}

			if jsonOut {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				printRunReport(report)
			}

			if report.Summary.Failed > 0 {
				return fmt.Errorf("%d task(s) failed", report.Summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for run artifacts (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max insights fetched per source (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip saving the run to history")

	return cmd
}

func persistRun(ctx context.Context, storePath string, manager *orchestrator.Manager, report *orchestrator.RunReport) error {
	store, err := persistence.NewSQLiteStore(ctx, storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return err
	}

	summary := report.Summary
	startedAt, _ := time.Parse(time.RFC3339, summary.Timestamp)
	endedAt, _ := time.Parse(time.RFC3339, summary.EndTime)

	record := &persistence.RunRecord{
		StartedAt:          startedAt,
		EndedAt:            endedAt,
		TotalTasks:         summary.TotalTasks,
		Successful:         summary.Successful,
		Failed:             summary.Failed,
		Blocked:            summary.Blocked,
		TotalExecutionTime: summary.TotalExecutionTime,
		Summary:            string(summaryJSON),
	}

	var tasks []*persistence.TaskRecord
	for _, result := range summary.Results {
		task := manager.Queue().Task(result.TaskID)
		if task == nil {
			continue
		}
		tasks = append(tasks, &persistence.TaskRecord{
			TaskID:        result.TaskID,
			Name:          task.Name,
			Role:          string(task.Role),
			Success:       result.Success,
			Error:         result.Error,
			ExecutionTime: result.ExecutionTime,
		})
	}

	_, err = store.SaveRun(ctx, record, tasks)
	return err
}

func printRunReport(report *orchestrator.RunReport) {
	summary := report.Summary

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	bold.Println("Agent Team Run")
	fmt.Printf("  tasks:      %d\n", summary.TotalTasks)
	green.Printf("  successful: %d\n", summary.Successful)
	if summary.Failed > 0 {
		red.Printf("  failed:     %d\n", summary.Failed)
	} else {
		fmt.Printf("  failed:     %d\n", summary.Failed)
	}
	if summary.Blocked {
		red.Println("  blocked:    some tasks never became ready")
	}
	fmt.Printf("  duration:   %.2fs\n", summary.TotalExecutionTime)

	if len(report.ArtifactPaths) > 0 {
		bold.Println("Artifacts")
		names := make([]string, 0, len(report.ArtifactPaths))
		for name := range report.ArtifactPaths {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			faint.Printf("  %-16s %s\n", name, report.ArtifactPaths[name])
		}
	}
}
