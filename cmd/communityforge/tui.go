package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/events"
	"github.com/thirstys/communityforge/internal/orchestrator"
	"github.com/thirstys/communityforge/internal/scheduler"
	"github.com/thirstys/communityforge/internal/tui"
)

func newTUICmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the pipeline with a live terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, globalPath, projectPath, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			bus := events.NewBus()
			defer bus.Close()

			model := tui.New(bus, cfg, globalPath, projectPath)
			p := tea.NewProgram(model, tea.WithAltScreen())

			manager := orchestrator.NewManager(scheduler.NewRegistry(), bus)
			runner := orchestrator.NewTeamRunner(manager, orchestrator.DependenciesFromConfig(cfg), cfg.OutputDir)
			runner.SetLimitPerSource(cfg.LimitPerSource)
			for _, role := range cfg.DisabledRoles {
				runner.DisableRoles(scheduler.Role(role))
			}

			go func() {
				report, runErr := runner.Run(ctx)
				msg := tui.RunFinishedMsg{Err: runErr}
				if report != nil {
					msg.Successful = report.Summary.Successful
					msg.Failed = report.Summary.Failed
				}
				p.Send(msg)
			}()

			errChan := make(chan error, 1)
			go func() {
				_, err := p.Run()
				errChan <- err
			}()

			select {
			case err := <-errChan:
				return err
			case <-ctx.Done():
				stop()
				p.Quit()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				select {
				case err := <-errChan:
					return err
				case <-shutdownCtx.Done():
					return fmt.Errorf("shutdown timeout exceeded")
				}
			}
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for run artifacts (default from config)")

	return cmd
}
