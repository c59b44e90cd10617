package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "communityforge",
		Short: "Community feedback agent team for Thirsty's Game Studio",
		Long: `communityforge runs an agent team that collects community feedback,
synthesizes F2P-compliant feature proposals, and drafts GitHub issues
and pull requests from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newTUICmd(),
		newPolicyCmd(),
		newWorkflowCmd(),
		newHistoryCmd(),
	)

	return root
}

// configPaths returns the conventional global and project config paths.
func configPaths() (globalPath, projectPath string, err error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("getting home directory: %w", err)
	}
	globalPath = filepath.Join(homeDir, ".communityforge", "config.json")
	projectPath = filepath.Join(".communityforge", "config.json")
	return globalPath, projectPath, nil
}

func loadConfig() (*config.Config, string, string, error) {
	globalPath, projectPath, err := configPaths()
	if err != nil {
		return nil, "", "", err
	}
	cfg, err := config.Load(globalPath, projectPath)
	if err != nil {
		return nil, "", "", err
	}
	return cfg, globalPath, projectPath, nil
}
