package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thirstys/communityforge/internal/guardrails"
)

func newPolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the free-to-play monetization policy",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(guardrails.F2PPolicy)
		},
	}
}
