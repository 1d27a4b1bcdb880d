package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiji1/overleaf/internal/cli/output"
)

// newCmdAudit returns the root audit command.
func newCmdAudit() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "audit",
		Short:              "Inspect the local operation history",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdAuditList())
	return cmd
}

// newCmdAuditList lists recorded operations, newest first.
func newCmdAuditList() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:                "list",
		Short:              "List recorded operations",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildAppFunc(cmd)
			if err != nil {
				return err
			}
			if a.uc.Ports.Audit == nil {
				return fmt.Errorf("audit log is disabled; set audit.dbURL in the configuration")
			}
			entries, err := a.uc.Ports.Audit.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			output.PrintAuditList(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries")
	return cmd
}
