package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wiji1/overleaf/adapters/kube"
	"github.com/wiji1/overleaf/internal/terminal"
)

// newCmdMongo returns the root mongo command.
func newCmdMongo() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "mongo",
		Short:              "Work with the Overleaf database",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdMongoShell())
	return cmd
}

// newCmdMongoShell opens an interactive mongo shell in the database pod.
func newCmdMongoShell() *cobra.Command {
	var escape string
	cmd := &cobra.Command{
		Use:           "shell",
		Short:         "Open an interactive mongo shell in the database pod",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			terminal.QuietKlog()
			res, err := a.kube.ExecSession(cmd.Context(), &kube.ExecInput{
				Namespace:  a.cfg.Cluster.Namespace,
				Deployment: a.cfg.Mongo.Deployment,
				Container:  a.cfg.Mongo.Container,
				Command:    a.mongo.ShellCommand(),
			}, terminal.SessionOptions{Escape: escape})
			if err != nil {
				return err
			}
			if res.Detached {
				fmt.Fprintln(cmd.OutOrStdout(), "Detached")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&escape, "escape", "^]", "Escape sequence to detach (^], ^P^Q, ~., none)")
	return cmd
}
