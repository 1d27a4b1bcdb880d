package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/cli/output"
	"github.com/wiji1/overleaf/internal/cli/prompt"
	"github.com/wiji1/overleaf/usecase/user"
)

// newCmdUser returns the root user command.
func newCmdUser() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "user",
		Short:              "Manage Overleaf user accounts",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(
		newCmdUserList(),
		newCmdUserShow(),
		newCmdUserCreate(),
		newCmdUserDelete(),
		newCmdUserAdmin(),
		newCmdUserVerify(),
		newCmdUserStats(),
	)
	return cmd
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*time.Minute)
}

// emailArg returns the positional email, prompting when omitted.
func emailArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return prompt.InputRequired("Email")
}

// requireUser short-circuits with ErrUserNotFound before any
// confirmation prompt is shown.
func requireUser(ctx context.Context, a *app, email string) error {
	out, err := a.uc.Exists(ctx, &user.ExistsInput{Email: email})
	if err != nil {
		return err
	}
	if out.Count == 0 {
		return fmt.Errorf("%w: %s", model.ErrUserNotFound, email)
	}
	return nil
}

// newCmdUserList lists all user accounts.
func newCmdUserList() *cobra.Command {
	return &cobra.Command{
		Use:                "list",
		Short:              "List user accounts",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			out, err := a.uc.List(ctx, &user.ListInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Degraded {
				output.Warnf(w, "Listing is degraded: only email addresses are available")
				output.PrintDegradedList(w, out.Emails)
				return nil
			}
			output.PrintUserList(w, out.Users)
			return nil
		},
	}
}

// newCmdUserShow prints one user document.
func newCmdUserShow() *cobra.Command {
	return &cobra.Command{
		Use:                "show [EMAIL]",
		Short:              "Show a user account",
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			email, err := emailArg(args)
			if err != nil {
				return err
			}
			out, err := a.uc.Get(ctx, &user.GetInput{Email: email})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.PrettyJSON(out.Raw))
			return nil
		},
	}
}

// newCmdUserCreate creates a user via the remote maintenance script.
func newCmdUserCreate() *cobra.Command {
	var admin, yes bool
	cmd := &cobra.Command{
		Use:                "create [EMAIL]",
		Short:              "Create a user account",
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			email, err := emailArg(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ok, err := newConfirmer(yes).Confirm(fmt.Sprintf("Create user %s", email), false)
			if err != nil {
				return err
			}
			if !ok {
				output.Warnf(w, "Cancelled")
				return nil
			}
			out, err := a.uc.Create(ctx, &user.CreateInput{Email: email, Admin: admin})
			if err != nil {
				return err
			}
			output.Successf(w, "Created user %s", email)
			// The script prints a password-set URL; pass it along.
			if tail := out.Result.Tail(3); tail != "" {
				fmt.Fprintln(w, tail)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant admin privileges")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newCmdUserDelete deletes a user via the remote maintenance script.
func newCmdUserDelete() *cobra.Command {
	var skipEmail, yes bool
	cmd := &cobra.Command{
		Use:                "delete [EMAIL]",
		Short:              "Delete a user account",
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			email, err := emailArg(args)
			if err != nil {
				return err
			}
			if err := requireUser(ctx, a, email); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ok, err := newConfirmer(yes).Confirm(fmt.Sprintf("Delete user %s and all their projects. There is no undo", email), true)
			if err != nil {
				return err
			}
			if !ok {
				output.Warnf(w, "Cancelled")
				return nil
			}
			if _, err := a.uc.Delete(ctx, &user.DeleteInput{Email: email, SkipEmail: skipEmail}); err != nil {
				return err
			}
			output.Successf(w, "Deleted user %s", email)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipEmail, "skip-email", false, "Do not send the deletion notification email")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newCmdUserAdmin toggles the admin flag of a user account, or sets it
// explicitly with --set.
func newCmdUserAdmin() *cobra.Command {
	var yes bool
	var set string
	cmd := &cobra.Command{
		Use:                "admin [EMAIL]",
		Short:              "Toggle admin privileges of a user account",
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			email, err := emailArg(args)
			if err != nil {
				return err
			}
			if err := requireUser(ctx, a, email); err != nil {
				return err
			}
			var target bool
			switch set {
			case "":
				cur, err := a.uc.AdminFlag(ctx, &user.AdminFlagInput{Email: email})
				if err != nil {
					return err
				}
				target = !cur.Admin
			case "true":
				target = true
			case "false":
				target = false
			default:
				return fmt.Errorf("--set must be true or false")
			}
			verb := "Demote"
			if target {
				verb = "Promote"
			}
			w := cmd.OutOrStdout()
			ok, err := newConfirmer(yes).Confirm(fmt.Sprintf("%s %s", verb, email), false)
			if err != nil {
				return err
			}
			if !ok {
				output.Warnf(w, "Cancelled")
				return nil
			}
			if _, err := a.uc.SetAdmin(ctx, &user.SetAdminInput{Email: email, Admin: target}); err != nil {
				return err
			}
			if target {
				output.Successf(w, "%s is now an admin", email)
			} else {
				output.Successf(w, "%s is no longer an admin", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "Set the flag explicitly (true|false) instead of toggling")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newCmdUserVerify marks the primary email address as confirmed.
func newCmdUserVerify() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:                "verify [EMAIL]",
		Short:              "Mark a user's primary email address as verified",
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			email, err := emailArg(args)
			if err != nil {
				return err
			}
			if err := requireUser(ctx, a, email); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ok, err := newConfirmer(yes).Confirm(fmt.Sprintf("Mark %s as verified", email), false)
			if err != nil {
				return err
			}
			if !ok {
				output.Warnf(w, "Cancelled")
				return nil
			}
			out, err := a.uc.Verify(ctx, &user.VerifyInput{Email: email})
			if err != nil {
				return err
			}
			if out.Modified == 0 {
				return fmt.Errorf("%w: %s", model.ErrUserNotFound, email)
			}
			output.Successf(w, "Verified email for %s", email)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newCmdUserStats prints aggregate account counts.
func newCmdUserStats() *cobra.Command {
	return &cobra.Command{
		Use:                "stats",
		Short:              "Show user account statistics",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			out, err := a.uc.Stats(ctx, &user.StatsInput{})
			if err != nil {
				return err
			}
			output.PrintStats(cmd.OutOrStdout(), out.Stats)
			return nil
		},
	}
}
