package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wiji1/overleaf/internal/cli/output"
	"github.com/wiji1/overleaf/usecase/user"
)

// newCmdMenu returns the interactive menu command. All reads go
// through the command's input stream so the loop can be scripted.
func newCmdMenu() *cobra.Command {
	return &cobra.Command{
		Use:           "menu",
		Short:         "Interactive admin menu",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildReadyApp(cmd)
			if err != nil {
				return err
			}
			m := &menu{
				app: a,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return m.run(cmd.Context())
		},
	}
}

// menu is the numbered dispatcher. Action failures are reported inline
// and return control to the menu; only startup failures are fatal.
type menu struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func (m *menu) run(ctx context.Context) error {
	for {
		m.print()
		choice, ok := m.readLine("Select an option")
		if !ok {
			return nil // EOF behaves like exit
		}
		switch choice {
		case "1":
			m.report(m.list(ctx))
		case "2":
			m.report(m.view(ctx))
		case "3":
			m.report(m.create(ctx))
		case "4":
			m.report(m.delete(ctx))
		case "5":
			m.report(m.toggleAdmin(ctx))
		case "6":
			m.report(m.verify(ctx))
		case "7":
			m.report(m.stats(ctx))
		case "8":
			fmt.Fprintln(m.out, "Bye")
			return nil
		default:
			output.Errorf(m.out, "Invalid option: %s", choice)
		}
	}
}

func (m *menu) print() {
	output.Titlef(m.out, "Overleaf Admin")
	fmt.Fprintln(m.out, "  1) List users")
	fmt.Fprintln(m.out, "  2) View user")
	fmt.Fprintln(m.out, "  3) Create user")
	fmt.Fprintln(m.out, "  4) Delete user")
	fmt.Fprintln(m.out, "  5) Toggle admin")
	fmt.Fprintln(m.out, "  6) Verify email")
	fmt.Fprintln(m.out, "  7) Statistics")
	fmt.Fprintln(m.out, "  8) Exit")
}

// report prints an action failure and keeps the loop alive.
func (m *menu) report(err error) {
	if err != nil {
		output.Errorf(m.out, "%s", err)
	}
}

func (m *menu) readLine(label string) (string, bool) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) readEmail() (string, bool) {
	for {
		s, ok := m.readLine("Email")
		if !ok {
			return "", false
		}
		if s != "" {
			return s, true
		}
		output.Errorf(m.out, "Email is required")
	}
}

func (m *menu) confirm(label string) bool {
	s, ok := m.readLine(label + " [y/N]")
	if !ok {
		return false
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes"
}

// confirmDanger requires the word yes typed in full.
func (m *menu) confirmDanger(label string) bool {
	s, ok := m.readLine(label + " (type 'yes' to confirm)")
	return ok && s == "yes"
}

func (m *menu) list(ctx context.Context) error {
	out, err := m.app.uc.List(ctx, &user.ListInput{})
	if err != nil {
		return err
	}
	if out.Degraded {
		output.Warnf(m.out, "Listing is degraded: only email addresses are available")
		output.PrintDegradedList(m.out, out.Emails)
		return nil
	}
	output.PrintUserList(m.out, out.Users)
	return nil
}

func (m *menu) view(ctx context.Context) error {
	email, ok := m.readEmail()
	if !ok {
		return nil
	}
	out, err := m.app.uc.Get(ctx, &user.GetInput{Email: email})
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, output.PrettyJSON(out.Raw))
	return nil
}

func (m *menu) create(ctx context.Context) error {
	email, ok := m.readEmail()
	if !ok {
		return nil
	}
	admin := m.confirm("Grant admin privileges")
	if !m.confirm(fmt.Sprintf("Create user %s", email)) {
		return nil
	}
	out, err := m.app.uc.Create(ctx, &user.CreateInput{Email: email, Admin: admin})
	if err != nil {
		return err
	}
	output.Successf(m.out, "Created user %s", email)
	if tail := out.Result.Tail(3); tail != "" {
		fmt.Fprintln(m.out, tail)
	}
	return nil
}

func (m *menu) delete(ctx context.Context) error {
	email, ok := m.readEmail()
	if !ok {
		return nil
	}
	// Check existence before any confirmation prompt.
	if err := requireUser(ctx, m.app, email); err != nil {
		return err
	}
	skipEmail := m.confirm("Skip the deletion notification email")
	if !m.confirmDanger(fmt.Sprintf("Delete user %s and all their projects. There is no undo", email)) {
		return nil
	}
	if _, err := m.app.uc.Delete(ctx, &user.DeleteInput{Email: email, SkipEmail: skipEmail}); err != nil {
		return err
	}
	output.Successf(m.out, "Deleted user %s", email)
	return nil
}

func (m *menu) toggleAdmin(ctx context.Context) error {
	email, ok := m.readEmail()
	if !ok {
		return nil
	}
	if err := requireUser(ctx, m.app, email); err != nil {
		return err
	}
	cur, err := m.app.uc.AdminFlag(ctx, &user.AdminFlagInput{Email: email})
	if err != nil {
		return err
	}
	verb := "Promote"
	if cur.Admin {
		verb = "Demote"
	}
	if !m.confirm(fmt.Sprintf("%s %s", verb, email)) {
		return nil
	}
	if _, err := m.app.uc.SetAdmin(ctx, &user.SetAdminInput{Email: email, Admin: !cur.Admin}); err != nil {
		return err
	}
	if cur.Admin {
		output.Successf(m.out, "%s is no longer an admin", email)
	} else {
		output.Successf(m.out, "%s is now an admin", email)
	}
	return nil
}

func (m *menu) verify(ctx context.Context) error {
	email, ok := m.readEmail()
	if !ok {
		return nil
	}
	if err := requireUser(ctx, m.app, email); err != nil {
		return err
	}
	if !m.confirm(fmt.Sprintf("Mark %s as verified", email)) {
		return nil
	}
	out, err := m.app.uc.Verify(ctx, &user.VerifyInput{Email: email})
	if err != nil {
		return err
	}
	if out.Modified == 0 {
		output.Warnf(m.out, "No user matched %s", email)
		return nil
	}
	output.Successf(m.out, "Verified email for %s", email)
	return nil
}

func (m *menu) stats(ctx context.Context) error {
	out, err := m.app.uc.Stats(ctx, &user.StatsInput{})
	if err != nil {
		return err
	}
	output.PrintStats(m.out, out.Stats)
	return nil
}
