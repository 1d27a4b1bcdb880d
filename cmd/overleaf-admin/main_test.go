package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wiji1/overleaf/config/admincfg"
	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/cli/prompt"
	"github.com/wiji1/overleaf/usecase/user"
)

// mongoMock answers each expression with the first matching rule and
// records every expression it saw.
type mongoMock struct {
	degraded bool
	rules    []mongoRule
	calls    []string
}

type mongoRule struct {
	contains string
	stdout   string
	exitCode int
}

func (m *mongoMock) Eval(ctx context.Context, expr string) (*model.CommandResult, error) {
	m.calls = append(m.calls, expr)
	for _, r := range m.rules {
		if strings.Contains(expr, r.contains) {
			return &model.CommandResult{Stdout: r.stdout, ExitCode: r.exitCode}, nil
		}
	}
	return nil, errors.New("unexpected expression: " + expr)
}

func (m *mongoMock) Degraded() bool { return m.degraded }

// updates returns the recorded update expressions.
func (m *mongoMock) updates() []string {
	var out []string
	for _, c := range m.calls {
		if strings.Contains(c, "updateOne") {
			out = append(out, c)
		}
	}
	return out
}

// scriptsMock records maintenance script invocations.
type scriptsMock struct {
	createCalls []struct {
		email string
		admin bool
	}
	deleteCalls []struct {
		email     string
		skipEmail bool
	}
}

func (m *scriptsMock) CreateUser(ctx context.Context, email string, admin bool) (*model.CommandResult, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		admin bool
	}{email, admin})
	return &model.CommandResult{Stdout: "created " + email, ExitCode: 0}, nil
}

func (m *scriptsMock) DeleteUser(ctx context.Context, email string, skipEmail bool) (*model.CommandResult, error) {
	m.deleteCalls = append(m.deleteCalls, struct {
		email     string
		skipEmail bool
	}{email, skipEmail})
	return &model.CommandResult{ExitCode: 0}, nil
}

// stubConfirmer always answers the same way.
type stubConfirmer struct{ answer bool }

func (s stubConfirmer) Confirm(string, bool) (bool, error) { return s.answer, nil }

// testApp wires mocks behind a no-op preflight.
func testApp(mongo *mongoMock, scripts *scriptsMock) *app {
	return &app{
		cfg: admincfg.Default(),
		uc:  &user.UseCase{Ports: &user.Ports{Mongo: mongo, Scripts: scripts}},
		preflight: func(context.Context) error {
			return nil
		},
	}
}

// installTestApp swaps the app builder for the duration of a test.
func installTestApp(a *app) (restore func()) {
	orig := buildAppFunc
	buildAppFunc = func(cmd *cobra.Command) (*app, error) { return a, nil }
	return func() { buildAppFunc = orig }
}

// installConfirmer swaps the confirmer factory for the duration of a test.
func installConfirmer(answer bool) (restore func()) {
	orig := newConfirmer
	newConfirmer = func(yes bool) prompt.Confirmer {
		if yes {
			return prompt.Always{}
		}
		return stubConfirmer{answer: answer}
	}
	return func() { newConfirmer = orig }
}
