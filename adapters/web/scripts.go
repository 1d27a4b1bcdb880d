// Package web implements domain.ScriptRunner by invoking the Overleaf
// server-ce-scripts maintenance scripts inside the web deployment. The
// scripts themselves are owned by the remote image.
package web

import (
	"context"

	"github.com/wiji1/overleaf/adapters/kube"
	"github.com/wiji1/overleaf/config/admincfg"
	"github.com/wiji1/overleaf/domain/model"
)

const (
	createScript = "modules/server-ce-scripts/scripts/create-user.js"
	deleteScript = "modules/server-ce-scripts/scripts/delete-user.js"
)

// Runner invokes the maintenance scripts.
type Runner struct {
	client     *kube.Client
	namespace  string
	deployment string
	container  string
	scriptDir  string
}

// NewRunner wires a Runner against the configured web deployment.
func NewRunner(client *kube.Client, namespace string, cfg admincfg.Web) *Runner {
	dir := cfg.ScriptDir
	if dir == "" {
		dir = "/overleaf/services/web"
	}
	return &Runner{
		client:     client,
		namespace:  namespace,
		deployment: cfg.Deployment,
		container:  cfg.Container,
		scriptDir:  dir,
	}
}

// CreateUser runs the create-user script, optionally with the admin flag.
func (r *Runner) CreateUser(ctx context.Context, email string, admin bool) (*model.CommandResult, error) {
	args := []string{"--email=" + email}
	if admin {
		args = append(args, "--admin")
	}
	return r.runScript(ctx, createScript, args)
}

// DeleteUser runs the delete-user script, optionally suppressing the
// notification email.
func (r *Runner) DeleteUser(ctx context.Context, email string, skipEmail bool) (*model.CommandResult, error) {
	args := []string{"--email=" + email}
	if skipEmail {
		args = append(args, "--skip-email")
	}
	return r.runScript(ctx, deleteScript, args)
}

// runScript cds into the web service directory and runs the script with
// node. Arguments pass through the shell as positional parameters, never
// interpolated into the command line.
func (r *Runner) runScript(ctx context.Context, script string, args []string) (*model.CommandResult, error) {
	command := append([]string{
		"sh", "-c", `cd "$0" && s="$1" && shift && node "$s" "$@"`,
		r.scriptDir, script,
	}, args...)
	out, err := r.client.Exec(ctx, &kube.ExecInput{
		Namespace:  r.namespace,
		Deployment: r.deployment,
		Container:  r.container,
		Command:    command,
	})
	if err != nil {
		return nil, err
	}
	return &model.CommandResult{Stdout: out.Stdout, Stderr: out.Stderr, ExitCode: out.ExitCode}, nil
}
