// Package mongo implements domain.MongoRunner by evaluating shell
// expressions inside the database deployment's pod.
package mongo

import (
	"context"
	"fmt"
	"strings"

	"github.com/wiji1/overleaf/adapters/kube"
	"github.com/wiji1/overleaf/config/admincfg"
	"github.com/wiji1/overleaf/domain/model"
	"github.com/wiji1/overleaf/internal/logging"
)

// Runner evaluates mongo shell expressions. Each Eval spawns one remote
// process; there is no session reuse.
type Runner struct {
	client     *kube.Client
	namespace  string
	deployment string
	container  string
	database   string
	shell      string // "mongosh", or "mongo" for the legacy shell
}

// NewRunner wires a Runner against the configured database deployment.
// The shell binary defaults to mongosh until Probe detects otherwise.
func NewRunner(client *kube.Client, namespace string, cfg admincfg.Mongo) *Runner {
	return &Runner{
		client:     client,
		namespace:  namespace,
		deployment: cfg.Deployment,
		container:  cfg.Container,
		database:   cfg.Database,
		shell:      "mongosh",
	}
}

// Probe detects which shell binary the database pod offers. A pod with
// only the legacy mongo shell degrades listing fidelity but remains
// usable; a pod with neither is unusable and fails here.
func (r *Runner) Probe(ctx context.Context) error {
	out, err := r.client.Exec(ctx, &kube.ExecInput{
		Namespace:  r.namespace,
		Deployment: r.deployment,
		Container:  r.container,
		Command:    []string{"sh", "-c", "command -v mongosh || command -v mongo"},
	})
	if err != nil {
		return fmt.Errorf("probe mongo shell: %w", err)
	}
	path := strings.TrimSpace(out.Stdout)
	switch {
	case strings.HasSuffix(path, "mongosh"):
		r.shell = "mongosh"
	case strings.HasSuffix(path, "mongo"):
		r.shell = "mongo"
		logging.FromContext(ctx).Warn(ctx, "database pod only has the legacy mongo shell; listing output will be degraded",
			"deployment", r.deployment)
	default:
		return fmt.Errorf("no mongo shell found in deployment %s/%s", r.namespace, r.deployment)
	}
	return nil
}

// Degraded reports whether only the legacy shell is available.
func (r *Runner) Degraded() bool {
	return r.shell == "mongo"
}

// Eval runs one expression with `<shell> <db> --quiet --eval <expr>`
// and returns the captured output.
func (r *Runner) Eval(ctx context.Context, expr string) (*model.CommandResult, error) {
	out, err := r.client.Exec(ctx, &kube.ExecInput{
		Namespace:  r.namespace,
		Deployment: r.deployment,
		Container:  r.container,
		Command:    []string{r.shell, r.database, "--quiet", "--eval", expr},
	})
	if err != nil {
		return nil, err
	}
	return &model.CommandResult{Stdout: out.Stdout, Stderr: out.Stderr, ExitCode: out.ExitCode}, nil
}

// ShellCommand returns the argv for an interactive shell session in the
// database pod, used by the `mongo shell` command.
func (r *Runner) ShellCommand() []string {
	return []string{r.shell, r.database}
}
