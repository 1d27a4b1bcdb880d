package kube

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/remotecommand"
	utilexec "k8s.io/client-go/util/exec"

	"github.com/wiji1/overleaf/internal/terminal"
)

// ExecInput identifies one remote command against a Deployment.
type ExecInput struct {
	Namespace  string
	Deployment string
	// Container is optional; empty selects the Deployment's first container.
	Container string
	Command   []string
}

// ExecOutput is the captured result of a one-shot remote command. A
// non-zero remote exit is reported through ExitCode, not the error.
type ExecOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Exec runs a single command inside the first ready pod of the
// Deployment and captures its output. Each call is fully independent;
// there is no session reuse and no retry.
func (c *Client) Exec(ctx context.Context, in *ExecInput) (*ExecOutput, error) {
	if in == nil || in.Namespace == "" || in.Deployment == "" {
		return nil, fmt.Errorf("namespace and deployment are required")
	}
	if len(in.Command) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	target, err := c.FirstReadyPod(ctx, in.Namespace, in.Deployment, in.Container)
	if err != nil {
		return nil, err
	}

	ex, err := c.executor(target, in.Command, false)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	err = ex.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	out := &ExecOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr utilexec.CodeExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.Code
			return out, nil
		}
		return nil, fmt.Errorf("exec stream: %w", err)
	}
	return out, nil
}

// ExecSession runs an interactive TTY session inside the first ready
// pod of the Deployment, attaching the local terminal.
func (c *Client) ExecSession(ctx context.Context, in *ExecInput, opts terminal.SessionOptions) (*terminal.SessionResult, error) {
	if in == nil || in.Namespace == "" || in.Deployment == "" {
		return nil, fmt.Errorf("namespace and deployment are required")
	}
	target, err := c.FirstReadyPod(ctx, in.Namespace, in.Deployment, in.Container)
	if err != nil {
		return nil, err
	}
	ex, err := c.executor(target, in.Command, true)
	if err != nil {
		return nil, err
	}
	return terminal.RunSession(ctx, ex, opts)
}

func (c *Client) executor(target *PodTarget, command []string, tty bool) (remotecommand.Executor, error) {
	req := c.Clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(target.Namespace).
		Name(target.Pod).
		SubResource("exec")
	req.VersionedParams(&corev1.PodExecOptions{
		Container: target.Container,
		Command:   command,
		Stdin:     tty,
		Stdout:    true,
		Stderr:    !tty,
		TTY:       tty,
	}, scheme.ParameterCodec)

	ex, err := remotecommand.NewSPDYExecutor(c.RESTConfig, "POST", req.URL())
	if err != nil {
		return nil, fmt.Errorf("exec create: %w", err)
	}
	return ex, nil
}
