// Package terminal drives the local terminal for interactive remote
// shell sessions: raw mode, window size propagation, and a detach
// escape sequence.
package terminal

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"k8s.io/client-go/tools/remotecommand"
	klog "k8s.io/klog/v2"
)

// sizeQueue implements remotecommand.TerminalSizeQueue over a channel.
type sizeQueue struct {
	ch chan remotecommand.TerminalSize
}

func (q *sizeQueue) Next() *remotecommand.TerminalSize {
	sz, ok := <-q.ch
	if !ok {
		return nil
	}
	return &sz
}

// QuietKlog limits klog noise from client-go; call before starting SPDY
// streams that need a clean terminal.
func QuietKlog() {
	klog.InitFlags(nil)
	_ = flag.Set("stderrthreshold", "FATAL")
	_ = flag.Set("v", "0")
	_ = flag.Set("logtostderr", "false")
	_ = flag.Set("alsologtostderr", "false")
}

// setupTTY puts the local terminal in raw mode and starts publishing
// size updates. The returned restore function is a no-op when stdin is
// not a terminal.
func setupTTY(ctx context.Context) (restore func(), queue remotecommand.TerminalSizeQueue) {
	restore = func() {}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if oldState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
			restore = func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }
		}
	}
	sendSize := func(ch chan remotecommand.TerminalSize) {
		if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
			ch <- remotecommand.TerminalSize{Width: uint16(w), Height: uint16(h)}
		}
	}
	return restore, &sizeQueue{ch: watchSize(ctx, sendSize)}
}

// ParseEscape converts notations like "^]", "^P^Q", or "~." into the
// byte sequence that triggers a detach. Empty or "none" disables.
func ParseEscape(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c == '^' && i+1 < len(s) {
			x := s[i+1]
			switch {
			case x == '^':
				out = append(out, '^')
			case x == '?':
				out = append(out, 0x7f)
			default:
				out = append(out, x&31)
			}
			i += 2
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

// wrapStdin intercepts the escape sequence on stdin, canceling the
// returned context on a full match instead of forwarding it.
func wrapStdin(ctx context.Context, escape []byte) (context.Context, io.Reader, func()) {
	if len(escape) == 0 {
		return ctx, os.Stdin, func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	pr, pw, _ := os.Pipe()
	go func() {
		defer pw.Close()
		buf := make([]byte, 1)
		matched := 0
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				b := buf[0]
				if b == escape[matched] {
					matched++
					if matched == len(escape) {
						cancel()
						return
					}
				} else {
					if matched > 0 {
						_, _ = pw.Write(escape[:matched])
						matched = 0
					}
					_, _ = pw.Write([]byte{b})
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return ctx, pr, func() { _ = pr.Close() }
}

// SessionOptions configures an interactive remote session.
type SessionOptions struct {
	// Escape detaches the session without sending the sequence to the
	// remote. Notation per ParseEscape; "none" disables.
	Escape string
}

// SessionResult reports how an interactive session ended.
type SessionResult struct {
	// Detached is true when the session ended via the escape sequence.
	Detached bool
}

// RunSession streams an interactive TTY session over the executor.
// Stderr is merged into stdout by the remote TTY.
func RunSession(ctx context.Context, executor remotecommand.Executor, opts SessionOptions) (*SessionResult, error) {
	restore, queue := setupTTY(ctx)
	defer restore()

	ctx, stdin, cleanup := wrapStdin(ctx, ParseEscape(opts.Escape))
	defer cleanup()

	err := executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdin:             stdin,
		Stdout:            os.Stdout,
		Tty:               true,
		TerminalSizeQueue: queue,
	})
	if err != nil {
		if ctx.Err() == context.Canceled {
			return &SessionResult{Detached: true}, nil
		}
		return nil, err
	}
	return &SessionResult{}, nil
}
