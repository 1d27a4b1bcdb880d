//go:build !windows

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/client-go/tools/remotecommand"
)

// watchSize publishes the current terminal size, then again on every
// SIGWINCH until the context ends.
func watchSize(ctx context.Context, sendSize func(chan remotecommand.TerminalSize)) chan remotecommand.TerminalSize {
	ch := make(chan remotecommand.TerminalSize, 1)
	sendSize(ch)
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGWINCH)

	go func() {
		defer close(ch)
		defer signal.Stop(sigch)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigch:
				sendSize(ch)
			}
		}
	}()

	return ch
}
