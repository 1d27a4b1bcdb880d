//go:build windows

package terminal

import (
	"context"
	"time"

	"k8s.io/client-go/tools/remotecommand"
)

// watchSize publishes the current terminal size, polling because
// Windows has no SIGWINCH.
func watchSize(ctx context.Context, sendSize func(chan remotecommand.TerminalSize)) chan remotecommand.TerminalSize {
	ch := make(chan remotecommand.TerminalSize, 1)
	sendSize(ch)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sendSize(ch)
			}
		}
	}()

	return ch
}
