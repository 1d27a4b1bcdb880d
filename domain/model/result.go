package model

import "strings"

// CommandResult is the captured outcome of a single remote command.
// It is owned by the calling action for the duration of one operation
// and discarded after rendering.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the remote command exited zero.
func (r *CommandResult) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Tail returns up to n trailing non-empty output lines, preferring
// stderr, for inline failure reporting.
func (r *CommandResult) Tail(n int) string {
	if r == nil || n <= 0 {
		return ""
	}
	src := r.Stderr
	if strings.TrimSpace(src) == "" {
		src = r.Stdout
	}
	var lines []string
	for _, l := range strings.Split(src, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimRight(l, "\r"))
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
