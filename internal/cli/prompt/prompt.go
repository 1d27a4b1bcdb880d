// Package prompt provides interactive terminal prompts for destructive
// operation confirmations and missing-parameter entry.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// IsAborted reports whether the error indicates the user aborted.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Confirmer asks the operator to approve an operation. Interactive
// flows use the promptui implementation; tests and --yes flows inject
// their own.
type Confirmer interface {
	// Confirm asks for approval. danger adds an explicit warning and
	// requires typed confirmation.
	Confirm(label string, danger bool) (bool, error)
}

// Terminal is the promptui-backed Confirmer.
type Terminal struct{}

func (Terminal) Confirm(label string, danger bool) (bool, error) {
	if danger {
		return ConfirmDanger(label, "yes")
	}
	return Confirm(label, false)
}

// Always approves without prompting; used by --yes.
type Always struct{}

func (Always) Confirm(string, bool) (bool, error) { return true, nil }

// Confirm prompts for a yes/no answer. A declined prompt returns
// (false, nil), not an error.
func Confirm(label string, defaultYes bool) (bool, error) {
	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [y/N]", label),
		IsConfirm: true,
	}
	if defaultYes {
		p.Label = fmt.Sprintf("%s [Y/n]", label)
		p.Default = "y"
	}
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		// promptui reports a plain "n" as ErrAbort.
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}
	result = strings.ToLower(result)
	return result == "y" || result == "yes", nil
}

// ConfirmDanger requires typing the confirmation word, for operations
// with no undo.
func ConfirmDanger(label, confirmWord string) (bool, error) {
	p := promptui.Prompt{
		Label: fmt.Sprintf("%s (type '%s' to confirm)", label, confirmWord),
	}
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return result == confirmWord, nil
}

// InputRequired prompts until a non-empty value is entered.
func InputRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("value is required")
			}
			return nil
		},
	}
	result, err := p.Run()
	return result, wrapError(err)
}
