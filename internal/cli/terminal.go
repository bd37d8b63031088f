package cli

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/c14220110/poliklinik-admin/pkg/listctl"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

// Terminal shows notices as one-line toasts and asks confirmations with a
// huh dialog. Without a terminal on stdin every confirmation is declined
// unless AssumeYes is set.
type Terminal struct {
	Out         io.Writer
	AssumeYes   bool
	Interactive bool

	failures atomic.Int32
}

// Failed reports whether an error notice has been shown.
func (t *Terminal) Failed() bool {
	return t.failures.Load() > 0
}

func (t *Terminal) Confirm(ctx context.Context, title, text string) bool {
	if t.AssumeYes {
		return true
	}
	if !t.Interactive {
		fmt.Fprintln(t.Out, hintStyle.Render(title+" Not confirmed, pass --yes to proceed."))
		return false
	}

	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(text).
		WithButtonAlignment(lipgloss.Left).
		Affirmative("Yes").
		Negative("Cancel").
		Value(&ok)
	if err := huh.NewForm(huh.NewGroup(confirm)).RunWithContext(ctx); err != nil {
		return false
	}
	return ok
}

func (t *Terminal) Notify(_ context.Context, kind listctl.Kind, title, text string) {
	style := successStyle
	icon := "✔"
	if kind == listctl.KindError {
		style = errorStyle
		icon = "✘"
		t.failures.Add(1)
	}
	fmt.Fprintf(t.Out, "%s %s\n", style.Render(icon+" "+title), text)
}
