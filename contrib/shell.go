// Package contrib carries ready-made items and menus built on the core
// tree: shell command launchers and a freedesktop applications menu.
package contrib

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/rofi-menu-control/menu"
)

// CommandOptions tunes how a command item runs its shell command.
type CommandOptions struct {
	// ShowOutput captures stdout and renders it as the next screen instead
	// of closing the menu.
	ShowOutput     bool
	Icon           string
	SearchableText string
}

// CommandItem returns an item that runs a shell command when selected. By
// default the command is detached into its own session and the menu closes;
// with ShowOutput the command runs to completion and its output becomes the
// displayed rows.
func CommandItem(text, command string, opts CommandOptions) *menu.Item {
	return &menu.Item{
		Text:           text,
		Icon:           opts.Icon,
		SearchableText: opts.SearchableText,
		OnSelect: func(ctx context.Context, _ *menu.Item, _ *menu.MetaStore) (menu.Operation, error) {
			return runCommand(ctx, command, opts)
		},
	}
}

func runCommand(ctx context.Context, command string, opts CommandOptions) (menu.Operation, error) {
	if opts.ShowOutput {
		out, err := exec.CommandContext(ctx, "sh", "-c", command).Output()
		if err != nil {
			return menu.Operation{}, fmt.Errorf("running %q: %w", command, err)
		}
		// Terminal escape sequences would end up inside rofi rows verbatim.
		return menu.Output(ansi.Strip(string(out))), nil
	}

	cmd := exec.Command("sh", "-c", command)
	// The script process exits right after this pass; the command must
	// survive it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return menu.Operation{}, fmt.Errorf("starting %q: %w", command, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return menu.Operation{}, err
	}
	return menu.Exit(), nil
}
