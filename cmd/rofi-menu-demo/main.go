// rofi-menu-demo is a script-mode menu for rofi:
//
//	rofi -show menu -modi "menu:rofi-menu-demo"
//
// Rofi re-invokes the binary on every selection; configuration therefore
// comes from ROFI_MENU_* environment variables, not flags.
package main

import (
	"os"

	"github.com/atomicstack/rofi-menu-control/contrib"
	"github.com/atomicstack/rofi-menu-control/internal/config"
	"github.com/atomicstack/rofi-menu-control/internal/logging"
	"github.com/atomicstack/rofi-menu-control/internal/logging/events"
	"github.com/atomicstack/rofi-menu-control/menu"
	"github.com/atomicstack/rofi-menu-control/session"
)

func main() {
	cfg := config.LoadEnv(os.Environ())
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(map[string]any{"argv": os.Args[1:], "flags": cfg.Flags})

	opts := menu.Options{
		RofiVersion:     cfg.RofiVersion,
		LifetimeSession: cfg.Session.Lifetime,
	}
	if cfg.Session.Stateful {
		store, err := session.NewFile(cfg.Session.CacheDir)
		if err != nil {
			logging.Error(err)
			os.Exit(1)
		}
		opts.Session = store
	}

	menu.Run(rootMenu(), opts)
}

func rootMenu() *menu.Menu {
	projects := &menu.Menu{
		Prompt: "projects",
		Items: []*menu.Item{
			menu.BackItem(""),
			contrib.CommandItem("Project 1", "code ~/src/project1", contrib.CommandOptions{}),
			contrib.CommandItem("Project 2", "code ~/src/project2", contrib.CommandOptions{}),
		},
	}

	yes := contrib.CommandItem("Yes", "i3-msg exit", contrib.CommandOptions{})
	yes.Urgent = true
	no := menu.ExitItem("No")
	no.Active = true
	logout := &menu.Menu{Prompt: "logout", Items: []*menu.Item{yes, no}}

	return &menu.Menu{
		Prompt:         "menu",
		AllowUserInput: true,
		Items: []*menu.Item{
			menu.NestedMenu("Projects >", projects),
			menu.NestedMenu("Applications >", contrib.Applications(contrib.ApplicationsOptions{
				TerminalExec: "x-terminal-emulator -e %s",
			})),
			contrib.CommandItem("Downloads (show size)", "du -csh ~/Downloads", contrib.CommandOptions{
				ShowOutput: true,
			}),
			menu.Delimiter(),
			contrib.CommandItem("Lock screen", "loginctl lock-session", contrib.CommandOptions{}),
			contrib.CommandItem("Sleep", "systemctl suspend", contrib.CommandOptions{}),
			menu.NestedMenu("Logout", logout),
		},
	}
}
