package contrib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/ini.v1"

	"github.com/atomicstack/rofi-menu-control/internal/format/table"
	"github.com/atomicstack/rofi-menu-control/menu"
)

// App is a parsed freedesktop .desktop entry.
// https://specifications.freedesktop.org/desktop-entry-spec/latest/
type App struct {
	Name        string
	GenericName string
	Comment     string
	Icon        string
	Exec        string
	Terminal    bool
	Hidden      bool
	Type        string
	Keywords    []string
}

// Exec field codes (%f, %u, ...) are placeholders for files and URLs; a menu
// launch supplies none.
var execFieldCodes = regexp.MustCompile(`%\w`)

// ParseDesktopFile reads one .desktop entry.
func ParseDesktopFile(path string) (App, error) {
	file, err := ini.Load(path)
	if err != nil {
		return App{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	section := file.Section("Desktop Entry")
	app := App{
		Name:        section.Key("Name").String(),
		GenericName: section.Key("GenericName").String(),
		Comment:     section.Key("Comment").String(),
		Icon:        section.Key("Icon").String(),
		Exec:        section.Key("Exec").String(),
		Terminal:    section.Key("Terminal").MustBool(false),
		Type:        section.Key("Type").MustString("Application"),
		Keywords:    splitList(section.Key("Keywords").String()),
	}
	app.Hidden = section.Key("Hidden").MustBool(false) ||
		section.Key("NoDisplay").MustBool(false)
	return app, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Command returns the shell command launching the app. terminalExec is a
// format string with a single %s receiving the command, used for entries
// that want a terminal.
func (a App) Command(terminalExec string) string {
	command := strings.TrimSpace(execFieldCodes.ReplaceAllString(a.Exec, ""))
	if a.Terminal && terminalExec != "" {
		command = fmt.Sprintf(terminalExec, command)
	}
	return command
}

func (a App) launchable() bool {
	return !a.Hidden && a.Type == "Application" && a.Name != "" && a.Exec != ""
}

// ApplicationsOptions configures the desktop applications menu.
type ApplicationsOptions struct {
	Prompt string
	// Directories to scan for .desktop files. Empty selects the standard
	// user and system application directories.
	Directories  []string
	TerminalExec string
}

func defaultDirectories() []string {
	dirs := []string{"/usr/share/applications", "/usr/local/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// Applications returns a menu of installed desktop applications. Item labels
// align name and generic name into columns; typed text narrows the list with
// a fuzzy match against application names.
func Applications(opts ApplicationsOptions) *menu.Menu {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "apps"
	}
	return &menu.Menu{
		Prompt:         prompt,
		AllowUserInput: true,
		GenerateItems: func(ctx context.Context, meta *menu.MetaStore) ([]*menu.Item, error) {
			dirs := opts.Directories
			if len(dirs) == 0 {
				dirs = defaultDirectories()
			}
			apps := scanApplications(dirs)
			apps = filterApplications(apps, meta.UserInput())
			return applicationItems(apps, opts.TerminalExec), nil
		},
	}
}

func scanApplications(dirs []string) []App {
	var apps []App
	for _, dir := range dirs {
		paths, err := filepath.Glob(filepath.Join(dir, "*.desktop"))
		if err != nil {
			continue
		}
		for _, path := range paths {
			app, err := ParseDesktopFile(path)
			if err != nil || !app.launchable() {
				continue
			}
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
	return apps
}

func filterApplications(apps []App, query string) []App {
	if query == "" {
		return apps
	}
	names := make([]string, len(apps))
	for i, app := range apps {
		names[i] = app.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	matched := make([]App, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, apps[rank.OriginalIndex])
	}
	return matched
}

func applicationItems(apps []App, terminalExec string) []*menu.Item {
	rows := make([][]string, len(apps))
	for i, app := range apps {
		rows[i] = []string{app.Name, app.GenericName}
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})

	items := make([]*menu.Item, len(apps))
	for i, app := range apps {
		searchable := strings.Join(append([]string{app.Comment}, app.Keywords...), " ")
		items[i] = CommandItem(labels[i], app.Command(terminalExec), CommandOptions{
			Icon:           app.Icon,
			SearchableText: strings.TrimSpace(searchable),
		})
	}
	return items
}
