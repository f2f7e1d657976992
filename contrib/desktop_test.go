package contrib

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/rofi-menu-control/menu"
	"github.com/atomicstack/rofi-menu-control/mode"
)

const firefoxEntry = `[Desktop Entry]
Type=Application
Name=Firefox
GenericName=Web Browser
Comment=Browse the Web
Icon=firefox
Exec=/usr/lib/firefox/firefox %u
Keywords=Internet;WWW;
Terminal=false
`

const hiddenEntry = `[Desktop Entry]
Type=Application
Name=Migration Assistant
Exec=migrate
NoDisplay=true
`

const terminalEntry = `[Desktop Entry]
Type=Application
Name=Htop
Exec=htop
Terminal=true
`

func writeEntries(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries := map[string]string{
		"firefox.desktop": firefoxEntry,
		"hidden.desktop":  hiddenEntry,
		"htop.desktop":    terminalEntry,
	}
	for name, content := range entries {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestParseDesktopFile(t *testing.T) {
	dir := writeEntries(t)
	app, err := ParseDesktopFile(filepath.Join(dir, "firefox.desktop"))
	if err != nil {
		t.Fatalf("ParseDesktopFile: %v", err)
	}
	if app.Name != "Firefox" || app.GenericName != "Web Browser" {
		t.Fatalf("app = %+v", app)
	}
	if app.Icon != "firefox" || app.Terminal || app.Hidden {
		t.Fatalf("app = %+v", app)
	}
	if len(app.Keywords) != 2 || app.Keywords[0] != "Internet" {
		t.Fatalf("keywords = %v", app.Keywords)
	}
}

func TestAppCommandStripsFieldCodes(t *testing.T) {
	app := App{Exec: "/usr/lib/firefox/firefox %u", Terminal: false}
	if got := app.Command(""); got != "/usr/lib/firefox/firefox" {
		t.Fatalf("command = %q", got)
	}
}

func TestAppCommandWrapsTerminalApps(t *testing.T) {
	app := App{Exec: "htop", Terminal: true}
	if got := app.Command("xterm -e %s"); got != "xterm -e htop" {
		t.Fatalf("command = %q", got)
	}
	// Without a terminal wrapper the command runs as-is.
	if got := app.Command(""); got != "htop" {
		t.Fatalf("command = %q", got)
	}
}

func TestScanApplicationsSkipsHiddenAndSorts(t *testing.T) {
	apps := scanApplications([]string{writeEntries(t)})
	if len(apps) != 2 {
		t.Fatalf("expected 2 launchable apps, got %d", len(apps))
	}
	if apps[0].Name != "Firefox" || apps[1].Name != "Htop" {
		t.Fatalf("order = %v, %v", apps[0].Name, apps[1].Name)
	}
}

func TestFilterApplicationsFuzzyMatches(t *testing.T) {
	apps := []App{{Name: "Firefox"}, {Name: "Files"}, {Name: "Htop"}}
	matched := filterApplications(apps, "ffx")
	if len(matched) != 1 || matched[0].Name != "Firefox" {
		t.Fatalf("matched = %+v", matched)
	}
	if got := filterApplications(apps, ""); len(got) != 3 {
		t.Fatalf("empty query should keep all apps")
	}
}

func TestApplicationsMenuGeneratesAlignedItems(t *testing.T) {
	dir := writeEntries(t)
	m := Applications(ApplicationsOptions{Prompt: "apps", Directories: []string{dir}})

	meta := newTestMeta(t)
	bound, err := m.Build(context.Background(), menu.RootID, meta)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	items := bound.BoundItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Text != "Firefox  Web Browser" {
		t.Fatalf("label = %q", items[0].Text)
	}
	if items[0].Icon != "firefox" {
		t.Fatalf("icon = %q", items[0].Icon)
	}
	if items[0].SearchableText != "Browse the Web Internet WWW" {
		t.Fatalf("searchable = %q", items[0].SearchableText)
	}
}

func newTestMeta(t *testing.T) *menu.MetaStore {
	t.Helper()
	codec, err := mode.ForVersion("1.6")
	if err != nil {
		t.Fatalf("ForVersion: %v", err)
	}
	meta, err := menu.NewMetaStore(codec, mode.Env{}, "")
	if err != nil {
		t.Fatalf("NewMetaStore: %v", err)
	}
	return meta
}
