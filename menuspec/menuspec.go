// Package menuspec builds menu trees from declarative YAML definitions, so
// simple launcher menus need no Go code at all.
package menuspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/rofi-menu-control/contrib"
	"github.com/atomicstack/rofi-menu-control/menu"
)

// MenuDef is the YAML shape of one menu level.
type MenuDef struct {
	Prompt     string    `yaml:"prompt"`
	AllowInput bool      `yaml:"allow_input"`
	Items      []ItemDef `yaml:"items"`
}

// ItemDef is the YAML shape of one entry. Kind selects the behaviour:
// "command" (default when a command is present), "submenu", "back", "exit"
// and "delimiter".
type ItemDef struct {
	Kind       string   `yaml:"kind"`
	Text       string   `yaml:"text"`
	Command    string   `yaml:"command"`
	ShowOutput bool     `yaml:"show_output"`
	Icon       string   `yaml:"icon"`
	Urgent     bool     `yaml:"urgent"`
	Active     bool     `yaml:"active"`
	Menu       *MenuDef `yaml:"menu"`
}

// Load reads a YAML menu definition from a file.
func Load(path string) (*menu.Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a menu tree from YAML bytes.
func Parse(data []byte) (*menu.Menu, error) {
	var def MenuDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing menu definition: %w", err)
	}
	return buildMenu(def)
}

func buildMenu(def MenuDef) (*menu.Menu, error) {
	m := &menu.Menu{
		Prompt:         def.Prompt,
		AllowUserInput: def.AllowInput,
	}
	for i, item := range def.Items {
		built, err := buildItem(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		m.Items = append(m.Items, built)
	}
	return m, nil
}

func buildItem(def ItemDef) (*menu.Item, error) {
	kind := def.Kind
	if kind == "" {
		switch {
		case def.Menu != nil:
			kind = "submenu"
		case def.Command != "":
			kind = "command"
		default:
			return nil, fmt.Errorf("entry %q needs a kind, command or menu", def.Text)
		}
	}

	switch kind {
	case "command":
		if def.Command == "" {
			return nil, fmt.Errorf("command entry %q has no command", def.Text)
		}
		item := contrib.CommandItem(def.Text, def.Command, contrib.CommandOptions{
			ShowOutput: def.ShowOutput,
			Icon:       def.Icon,
		})
		item.Urgent = def.Urgent
		item.Active = def.Active
		return item, nil
	case "submenu":
		if def.Menu == nil {
			return nil, fmt.Errorf("submenu entry %q has no menu", def.Text)
		}
		sub, err := buildMenu(*def.Menu)
		if err != nil {
			return nil, err
		}
		return menu.NestedMenu(def.Text, sub), nil
	case "back":
		return menu.BackItem(def.Text), nil
	case "exit":
		return menu.ExitItem(def.Text), nil
	case "delimiter":
		return menu.Delimiter(), nil
	}
	return nil, fmt.Errorf("unknown entry kind %q", kind)
}
