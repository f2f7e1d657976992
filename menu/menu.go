// Package menu models the per-invocation menu tree for rofi script mode.
// Templates are built into bound trees on every invocation; the only state
// surviving between invocations is the metadata blob the codec round-trips
// through rofi.
package menu

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/rofi-menu-control/internal/logging/events"
	"github.com/atomicstack/rofi-menu-control/mode"
)

// GenerateFunc produces item templates dynamically at build time. It may
// perform I/O; sibling templates are then bound concurrently.
type GenerateFunc func(ctx context.Context, meta *MetaStore) ([]*Item, error)

// InputFunc reacts to free text typed while this menu was active.
type InputFunc func(ctx context.Context, m *Menu, meta *MetaStore) (Operation, error)

// Menu is an ordered collection of items. Like Item it is a template value;
// Build returns a bound copy. Item order is significant: it fixes both
// positional ids and on-screen order.
type Menu struct {
	ID             ItemID
	Prompt         string
	Items          []*Item
	AllowUserInput bool

	GenerateItems GenerateFunc
	OnUserInput   InputFunc

	bound []*Item
}

const defaultPrompt = "menu"

func (m *Menu) clone() *Menu {
	built := *m
	return &built
}

// BoundItems exposes the bound child list of a built menu.
func (m *Menu) BoundItems() []*Item { return m.bound }

// Build resolves the item templates (static list or GenerateItems hook) and
// binds every one of them concurrently under the given id. Results keep the
// template order regardless of completion order.
func (m *Menu) Build(ctx context.Context, id ItemID, meta *MetaStore) (*Menu, error) {
	bound := m.clone()
	bound.ID = id

	templates := m.Items
	if m.GenerateItems != nil {
		generated, err := m.GenerateItems(ctx, meta)
		if err != nil {
			return nil, err
		}
		templates = generated
	}

	bound.bound = make([]*Item, len(templates))
	g, gctx := errgroup.WithContext(ctx)
	for i, tpl := range templates {
		i, tpl := i, tpl
		g.Go(func() error {
			item, err := tpl.Build(gctx, bound, i, meta)
			if err != nil {
				return err
			}
			bound.bound[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	events.Menu.Built(id.String(), len(bound.bound))
	return bound, nil
}

// HandleRender stamps this menu as the active one and renders it. Stamping
// happens before encoding so the marker rides the data and info payloads out
// to the next invocation.
func (m *Menu) HandleRender(ctx context.Context, meta *MetaStore) (string, error) {
	meta.SetLastActiveMenu(m.ID)
	return m.render(ctx, meta)
}

func (m *Menu) render(ctx context.Context, meta *MetaStore) (string, error) {
	texts := make([]string, len(m.bound))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range m.bound {
		i, item := i, item
		g.Go(func() error {
			text, err := item.HandleRender(gctx, meta)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	codec := meta.Mode()
	prompt := m.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	var lines []string
	appendLine := func(line string) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	appendLine(codec.Prompt(prompt))
	appendLine(codec.EnableMarkup())
	appendLine(codec.NoInput(!m.AllowUserInput))
	for i, item := range m.bound {
		if item.Active {
			appendLine(codec.Active(i))
		}
		if item.Urgent {
			appendLine(codec.Urgent(i))
		}
	}

	ambient := meta.Snapshot()
	data, err := codec.Data(ambient)
	if err != nil {
		return "", err
	}
	appendLine(data)

	for i, item := range m.bound {
		info := make(map[string]any, len(ambient)+2)
		for k, v := range ambient {
			info[k] = v
		}
		info[mode.KeySelectedText] = texts[i]
		info[mode.KeySelectedID] = []string(item.ID)

		row, err := codec.Row(texts[i], mode.RowOptions{
			Icon:           item.Icon,
			SearchableText: item.SearchableText,
			Nonselectable:  item.Nonselectable,
			Info:           info,
		})
		if err != nil {
			return "", err
		}
		lines = append(lines, row)
	}

	events.Menu.Rendered(m.ID.String(), len(m.bound))
	return strings.Join(lines, "\n"), nil
}

// PropagateSelect routes the stored selection id to the first item whose id
// is an ancestor-or-self of it. A refresh outcome is rewritten into this
// menu's own rendered text; other outcomes pass through. A selection id that
// matches nothing degrades to a plain re-render.
func (m *Menu) PropagateSelect(ctx context.Context, meta *MetaStore) (Operation, error) {
	selected := meta.SelectedID()
	for _, item := range m.bound {
		if !item.ID.IsPrefixOf(selected) {
			continue
		}
		events.Menu.Selected(m.ID.String(), item.ID.String())
		op, err := item.HandleSelect(ctx, meta)
		if err != nil {
			return Operation{}, err
		}
		if op.Code == OpRefreshMenu {
			return m.outputSelf(ctx, meta)
		}
		return op, nil
	}

	events.Menu.SelectionMiss(m.ID.String(), selected.String())
	return m.outputSelf(ctx, meta)
}

// PropagateUserInput walks the tree toward the menu recorded as active at
// the previous render and hands it the typed text. With no record, or when
// this menu is the target, the input is handled here (default: refresh).
func (m *Menu) PropagateUserInput(ctx context.Context, meta *MetaStore) (Operation, error) {
	target := meta.LastActiveMenu()

	op := Refresh()
	var err error
	switch {
	case target == nil || m.ID.Equal(target):
		events.Menu.UserInput(m.ID.String(), meta.UserInput())
		if m.OnUserInput != nil {
			op, err = m.OnUserInput(ctx, m, meta)
		}
	default:
		for _, item := range m.bound {
			if item.Submenu != nil && item.ID.IsPrefixOf(target) {
				op, err = item.propagateUserInput(ctx, meta)
				break
			}
		}
	}
	if err != nil {
		return Operation{}, err
	}

	if op.Code == OpRefreshMenu {
		return m.outputSelf(ctx, meta)
	}
	return op, nil
}

func (m *Menu) outputSelf(ctx context.Context, meta *MetaStore) (Operation, error) {
	text, err := m.HandleRender(ctx, meta)
	if err != nil {
		return Operation{}, err
	}
	return Output(text), nil
}
