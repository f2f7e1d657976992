package menu

import (
	"context"
	"strconv"
)

// Rendered in place of items that configure no text and no render hook.
const placeholderText = "[UNDEFINED]"

// RenderFunc produces an item's display text. The bound item's State is
// loaded before the hook runs.
type RenderFunc func(ctx context.Context, it *Item, meta *MetaStore) (string, error)

// SelectFunc reacts to an item being chosen. State mutated by the hook is
// persisted into the MetaStore before the operation is returned.
type SelectFunc func(ctx context.Context, it *Item, meta *MetaStore) (Operation, error)

// Item is a menu entry template. Templates are plain values; Build returns a
// bound copy with a resolved id and a back-reference to the owning menu, and
// never mutates the template. An item with a Submenu nests a whole menu
// under its own id.
type Item struct {
	// ID, when set on a template, is used verbatim instead of the positional
	// parent-path id.
	ID             ItemID
	Text           string
	Icon           string
	SearchableText string
	Nonselectable  bool
	Active         bool
	Urgent         bool
	Submenu        *Menu

	OnRender RenderFunc
	OnSelect SelectFunc

	// State is the item's slice of the metadata blob, loaded lazily on first
	// render or select.
	State any

	parent *Menu
	loaded bool
}

func (it *Item) clone() *Item {
	bound := *it
	return &bound
}

// Build binds the template under the given parent, resolving the id from the
// positional index unless the template carries an explicit one. Building a
// nested item also builds its submenu under the freshly resolved id.
func (it *Item) Build(ctx context.Context, parent *Menu, index int, meta *MetaStore) (*Item, error) {
	bound := it.clone()
	if len(bound.ID) == 0 {
		bound.ID = parent.ID.Child(strconv.Itoa(index))
	}
	bound.parent = parent
	if it.Submenu != nil {
		sub, err := it.Submenu.Build(ctx, bound.ID, meta)
		if err != nil {
			return nil, err
		}
		bound.Submenu = sub
	}
	return bound, nil
}

// Parent returns the menu that owns this bound item. The reference is
// non-owning; the parent owns the child list.
func (it *Item) Parent() *Menu { return it.parent }

func (it *Item) ensureLoaded(meta *MetaStore) {
	if it.loaded {
		return
	}
	it.State = meta.State(it.ID)
	it.loaded = true
}

// HandleRender loads state if needed and produces the display text.
func (it *Item) HandleRender(ctx context.Context, meta *MetaStore) (string, error) {
	it.ensureLoaded(meta)
	if it.OnRender != nil {
		return it.OnRender(ctx, it, meta)
	}
	if it.Text == "" {
		return placeholderText, nil
	}
	return it.Text, nil
}

// HandleSelect routes a selection to this item. For nested items it decides
// whether the selection targets the item itself or something in the subtree,
// then rewrites the subtree's outcome: a refresh shows the nested menu, a
// back-to-parent shows the enclosing menu.
func (it *Item) HandleSelect(ctx context.Context, meta *MetaStore) (Operation, error) {
	if it.Submenu == nil {
		return it.selectSelf(ctx, meta)
	}

	var op Operation
	var err error
	if it.ID.Equal(meta.SelectedID()) {
		op, err = it.selectSelf(ctx, meta)
	} else {
		op, err = it.Submenu.PropagateSelect(ctx, meta)
	}
	if err != nil {
		return Operation{}, err
	}
	return it.translate(ctx, op, meta)
}

func (it *Item) selectSelf(ctx context.Context, meta *MetaStore) (Operation, error) {
	it.ensureLoaded(meta)
	op := Refresh()
	if it.OnSelect != nil {
		var err error
		op, err = it.OnSelect(ctx, it, meta)
		if err != nil {
			return Operation{}, err
		}
	}
	meta.SetState(it.ID, it.State)
	return op, nil
}

func (it *Item) translate(ctx context.Context, op Operation, meta *MetaStore) (Operation, error) {
	switch op.Code {
	case OpRefreshMenu:
		text, err := it.Submenu.HandleRender(ctx, meta)
		if err != nil {
			return Operation{}, err
		}
		return Output(text), nil
	case OpBackToParentMenu:
		text, err := it.parent.HandleRender(ctx, meta)
		if err != nil {
			return Operation{}, err
		}
		return Output(text), nil
	}
	return op, nil
}

// propagateUserInput forwards typed text into the subtree with the same
// outcome translation as HandleSelect.
func (it *Item) propagateUserInput(ctx context.Context, meta *MetaStore) (Operation, error) {
	op, err := it.Submenu.PropagateUserInput(ctx, meta)
	if err != nil {
		return Operation{}, err
	}
	return it.translate(ctx, op, meta)
}

// Delimiter returns a nonselectable visual separator row.
func Delimiter() *Item {
	return &Item{
		Text:          "<span foreground='gray' strikethrough='true'>          </span>",
		Nonselectable: true,
	}
}

// BackItem returns an item that pops back to the parent menu. Empty text
// defaults to "..".
func BackItem(text string) *Item {
	if text == "" {
		text = ".."
	}
	return &Item{
		Text: text,
		OnSelect: func(context.Context, *Item, *MetaStore) (Operation, error) {
			return Back(), nil
		},
	}
}

// ExitItem returns an item that terminates the script.
func ExitItem(text string) *Item {
	return &Item{
		Text: text,
		OnSelect: func(context.Context, *Item, *MetaStore) (Operation, error) {
			return Exit(), nil
		},
	}
}

// NestedMenu returns an item that opens the given submenu when selected.
func NestedMenu(text string, sub *Menu) *Item {
	return &Item{Text: text, Submenu: sub}
}
