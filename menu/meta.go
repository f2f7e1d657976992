package menu

import (
	"github.com/atomicstack/rofi-menu-control/internal/logging/events"
	"github.com/atomicstack/rofi-menu-control/mode"
	"github.com/atomicstack/rofi-menu-control/session"
)

// Metadata key recording which menu rendered last; typed text on the next
// invocation is routed to that menu.
const keyLastActiveMenu = "last_active_menu"

// MetaStore holds everything one invocation knows about the previous ones:
// the decoded metadata blob, the action that triggered the script and the
// raw text argument. It is constructed once per invocation, mutated only on
// the sequential select/store path and serialised back out through the
// codec's data/info payloads.
type MetaStore struct {
	mode     mode.Mode
	action   mode.Action
	rawInput string
	meta     map[string]any
	session  session.Store
}

// NewMetaStore decodes the environment through the given codec. rawInput is
// the script's positional argument (the selected row text or the typed
// query).
func NewMetaStore(m mode.Mode, env mode.Env, rawInput string) (*MetaStore, error) {
	action, meta, err := m.Decode(env)
	if err != nil {
		if derr, ok := err.(*mode.DecodeError); ok {
			events.Protocol.DecodeFailed(derr.Source, derr.Err)
		}
		return nil, err
	}
	events.Protocol.Decoded(m.Version(), action.Kind.String(), len(meta))
	return &MetaStore{
		mode:     m,
		action:   action,
		rawInput: rawInput,
		meta:     meta,
	}, nil
}

func (s *MetaStore) Mode() mode.Mode     { return s.mode }
func (s *MetaStore) Action() mode.Action { return s.action }

// AttachSession wires an optional cross-run store; menu code reads and
// writes it through the MetaStore only.
func (s *MetaStore) AttachSession(store session.Store) { s.session = store }

func (s *MetaStore) Session() session.Store { return s.session }

// SelectedID returns the id of the chosen row, or nil when the invocation
// carries no selection. The id only ever arrives through the selected-row
// metadata overlay, so it and UserInput are mutually exclusive.
func (s *MetaStore) SelectedID() ItemID {
	if s.action.Kind == mode.ActionInitialCall {
		return nil
	}
	return itemIDFrom(s.meta[mode.KeySelectedID])
}

// UserInput returns the free text the user typed, or an empty string when a
// row was selected instead.
func (s *MetaStore) UserInput() string {
	if s.SelectedID() != nil {
		return ""
	}
	return s.rawInput
}

// State returns the stored state slice for an item, or nil when absent.
func (s *MetaStore) State(id ItemID) any {
	return s.meta[id.String()]
}

// SetState stores an item's state under the dotted join of its id. Nil state
// is not stored; absence already means nil.
func (s *MetaStore) SetState(id ItemID, state any) {
	if state == nil {
		return
	}
	s.meta[id.String()] = state
}

// Snapshot returns a copy of the metadata mapping for serialisation into
// rendered rows.
func (s *MetaStore) Snapshot() map[string]any {
	snapshot := make(map[string]any, len(s.meta))
	for k, v := range s.meta {
		snapshot[k] = v
	}
	return snapshot
}

// LastActiveMenu reports which menu rendered on the previous invocation,
// falling back to the session store when the blob has no record.
func (s *MetaStore) LastActiveMenu() ItemID {
	if id := itemIDFrom(s.meta[keyLastActiveMenu]); id != nil {
		return id
	}
	if s.session != nil {
		if raw, ok := s.session.Get(keyLastActiveMenu); ok {
			return itemIDFrom(raw)
		}
	}
	return nil
}

// SetLastActiveMenu records the menu about to render. It runs before rows
// are encoded so the marker rides the data/info payloads, and mirrors into
// the session store when one is attached.
func (s *MetaStore) SetLastActiveMenu(id ItemID) {
	s.meta[keyLastActiveMenu] = []string(id)
	if s.session != nil {
		s.session.Set(keyLastActiveMenu, []string(id))
	}
}
