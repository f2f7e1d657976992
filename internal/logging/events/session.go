package events

import "github.com/atomicstack/rofi-menu-control/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Loaded(path string, keys int) {
	logging.Trace("session.loaded", map[string]any{"path": path, "keys": keys})
}

func (SessionTracer) Saved(path string, keys int) {
	logging.Trace("session.saved", map[string]any{"path": path, "keys": keys})
}

func (SessionTracer) Cleared(path string) {
	logging.Trace("session.cleared", map[string]any{"path": path})
}
