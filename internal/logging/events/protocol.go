package events

import "github.com/atomicstack/rofi-menu-control/internal/logging"

type ProtocolTracer struct{}

var Protocol = ProtocolTracer{}

func (ProtocolTracer) Decoded(version, action string, metaKeys int) {
	logging.Trace("protocol.decoded", map[string]any{
		"version": version,
		"action":  action,
		"keys":    metaKeys,
	})
}

func (ProtocolTracer) DecodeFailed(source string, err error) {
	logging.Trace("protocol.decode-failed", map[string]any{
		"source": source,
		"error":  err.Error(),
	})
}
