package spellbound

import (
	"go.uber.org/zap"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/resource"
)

// SessionInfo describes an open Checker.
type SessionInfo struct {
	Backend  string
	Language string
}

var sessions = resource.NewTable()

func init() {
	sessions.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		engine.Logger().Debug("checker "+e.Type.String(),
			zap.String("backend", e.Kind),
			zap.Uint32("handle", uint32(e.Handle)),
			zap.Int("open", sessions.Len()))
	}))
}

// OpenSessions lists the Checkers that have not been closed.
func OpenSessions() []SessionInfo {
	var out []SessionInfo
	sessions.Each(func(_ resource.Handle, _ string, v any) bool {
		if info, ok := v.(SessionInfo); ok {
			out = append(out, info)
		}
		return true
	})
	return out
}
