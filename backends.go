package spellbound

import (
	"github.com/wippyai/spellbound/engine"

	_ "github.com/wippyai/spellbound/engine/appkit"
	_ "github.com/wippyai/spellbound/engine/hunspell"
	_ "github.com/wippyai/spellbound/engine/winspell"
	_ "github.com/wippyai/spellbound/engine/wordlist"
)

// Backends returns the names of the backends compiled in for this platform.
func Backends() []string {
	return engine.Names()
}

// DefaultBackend returns the backend New uses when none is selected.
func DefaultBackend() string {
	return defaultBackend
}
