package core

import (
	"os"
	"sync/atomic"

	"github.com/lixenwraith/termsight/terminal"
)

var crashGuard atomic.Pointer[Guard]

// SetCrashGuard installs the guard used by HandleCrash
func SetCrashGuard(g *Guard) {
	crashGuard.Store(g)
}

// HandleCrash is the unified panic handler for code that has no guard in scope
// Without an installed guard it falls back to a raw escape sequence reset
func HandleCrash(r any) {
	if r == nil {
		return
	}
	g := crashGuard.Load()
	if g == nil {
		g = NewGuard(func() { terminal.EmergencyReset(os.Stdout) })
	}
	g.Crash(r)
}
