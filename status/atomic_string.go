package status

import (
	"sync/atomic"
)

// MaxStringLen bounds atomic strings so status lines stay on one row
const MaxStringLen = 32

// AtomicString provides atomic string access with fixed max length
// Zero value is ready to use (represents empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating to MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := 0
		for i := range val {
			if i > MaxStringLen {
				break
			}
			cut = i
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
