//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var (
	savedMu    sync.Mutex
	savedFd    = -1
	savedState *term.State
)

// snapshotState records the cooked-mode termios before raw mode is entered
func snapshotState(fd int) {
	st, err := term.GetState(fd)
	if err != nil {
		return
	}
	savedMu.Lock()
	savedFd, savedState = fd, st
	savedMu.Unlock()
}

// resetTerminalMode restores the snapshot, or forces canonical mode via /dev/tty
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	savedMu.Lock()
	fd, st := savedFd, savedState
	savedMu.Unlock()
	if st != nil {
		if term.Restore(fd, st) == nil {
			return
		}
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	ttyFd := int(tty.Fd())
	termios, err := unix.IoctlGetTermios(ttyFd, ioctlGetTermios)
	if err != nil {
		return
	}
	termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Iflag |= unix.ICRNL
	_ = unix.IoctlSetTermios(ttyFd, ioctlSetTermios, termios)
}
