// Package terminal is the terminal I/O boundary of termsight.
//
// It wraps a tcell screen with the lifecycle the renderer depends on:
//   - Raw mode and alternate screen entry through tcell
//   - Mouse capture and kitty keyboard enhancement flags
//   - Cell-level diffing before painting
//   - Teardown in reverse order, idempotent and callable from panic hooks
//   - Emergency reset of termios when teardown cannot run normally
package terminal
