package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// QueryFdSize returns the dimensions of the terminal attached to fd
func QueryFdSize(fd int) (cols, rows int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: reported %dx%d", ErrQuery, cols, rows)
	}
	return cols, rows, nil
}

// IsTerminal reports whether both stdin and stdout are terminals
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
