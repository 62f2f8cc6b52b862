package display

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/multierr"
)

const (
	escHideCursor  = "\033[?25l"
	escShowCursor  = "\033[?25h"
	escClearScreen = "\033[2J"
)

// Terminal addresses an ANSI terminal. Row and column are zero based.
type Terminal struct {
	out io.Writer
	err error
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) SetCursor(col, row int) {
	t.write(fmt.Sprintf("\033[%d;%dH", row+1, col+1))
}

func (t *Terminal) Print(s string) {
	t.write(s)
}

func (t *Terminal) PrintInt(n int) {
	t.write(strconv.Itoa(n))
}

func (t *Terminal) HideCursor() {
	t.write(escHideCursor)
}

func (t *Terminal) ShowCursor() {
	t.write(escShowCursor)
}

func (t *Terminal) ClearScreen() {
	t.write(escClearScreen)
}

// Err returns every write error seen so far.
func (t *Terminal) Err() error {
	return t.err
}

func (t *Terminal) write(s string) {
	if _, err := io.WriteString(t.out, s); err != nil {
		t.err = multierr.Append(t.err, err)
	}
}
