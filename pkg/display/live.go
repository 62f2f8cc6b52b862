package display

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"
)

// Live keeps a Grid and repaints it in place on a console on every Flush.
// It works on plain streams too, where each flush appends a new frame.
type Live struct {
	*Grid
	w *uilive.Writer
}

func NewLive(out io.Writer, cols, rows int) *Live {
	w := uilive.New()
	w.Out = out
	return &Live{Grid: NewGrid(cols, rows), w: w}
}

func (l *Live) Flush() error {
	if _, err := fmt.Fprintln(l.w, l.Grid.String()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return l.w.Flush()
}
