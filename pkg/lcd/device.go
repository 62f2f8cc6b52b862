package lcd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PCF8574 backpack wiring.
const (
	pinRS        byte = 0x01
	pinEnable    byte = 0x04
	pinBacklight byte = 0x08
)

// HD44780 instructions.
const (
	cmdClear       byte = 0x01
	cmdHome        byte = 0x02
	cmdEntryMode   byte = 0x04
	cmdDisplayCtrl byte = 0x08
	cmdFunctionSet byte = 0x20
	cmdSetDDRAM    byte = 0x80

	entryIncrement byte = 0x02
	displayOn      byte = 0x04
	twoLines       byte = 0x08
)

var rowOffsets = [...]int{0x00, 0x40, 0x14, 0x54}

// maxCols is the DDRAM line length of the controller.
const maxCols = 40

var ErrGeometry = errors.New("unsupported display geometry")

type (
	// Device is an HD44780 character LCD driven in 4-bit mode through a
	// PCF8574 I2C expander. Every byte written to w is one expander state.
	Device struct {
		w         io.Writer
		cols      int
		rows      int
		backlight bool
		sleep     func(time.Duration)
		log       *zap.Logger
		err       error

		// col may lie outside the display; addressed is false until the
		// controller's DDRAM address matches (col, row) again.
		col       int
		row       int
		addressed bool
	}

	Option func(*Device)
)

func WithSleep(fn func(time.Duration)) Option {
	return func(d *Device) {
		d.sleep = fn
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

func WithBacklight(on bool) Option {
	return func(d *Device) {
		d.backlight = on
	}
}

// New initialises the controller and leaves it cleared with the cursor home.
func New(w io.Writer, cols, rows int, opts ...Option) (*Device, error) {
	if cols <= 0 || cols > maxCols || rows <= 0 || rows > len(rowOffsets) {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, cols, rows)
	}

	d := &Device{
		w:         w,
		cols:      cols,
		rows:      rows,
		backlight: true,
		sleep:     time.Sleep,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}

	if err := d.init(); err != nil {
		return nil, fmt.Errorf("init lcd: %w", err)
	}
	d.log.Debug("lcd initialised", zap.Int("cols", cols), zap.Int("rows", rows))
	return d, nil
}

func (d *Device) init() error {
	d.sleep(50 * time.Millisecond)
	d.expander(d.backlightBit())

	// Force 8-bit mode three times, then switch to 4-bit.
	d.nibble(0x30, 0)
	d.sleep(4500 * time.Microsecond)
	d.nibble(0x30, 0)
	d.sleep(4500 * time.Microsecond)
	d.nibble(0x30, 0)
	d.sleep(150 * time.Microsecond)
	d.nibble(0x20, 0)

	d.command(cmdFunctionSet | twoLines)
	d.command(cmdDisplayCtrl | displayOn)
	d.Clear()
	d.command(cmdEntryMode | entryIncrement)
	d.Home()

	return d.err
}

func (d *Device) Size() (int, int) {
	return d.cols, d.rows
}

// SetCursor moves the DDRAM address. Rows outside the display are clamped to
// the nearest row. Columns are not clamped: characters printed outside
// [0, cols) are dropped, so a line never spills into another row's memory.
func (d *Device) SetCursor(col, row int) {
	if row < 0 {
		row = 0
	}
	if row >= d.rows {
		row = d.rows - 1
	}
	d.col, d.row = col, row
	d.addressed = false
	d.address()
}

func (d *Device) Print(s string) {
	for i := 0; i < len(s); i++ {
		if d.col >= 0 && d.col < d.cols {
			d.address()
			d.send(s[i], pinRS)
		} else {
			d.addressed = false
		}
		d.col++
	}
}

func (d *Device) address() {
	if d.addressed || d.col < 0 || d.col >= d.cols {
		return
	}
	d.command(cmdSetDDRAM | byte(d.col+rowOffsets[d.row]))
	d.addressed = true
}

func (d *Device) PrintInt(n int) {
	d.Print(strconv.Itoa(n))
}

func (d *Device) Clear() {
	d.command(cmdClear)
	d.sleep(2 * time.Millisecond)
	d.col, d.row, d.addressed = 0, 0, true
}

func (d *Device) Home() {
	d.command(cmdHome)
	d.sleep(2 * time.Millisecond)
	d.col, d.row, d.addressed = 0, 0, true
}

func (d *Device) SetBacklight(on bool) {
	d.backlight = on
	d.expander(d.backlightBit())
}

// Err returns the accumulated bus errors.
func (d *Device) Err() error {
	return d.err
}

func (d *Device) command(b byte) {
	d.send(b, 0)
}

func (d *Device) send(b byte, mode byte) {
	d.nibble(b&0xF0, mode)
	d.nibble((b<<4)&0xF0, mode)
}

func (d *Device) nibble(high byte, mode byte) {
	b := high | mode | d.backlightBit()
	d.expander(b|pinEnable, b)
}

func (d *Device) expander(b ...byte) {
	if _, err := d.w.Write(b); err != nil {
		d.err = multierr.Append(d.err, err)
	}
}

func (d *Device) backlightBit() byte {
	if d.backlight {
		return pinBacklight
	}
	return 0
}
