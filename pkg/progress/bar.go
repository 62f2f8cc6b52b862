package progress

import (
	"go.uber.org/zap"
)

const (
	openBracket  = "["
	closeBracket = "] "
	fillGlyph    = "="
	emptyGlyph   = "."
	percentSign  = "%"
)

type (
	// Surface is a character display addressed by (column, row).
	Surface interface {
		SetCursor(col, row int)
		Print(s string)
		PrintInt(n int)
	}

	// EmptyRange decides what a bar shows when its min and max values are equal.
	EmptyRange int

	Option func(*ProgressBar)

	// ProgressBar draws "[====....] 50%" at a fixed position of a Surface.
	// The surface is borrowed: it must outlive the bar and is never closed by it.
	ProgressBar struct {
		surface Surface
		length  int
		row     int
		col     int

		minValue int
		maxValue int
		curValue int

		clamp      bool
		emptyRange EmptyRange
		log        *zap.Logger
	}
)

const (
	// EmptyRangeZero draws an empty bar at 0%.
	EmptyRangeZero EmptyRange = iota
	// EmptyRangeFull draws a full bar at 100%.
	EmptyRangeFull
)

func (e EmptyRange) String() string {
	switch e {
	case EmptyRangeZero:
		return "zero"
	case EmptyRangeFull:
		return "full"
	default:
		return "unknown"
	}
}

// WithClamp limits the current value to [min, max] before it is mapped.
// Without it values outside the range produce percentages like -5% or 140%.
func WithClamp(clamp bool) Option {
	return func(p *ProgressBar) {
		p.clamp = clamp
	}
}

func WithEmptyRange(policy EmptyRange) Option {
	return func(p *ProgressBar) {
		p.emptyRange = policy
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *ProgressBar) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a bar of length slots whose opening bracket sits at (col, row).
// Nothing is drawn until Update is called.
func New(surface Surface, length, row, col int, opts ...Option) *ProgressBar {
	p := &ProgressBar{
		surface:  surface,
		length:   length,
		row:      row,
		col:      col,
		minValue: 0,
		maxValue: 100,
		curValue: 0,
		log:      zap.NewNop(),
	}

	for _, o := range opts {
		o(p)
	}

	return p
}

func (p *ProgressBar) SetMinValue(value int) {
	p.minValue = value
}

func (p *ProgressBar) SetMaxValue(value int) {
	p.maxValue = value
}

// Update stores value and redraws the whole bar.
func (p *ProgressBar) Update(value int) {
	p.curValue = value
	p.draw()
}

func (p *ProgressBar) Value() int {
	return p.curValue
}

func (p *ProgressBar) Range() (int, int) {
	return p.minValue, p.maxValue
}

func (p *ProgressBar) Length() int {
	return p.length
}

// Segments returns the number of filled slots for the current value.
// It may be negative or larger than Length when clamping is off.
func (p *ProgressBar) Segments() int {
	return p.scale(p.length)
}

// Percent returns the percentage printed for the current value.
func (p *ProgressBar) Percent() int {
	return p.scale(100)
}

func (p *ProgressBar) scale(outMax int) int {
	value := p.curValue
	if p.clamp {
		value = clamp(value, p.minValue, p.maxValue)
	}

	mapped, err := Map(value, p.minValue, p.maxValue, 0, outMax)
	if err == nil {
		return mapped
	}

	if p.emptyRange == EmptyRangeFull {
		return outMax
	}
	return 0
}

func (p *ProgressBar) draw() {
	if p.minValue == p.maxValue {
		p.log.Warn("progress range is empty",
			zap.Int("min", p.minValue),
			zap.Stringer("policy", p.emptyRange),
		)
	}

	p.surface.SetCursor(p.col, p.row)
	p.surface.Print(openBracket)

	completed := p.Segments()
	for i := 0; i < p.length; i++ {
		if i < completed {
			p.surface.Print(fillGlyph)
		} else {
			p.surface.Print(emptyGlyph)
		}
	}
	p.surface.Print(closeBracket)

	percentage := p.Percent()
	p.surface.PrintInt(percentage)
	p.surface.Print(percentSign)

	p.log.Debug("progress redrawn",
		zap.Int("value", p.curValue),
		zap.Int("segments", completed),
		zap.Int("percent", percentage),
	)
}
