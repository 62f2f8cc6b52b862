package progress_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/anivanovic/lcdbar/pkg/progress"
)

type call struct {
	op   string
	col  int
	row  int
	text string
}

type recorder struct {
	calls []call
}

func (r *recorder) SetCursor(col, row int) {
	r.calls = append(r.calls, call{op: "cursor", col: col, row: row})
}

func (r *recorder) Print(s string) {
	r.calls = append(r.calls, call{op: "print", text: s})
}

func (r *recorder) PrintInt(n int) {
	r.calls = append(r.calls, call{op: "int", text: strconv.Itoa(n)})
}

func (r *recorder) output() string {
	var b strings.Builder
	for _, c := range r.calls {
		if c.op != "cursor" {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

func (r *recorder) reset() {
	r.calls = nil
}

func TestProgressBar_Update(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		length int
		lo     int
		hi     int
		value  int
		want   string
	}{
		{name: "half", length: 10, lo: 0, hi: 100, value: 50, want: "[=====.....] 50%"},
		{name: "empty", length: 10, lo: 0, hi: 100, value: 0, want: "[..........] 0%"},
		{name: "full", length: 10, lo: 0, hi: 100, value: 100, want: "[==========] 100%"},
		{name: "truncated segments", length: 4, lo: 0, hi: 100, value: 37, want: "[=...] 37%"},
		{name: "zero length", length: 0, lo: 0, hi: 100, value: 40, want: "[] 40%"},
		{name: "negative length", length: -3, lo: 0, hi: 100, value: 100, want: "[] 100%"},
		{name: "below range", length: 10, lo: 0, hi: 100, value: -5, want: "[..........] -5%"},
		{name: "above range", length: 10, lo: 0, hi: 100, value: 140, want: "[==========] 140%"},
		{name: "shifted range", length: 8, lo: 100, hi: 200, value: 150, want: "[====....] 50%"},
		{name: "inverted range", length: 4, lo: 100, hi: 0, value: 25, want: "[===.] 75%"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &recorder{}
			bar := progress.New(r, tt.length, 0, 0)
			bar.SetMinValue(tt.lo)
			bar.SetMaxValue(tt.hi)
			bar.Update(tt.value)

			assert.Equal(t, tt.want, r.output())
			assert.Equal(t, tt.value, bar.Value())
		})
	}
}

func TestProgressBar_CallSequence(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	bar := progress.New(r, 3, 1, 4)
	bar.Update(34)

	want := []call{
		{op: "cursor", col: 4, row: 1},
		{op: "print", text: "["},
		{op: "print", text: "="},
		{op: "print", text: "."},
		{op: "print", text: "."},
		{op: "print", text: "] "},
		{op: "int", text: "34"},
		{op: "print", text: "%"},
	}
	assert.Equal(t, want, r.calls)
}

func TestProgressBar_NoDrawWithoutUpdate(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	bar := progress.New(r, 10, 0, 0)
	bar.SetMinValue(10)
	bar.SetMaxValue(20)

	assert.Empty(t, r.calls)
	assert.Equal(t, 0, bar.Value())
	lo, hi := bar.Range()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)
}

func TestProgressBar_Defaults(t *testing.T) {
	t.Parallel()
	bar := progress.New(&recorder{}, 16, 1, 2)
	lo, hi := bar.Range()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 100, hi)
	assert.Equal(t, 0, bar.Value())
	assert.Equal(t, 16, bar.Length())
}

func TestProgressBar_Idempotent(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	bar := progress.New(r, 12, 3, 2)

	bar.Update(61)
	first := append([]call(nil), r.calls...)
	r.reset()
	bar.Update(61)

	assert.Equal(t, first, r.calls)
}

func TestProgressBar_RangeReconfiguration(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	bar := progress.New(r, 10, 0, 0)

	bar.Update(50)
	assert.Equal(t, "[=====.....] 50%", r.output())

	r.reset()
	bar.SetMaxValue(200)
	bar.SetMinValue(0)
	assert.Empty(t, r.calls)

	bar.Update(50)
	assert.Equal(t, "[==........] 25%", r.output())
	assert.Equal(t, 2, bar.Segments())
	assert.Equal(t, 25, bar.Percent())
}

func TestProgressBar_InRangeProperties(t *testing.T) {
	t.Parallel()
	for _, length := range []int{1, 3, 7, 16, 20} {
		for _, rng := range [][2]int{{0, 100}, {-50, 50}, {3, 11}, {0, 1}} {
			lo, hi := rng[0], rng[1]
			for v := lo; v <= hi; v++ {
				r := &recorder{}
				bar := progress.New(r, length, 0, 0)
				bar.SetMinValue(lo)
				bar.SetMaxValue(hi)
				bar.Update(v)

				out := r.output()
				segments := bar.Segments()
				require.GreaterOrEqual(t, segments, 0)
				require.LessOrEqual(t, segments, length)
				assert.Equal(t, segments, strings.Count(out, "="), out)
				assert.Equal(t, length-segments, strings.Count(out, "."), out)

				pct := strconv.Itoa(bar.Percent())
				assert.Equal(t, 1+length+2+len(pct)+1, len(out), out)

				if v == lo {
					assert.Equal(t, 0, segments)
					assert.Equal(t, 0, bar.Percent())
				}
				if v == hi {
					assert.Equal(t, length, segments)
					assert.Equal(t, 100, bar.Percent())
				}
			}
		}
	}
}

func TestProgressBar_Clamp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		lo    int
		hi    int
		value int
		want  string
	}{
		{name: "below", lo: 0, hi: 100, value: -20, want: "[....] 0%"},
		{name: "above", lo: 0, hi: 100, value: 250, want: "[====] 100%"},
		{name: "inside", lo: 0, hi: 100, value: 50, want: "[==..] 50%"},
		{name: "inverted above", lo: 100, hi: 0, value: 150, want: "[....] 0%"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &recorder{}
			bar := progress.New(r, 4, 0, 0, progress.WithClamp(true))
			bar.SetMinValue(tt.lo)
			bar.SetMaxValue(tt.hi)
			bar.Update(tt.value)
			assert.Equal(t, tt.want, r.output())
		})
	}
}

func TestProgressBar_EmptyRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		policy progress.EmptyRange
		want   string
	}{
		{name: "zero", policy: progress.EmptyRangeZero, want: "[.....] 0%"},
		{name: "full", policy: progress.EmptyRangeFull, want: "[=====] 100%"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			core, logs := observer.New(zapcore.WarnLevel)
			r := &recorder{}
			bar := progress.New(r, 5, 0, 0,
				progress.WithEmptyRange(tt.policy),
				progress.WithLogger(zap.New(core)),
			)
			bar.SetMinValue(7)
			bar.SetMaxValue(7)

			assert.NotPanics(t, func() { bar.Update(7) })
			assert.Equal(t, tt.want, r.output())
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, "progress range is empty", logs.All()[0].Message)
		})
	}
}

func TestEmptyRange_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "zero", progress.EmptyRangeZero.String())
	assert.Equal(t, "full", progress.EmptyRangeFull.String())
	assert.Equal(t, "unknown", progress.EmptyRange(9).String())
}
