package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/anivanovic/lcdbar/pkg/config"
	"github.com/anivanovic/lcdbar/pkg/display"
	"github.com/anivanovic/lcdbar/pkg/lcd"
	"github.com/anivanovic/lcdbar/pkg/progress"
)

// screen is a surface plus the hooks the commands need around it: flush after
// every update and close once drawing is done.
type screen struct {
	progress.Surface
	flush func() error
	close func() error
}

func openLCD(ctx context.Context, cfg config.Display, log *zap.Logger) (*lcd.Device, func() error, error) {
	var (
		dev *lcd.Device
		bus *lcd.Bus
	)
	err := retry.Do(
		func() error {
			var err error
			bus, err = lcd.OpenI2C(cfg.Bus, cfg.Address)
			if err != nil {
				return err
			}
			dev, err = lcd.New(bus, cfg.Cols, cfg.Rows, lcd.WithLogger(log))
			if err != nil {
				return multierr.Append(err, bus.Close())
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("lcd not ready", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open lcd on bus %q at %#x: %w", cfg.Bus, cfg.Address, err)
	}
	return dev, bus.Close, nil
}

func openScreen(ctx context.Context, appCtx AppContext) (*screen, error) {
	cfg := appCtx.cfg.Display
	kind := cfg.Kind
	if kind == config.DisplayAuto {
		kind = config.DisplayLive
		if display.IsTerminal(appCtx.out) {
			kind = config.DisplayTerminal
		}
	}
	appCtx.log.Debug("opening display", zap.String("kind", kind), zap.Int("cols", cfg.Cols), zap.Int("rows", cfg.Rows))

	switch kind {
	case config.DisplayGrid:
		g := display.NewGrid(cfg.Cols, cfg.Rows)
		return &screen{
			Surface: g,
			flush:   func() error { return nil },
			close: func() error {
				_, err := fmt.Fprintln(appCtx.out, strings.TrimRight(g.String(), "\n"))
				return err
			},
		}, nil

	case config.DisplayLive:
		l := display.NewLive(appCtx.out, cfg.Cols, cfg.Rows)
		return &screen{
			Surface: l,
			flush:   l.Flush,
			close:   func() error { return nil },
		}, nil

	case config.DisplayTerminal:
		t := display.NewTerminal(appCtx.out)
		t.ClearScreen()
		t.HideCursor()
		return &screen{
			Surface: t,
			flush:   t.Err,
			close: func() error {
				t.SetCursor(0, cfg.Rows)
				t.ShowCursor()
				t.Print("\n")
				return t.Err()
			},
		}, nil

	case config.DisplayLCD:
		dev, closeBus, err := openLCD(ctx, cfg, appCtx.log)
		if err != nil {
			return nil, err
		}
		return &screen{
			Surface: dev,
			flush:   dev.Err,
			close: func() error {
				return multierr.Combine(dev.Err(), closeBus())
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown display kind %q", config.ErrInvalid, kind)
}

func newBar(appCtx AppContext, surface progress.Surface) *progress.ProgressBar {
	cfg := appCtx.cfg.Bar
	opts := append(cfg.Options(), progress.WithLogger(appCtx.log))
	bar := progress.New(surface, cfg.Length, cfg.Row, cfg.Col, opts...)
	bar.SetMinValue(cfg.Min)
	bar.SetMaxValue(cfg.Max)
	return bar
}
