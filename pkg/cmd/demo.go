package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func NewDemoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Sweep the bar from min to max",
		Long:  "Repeatedly update the bar on the configured display, stepping from min to max every demo interval",
		Args:  cobra.NoArgs,
		RunE:  app.NewCmdRun(runDemo),
	}
	return cmd
}

// sweep lists the values visited going from lo to hi in steps of step,
// always ending on hi.
func sweep(lo, hi, step int) []int {
	if hi < lo {
		step = -step
	}

	var values []int
	for v := lo; (step > 0 && v < hi) || (step < 0 && v > hi); v += step {
		values = append(values, v)
	}
	return append(values, hi)
}

func runDemo(ctx context.Context, appCtx AppContext, _ []string) (err error) {
	scr, err := openScreen(ctx, appCtx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, scr.close())
	}()

	bar := newBar(appCtx, scr)
	lo, hi := bar.Range()
	interval := appCtx.cfg.Demo.Interval
	appCtx.log.Info("demo started",
		zap.Int("min", lo),
		zap.Int("max", hi),
		zap.Int("step", appCtx.cfg.Demo.Step),
		zap.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i, v := range sweep(lo, hi, appCtx.cfg.Demo.Step) {
		if i > 0 {
			select {
			case <-ctx.Done():
				appCtx.log.Info("demo interrupted", zap.Int("value", bar.Value()))
				return nil
			case <-ticker.C:
			}
		}

		bar.Update(v)
		if err := scr.flush(); err != nil {
			return err
		}
	}

	appCtx.log.Info("demo finished")
	return nil
}
