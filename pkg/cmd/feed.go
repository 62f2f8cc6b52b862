package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/anivanovic/lcdbar/pkg/progress"
)

func NewFeedCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Draw values read from stdin",
		Long: `Read one value per line from stdin and redraw the bar for each of them.
Lines of the form "min <n>" and "max <n>" change the range without redrawing.`,
		Args: cobra.NoArgs,
		RunE: app.NewCmdRun(runFeed),
	}
	return cmd
}

func runFeed(ctx context.Context, appCtx AppContext, _ []string) (err error) {
	scr, err := openScreen(ctx, appCtx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, scr.close())
	}()

	bar := newBar(appCtx, scr)
	lines, errc := scanLines(ctx, appCtx.in)
	line := 0
	for {
		select {
		case <-ctx.Done():
			appCtx.log.Info("feed interrupted", zap.Int("value", bar.Value()))
			return nil
		case text, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			line++

			redraw, err := applyLine(bar, text)
			if err != nil {
				appCtx.log.Warn("skipping line", zap.Int("line", line), zap.Error(err))
				continue
			}
			if !redraw {
				continue
			}
			if err := scr.flush(); err != nil {
				return err
			}
		}
	}
}

// scanLines reads r line by line in its own goroutine so that callers can stop
// waiting on ctx. The error channel receives exactly one value before lines is
// closed. A reader blocked in Read stays blocked until it returns.
func scanLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		var err error
		defer func() {
			errc <- err
			close(lines)
		}()

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err = scanner.Err()
	}()
	return lines, errc
}

// applyLine updates bar from one input line and reports whether it redrew.
func applyLine(bar *progress.ProgressBar, text string) (bool, error) {
	fields := strings.Fields(text)
	switch {
	case len(fields) == 0:
		return false, nil
	case len(fields) == 1:
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return false, fmt.Errorf("parse value %q: %w", fields[0], err)
		}
		bar.Update(v)
		return true, nil
	case len(fields) == 2 && (fields[0] == "min" || fields[0] == "max"):
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("parse %s %q: %w", fields[0], fields[1], err)
		}
		if fields[0] == "min" {
			bar.SetMinValue(v)
		} else {
			bar.SetMaxValue(v)
		}
		return false, nil
	default:
		return false, fmt.Errorf("unrecognised input %q", text)
	}
}
