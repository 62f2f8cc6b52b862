package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anivanovic/lcdbar/pkg/display"
)

func NewRenderCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <value>",
		Short: "Print a single bar",
		Long:  "Draw the bar for value on an in-memory display of the configured size and print the display contents",
		Args:  cobra.ExactArgs(1),
		RunE:  app.NewCmdRun(runRender),
	}
	return cmd
}

func runRender(_ context.Context, appCtx AppContext, args []string) error {
	value, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("parse value %q: %w", args[0], err)
	}

	cfg := appCtx.cfg.Display
	grid := display.NewGrid(cfg.Cols, cfg.Rows)
	newBar(appCtx, grid).Update(value)

	_, err = fmt.Fprintln(appCtx.out, strings.TrimRight(grid.String(), "\n"))
	return err
}
