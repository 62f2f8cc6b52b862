package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/anivanovic/lcdbar/pkg/config"
	"github.com/anivanovic/lcdbar/pkg/logger"
)

type (
	App struct {
		v       *viper.Viper
		cfgPath string
		rootCmd *cobra.Command
	}

	AppContext struct {
		log *zap.Logger
		cfg *config.Config
		in  io.Reader
		out io.Writer
	}
)

func NewApp() *App {
	app := &App{v: viper.New()}
	rootCmd := &cobra.Command{
		Use:          "lcdbar",
		Short:        "Draw a progress bar on a character display",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfgPath, "config", "", "Config file location")
	flags.StringP("log-level", "l", "info", "App logging level [debug,info,warn,error,silent]")
	flags.String("log-format", "color", "Logging format [text,color,json]")
	flags.IntP("length", "n", 10, "Number of bar segments")
	flags.Int("row", 0, "Row of the opening bracket")
	flags.Int("col", 0, "Column of the opening bracket")
	flags.Int("min", 0, "Value drawn as an empty bar")
	flags.Int("max", 100, "Value drawn as a full bar")
	flags.Bool("clamp", false, "Clamp values to [min,max] before drawing")
	flags.StringP("display", "d", config.DisplayAuto, "Display [auto,terminal,live,grid,lcd]")

	for key, flag := range map[string]string{
		"log.level":    "log-level",
		"log.format":   "log-format",
		"bar.length":   "length",
		"bar.row":      "row",
		"bar.col":      "col",
		"bar.min":      "min",
		"bar.max":      "max",
		"bar.clamp":    "clamp",
		"display.kind": "display",
	} {
		_ = app.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewRenderCommand(app))
	rootCmd.AddCommand(NewDemoCommand(app))
	rootCmd.AddCommand(NewFeedCommand(app))
	rootCmd.AddCommand(NewVersionCommand())

	app.rootCmd = rootCmd
	return app
}

func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// NewCmdRun resolves configuration and logging once flags are parsed and runs
// fn until it returns or the process is interrupted.
func (a *App) NewCmdRun(
	fn func(ctx context.Context, appCtx AppContext, args []string) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		cfg, err := config.Load(a.v, a.cfgPath)
		if err != nil {
			return fmt.Errorf("could not resolve configuration: %w", err)
		}

		l, err := logger.New(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		appCtx := AppContext{
			log: l.With(zap.String("command", cmd.Name())),
			cfg: cfg,
			in:  cmd.InOrStdin(),
			out: cmd.OutOrStdout(),
		}
		return fn(ctx, appCtx, args)
	}
}
