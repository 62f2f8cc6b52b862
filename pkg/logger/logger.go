package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const levelSilent = "silent"

type Config struct {
	Level  string
	Format string
	// Output defaults to os.Stderr so log lines never mix with the drawn bar.
	Output io.Writer
}

func getZapLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level [debug,info,warn,error,silent]: %q", level)
	}
}

func getZapEncoder(format string) (zapcore.Encoder, error) {
	format = strings.TrimSpace(strings.ToLower(format))
	switch format {
	case "text":
		return zapcore.NewConsoleEncoder(consoleEncoderConfig(zapcore.CapitalLevelEncoder)), nil
	case "color", "":
		return zapcore.NewConsoleEncoder(consoleEncoderConfig(zapcore.CapitalColorLevelEncoder)), nil
	case "json":
		return zapcore.NewJSONEncoder(jsonEncoderConfig), nil
	default:
		return nil, fmt.Errorf("unknown log format [text,color,json]: %q", format)
	}
}

func consoleEncoderConfig(level zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "M",
		LevelKey:       "L",
		TimeKey:        "T",
		NameKey:        "N",
		CallerKey:      "C",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    level,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

var jsonEncoderConfig = zapcore.EncoderConfig{
	MessageKey:     "message",
	LevelKey:       "level",
	TimeKey:        "time",
	NameKey:        "logger",
	CallerKey:      "caller",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
	EncodeName:     zapcore.FullNameEncoder,
}

// New returns a logger for cfg. The "silent" level disables logging.
func New(cfg Config) (*zap.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.Level), levelSilent) {
		return zap.NewNop(), nil
	}

	level, err := getZapLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	encoder, err := getZapEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	return zap.New(
		zapcore.NewCore(
			encoder,
			zapcore.Lock(zapcore.AddSync(out)),
			zap.NewAtomicLevelAt(level),
		),
		zap.WithCaller(level == zapcore.DebugLevel),
	).Named("lcdbar"), nil
}
