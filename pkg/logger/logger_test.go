package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anivanovic/lcdbar/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "defaults", level: "", format: ""},
		{name: "debug text", level: "debug", format: "text"},
		{name: "upper case", level: " WARN ", format: "JSON"},
		{name: "silent ignores format", level: "silent", format: "bogus"},
		{name: "unknown level", level: "trace", format: "text", wantErr: true},
		{name: "unknown format", level: "info", format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := logger.New(logger.Config{Level: tt.level, Format: tt.format, Output: &bytes.Buffer{}})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	l, err := logger.New(logger.Config{Level: "info", Format: "json", Output: &out})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("redrawn")
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "redrawn", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "lcdbar", entry["logger"])
}
