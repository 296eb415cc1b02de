package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_Levels(t *testing.T) {
	t.Cleanup(func() { Configure("info", "text") })

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Configure(tt.level, "text")
			assert.Equal(t, tt.want, GetLogger().GetLevel())
		})
	}
}

func TestConfigure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Configure("info", "text")
	})

	Configure("info", "json")
	WithField("tool", "list_applications").Info("tool invoked")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "list_applications", entry["tool"])
	assert.Equal(t, "tool invoked", entry["msg"])
}
