package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedAdapter(t *testing.T, level logrus.Level) (Logger, *bytes.Buffer) {
	t.Helper()
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{"debug text", "debug", "text", logrus.DebugLevel, false},
		{"info json", "info", "json", logrus.InfoLevel, true},
		{"upper case level", "WARN", "text", logrus.WarnLevel, false},
		{"invalid level defaults to info", "loud", "text", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAdapterWithOutput(tt.level, tt.format, &buf)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)
			assert.Equal(t, &buf, adapter.logger.Out)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LevelsAndFields(t *testing.T) {
	logger, buf := newBufferedAdapter(t, logrus.DebugLevel)

	logger.Debug("windows built", Field{Key: FieldGranularity, Value: "weekly"})
	logger.Info("summary computed", Field{Key: FieldUserID, Value: "alice"})
	logger.Warn("snapshot empty")
	logger.Error("source unavailable")

	out := buf.String()
	assert.Contains(t, out, "windows built")
	assert.Contains(t, out, "granularity=weekly")
	assert.Contains(t, out, "user_id=alice")
	assert.Contains(t, out, "snapshot empty")
	assert.Contains(t, out, "source unavailable")
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedAdapter(t, logrus.InfoLevel)

	logger.
		WithField(FieldUserID, "bob").
		WithFields(Field{Key: FieldSource, Value: "sqlite"}).
		WithError(errors.New("disk full")).
		Error("load failed")

	out := buf.String()
	assert.Contains(t, out, "load failed")
	assert.Contains(t, out, "user_id=bob")
	assert.Contains(t, out, "source=sqlite")
	assert.Contains(t, out, "disk full")
}

func TestLogrusAdapter_RespectsLevel(t *testing.T) {
	logger, buf := newBufferedAdapter(t, logrus.WarnLevel)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{
		{Key: "a", Value: "x"},
		{Key: "b", Value: 42},
	})
	assert.Len(t, fields, 2)
	assert.Equal(t, 42, fields["b"])
	assert.Len(t, convertFields(nil), 0)
}

func TestMockLogger_SharedSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldUserID, "carol")
	child.Info("summary computed", Field{Key: FieldCount, Value: 3})
	mock.Debug("raw")

	assert.True(t, mock.HasEntry("INFO", "summary computed"))
	assert.Len(t, mock.GetEntries(), 2)
	assert.Len(t, mock.GetEntriesByLevel("DEBUG"), 1)

	v, ok := mock.FieldValue("summary computed", FieldUserID)
	require.True(t, ok)
	assert.Equal(t, "carol", v)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
