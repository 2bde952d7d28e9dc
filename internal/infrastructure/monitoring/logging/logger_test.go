package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))

	e := errors.New("broken")
	assert.Equal(t, "error", Err(e).Key)
	assert.Equal(t, e, Err(e).Value)
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestToZapFields_TypedFastPaths(t *testing.T) {
	fields := toZapFields([]Field{
		String("s", "x"),
		Int("i", 1),
		Float64("f", 2.5),
		Bool("b", false),
		Duration("d", time.Minute),
		Err(errors.New("bad")),
		Any("a", map[string]int{"x": 1}),
	})
	require.Len(t, fields, 7)
	assert.Equal(t, zap.String("s", "x"), fields[0])
	assert.Equal(t, zap.Int("i", 1), fields[1])
}

func TestNewLogger_Defaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)
	// Child loggers must be independently usable.
	l.With(String("component", "test")).Named("sub").Info("hello")
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	l.Debug("visible at debug level")
}

func TestNopLogger_IsInert(t *testing.T) {
	l := NewNopLogger()
	l.Info("dropped", String("k", "v"))
	assert.Equal(t, l, l.With(String("k", "v")))
	assert.Equal(t, l, l.Named("child"))
}
