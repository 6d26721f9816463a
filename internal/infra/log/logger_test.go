package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	l, err := New("warn", false)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn must be enabled")
	}
}

func TestNew_BadLevelFallsBackToDebug(t *testing.T) {
	l := Must("loud", false)
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("bad level must fall back to debug")
	}
}

func TestNew_Production(t *testing.T) {
	l, err := New("info", true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug must be disabled at info level")
	}
}
