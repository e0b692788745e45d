package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteThroughReplacedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(SetLogger(zap.New(core)))

	Info("info message", zap.String("city", "北京"))
	Warnf("warn %d", 1)
	Errorw("error message", "status", 401)
	Debugf("debug %s", "x")

	if logs.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", logs.Len())
	}

	entries := logs.All()
	if entries[0].Message != "info message" || entries[0].ContextMap()["city"] != "北京" {
		t.Errorf("unexpected info entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "warn 1" {
		t.Errorf("unexpected warn entry: %+v", entries[1])
	}
	if entries[2].ContextMap()["status"] != int64(401) {
		t.Errorf("unexpected error entry context: %v", entries[2].ContextMap())
	}
}

func TestSetLoggerRestoresPrevious(t *testing.T) {
	outerCore, outerLogs := observer.New(zapcore.InfoLevel)
	t.Cleanup(SetLogger(zap.New(outerCore)))

	innerCore, innerLogs := observer.New(zapcore.InfoLevel)
	restore := SetLogger(zap.New(innerCore))
	Info("inner")
	restore()
	Info("outer")

	if innerLogs.Len() != 1 || innerLogs.All()[0].Message != "inner" {
		t.Errorf("unexpected inner entries: %v", innerLogs.All())
	}
	if outerLogs.Len() != 1 || outerLogs.All()[0].Message != "outer" {
		t.Errorf("expected logging back on the previous logger, got %v", outerLogs.All())
	}
	Logger.Info("sugared")
	if outerLogs.Len() != 2 {
		t.Error("sugared logger not restored")
	}
}
