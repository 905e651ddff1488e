package server

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandler_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := slog.New(NewConsoleHandler(nil, slog.LevelInfo, messageChan))

	logger.Info("frame served", "scene", "default")

	select {
	case msg := <-messageChan:
		if msg.Message != "frame served scene=default" {
			t.Errorf("Expected message 'frame served scene=default', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestConsoleHandler_FiltersLevel(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := slog.New(NewConsoleHandler(nil, slog.LevelInfo, messageChan))

	logger.Debug("too quiet")
	logger.Warn("loud")

	msg := <-messageChan
	if msg.Message != "loud" || msg.Level != "warn" {
		t.Errorf("Expected only the warning, got %+v", msg)
	}
	select {
	case extra := <-messageChan:
		t.Errorf("Unexpected extra message %+v", extra)
	default:
	}
}

func TestConsoleHandler_AttrsAndGroups(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := slog.New(NewConsoleHandler(nil, slog.LevelInfo, messageChan)).
		With("render", 7).
		WithGroup("frame")

	logger.Info("done", "fps", 30)

	msg := <-messageChan
	if !strings.Contains(msg.Message, "render=7") || !strings.Contains(msg.Message, "frame.fps=30") {
		t.Errorf("Expected attrs and grouped keys, got %q", msg.Message)
	}
}

func TestConsoleHandler_ForwardsToNext(t *testing.T) {
	var buf strings.Builder
	next := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewConsoleHandler(next, slog.LevelInfo, nil))

	logger.Debug("debug only goes to next")

	if !strings.Contains(buf.String(), "debug only goes to next") {
		t.Errorf("Expected next handler to receive the record, got %q", buf.String())
	}
}

func TestConsoleHandler_NonBlockingWhenFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := slog.New(NewConsoleHandler(nil, slog.LevelInfo, messageChan))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			logger.Info("message")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full console channel")
	}
}

func TestConsole_KeepsMostRecent(t *testing.T) {
	console := NewConsole(3)
	ch := make(chan ConsoleMessage)
	finished := make(chan struct{})
	go func() {
		console.Collect(ch)
		close(finished)
	}()

	for _, m := range []string{"1", "2", "3", "4", "5"} {
		ch <- ConsoleMessage{Message: m}
	}
	close(ch)
	<-finished

	got := console.Messages()
	if len(got) != 3 || got[0].Message != "3" || got[2].Message != "5" {
		t.Errorf("Expected messages 3..5, got %+v", got)
	}
}
