package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	cfg := &config.AppConfig{LogLevel: "info", Environment: "development", LogFile: path, LogMaxSizeMB: 1, LogMaxBackups: 1}

	var console bytes.Buffer
	log, closeFn := newWithConsole(cfg, &console)
	log.WithField("homework", "X").Info("message sent")
	log.Debug("hidden below info")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "level=info") || !strings.Contains(text, `msg="message sent"`) || !strings.Contains(text, "homework=X") {
		t.Fatalf("unexpected file contents: %q", text)
	}
	if strings.Contains(text, "hidden below info") {
		t.Fatalf("debug entry written at info level: %q", text)
	}
	if console.String() != text {
		t.Fatalf("console and file output differ:\n%q\n%q", console.String(), text)
	}
}

func TestNewWithoutFile(t *testing.T) {
	cfg := &config.AppConfig{LogLevel: "warn"}

	var console bytes.Buffer
	log, closeFn := newWithConsole(cfg, &console)
	defer closeFn()

	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %s, want warn", log.GetLevel())
	}
	log.Warn("visible")
	if !strings.Contains(console.String(), "visible") {
		t.Fatalf("console output = %q", console.String())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.AppConfig{LogLevel: "loud"}

	log, closeFn := newWithConsole(cfg, io.Discard)
	defer closeFn()

	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %s, want info", log.GetLevel())
	}
}

func TestNewProductionUsesJSON(t *testing.T) {
	cfg := &config.AppConfig{LogLevel: "info", Environment: "production"}

	var console bytes.Buffer
	log, closeFn := newWithConsole(cfg, &console)
	defer closeFn()

	log.Info("started")
	var entry map[string]any
	if err := json.Unmarshal(console.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, console.String())
	}
	if entry["msg"] != "started" || entry["level"] != "info" {
		t.Fatalf("entry = %v", entry)
	}
}
