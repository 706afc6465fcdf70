// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package logfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zombiezen.com/go/log"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")

	lf, err := Create(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lf.WriteString("one\n"); err != nil {
		t.Error("WriteString:", err)
	}
	if err := lf.Close(); err != nil {
		t.Error("Close:", err)
	}

	// Reopening without overwrite appends.
	lf, err = Create(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lf.WriteString("two\n"); err != nil {
		t.Error("WriteString:", err)
	}
	if err := lf.Close(); err != nil {
		t.Error("Close:", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "one\ntwo\n"; string(got) != want {
		t.Errorf("log contents = %q; want %q", got, want)
	}
}

func TestOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	if err := os.WriteFile(path, []byte("stale\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	lf, err := Create(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lf.WriteString("fresh\n"); err != nil {
		t.Error("WriteString:", err)
	}
	if err := lf.Close(); err != nil {
		t.Error("Close:", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "fresh\n"; string(got) != want {
		t.Errorf("log contents = %q; want %q", got, want)
	}
}

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := &Logger{Output: buf, Min: log.Info}

	if logger.LogEnabled(log.Entry{Level: log.Debug}) {
		t.Error("LogEnabled(debug) = true with Min = Info")
	}
	if !logger.LogEnabled(log.Entry{Level: log.Warn}) {
		t.Error("LogEnabled(warn) = false with Min = Info")
	}

	logger.Log(context.Background(), log.Entry{
		Time:  time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC),
		Level: log.Warn,
		Msg:   "something odd",
	})
	got := buf.String()
	if want := "2021/03/04 05:06:07 WARN: something odd\n"; got != want {
		t.Errorf("logged line = %q; want %q", got, want)
	}
}

func TestLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	lf, err := Create(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer lf.Close()

	logger := &Logger{Output: lf, Min: log.Info}
	logger.Log(context.Background(), log.Entry{
		Time:  time.Now(),
		Level: log.Error,
		Msg:   "it broke",
	})

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "ERROR: it broke\n") {
		t.Errorf("log contents = %q; want an ERROR line", got)
	}
}
