// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yourbase/stn"
	"zombiezen.com/go/log/testlog"
)

func TestWatcher(t *testing.T) {
	ctx, cancel := context.WithTimeout(testlog.WithTB(context.Background(), t), 30*time.Second)
	defer cancel()
	path := filepath.Join(t.TempDir(), "app.txt")
	if err := os.WriteFile(path, []byte("greeting\nhello\n"), 0o666); err != nil {
		t.Fatal(err)
	}

	w := New(path)
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	got := recv(ctx, t, w)
	want := stn.Attributes{"greeting": "hello"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("initial snapshot (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("greeting\ngoodbye\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	// A rewrite may surface as several filesystem events with intermediate
	// contents; wait for the snapshot that reflects the final write.
	want = stn.Attributes{"greeting": "goodbye"}
	for got = recv(ctx, t, w); !equal(got, want); got = recv(ctx, t, w) {
	}

	cancel()
	if err := <-runDone; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v; want %v", err, context.Canceled)
	}
}

func TestWatcherMissingFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(testlog.WithTB(context.Background(), t), 30*time.Second)
	defer cancel()
	path := filepath.Join(t.TempDir(), "app.txt")

	w := New(path)
	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	if got := recv(ctx, t, w); len(got) != 0 {
		t.Errorf("initial snapshot = %v; want empty", got)
	}

	if err := os.WriteFile(path, []byte("present\nyes\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	want := stn.Attributes{"present": "yes"}
	for got := recv(ctx, t, w); !equal(got, want); got = recv(ctx, t, w) {
	}

	cancel()
	<-runDone
}

func TestWatcherMissingDirectory(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	w := New(filepath.Join(t.TempDir(), "no-such-dir", "app.txt"))
	if err := w.Run(ctx); err == nil {
		t.Error("Run on a missing directory returned nil; want error")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b stn.Attributes
		want bool
	}{
		{name: "BothEmpty", a: stn.Attributes{}, b: stn.Attributes{}, want: true},
		{name: "NilAndEmpty", a: nil, b: stn.Attributes{}, want: true},
		{name: "Same", a: stn.Attributes{"a": "1"}, b: stn.Attributes{"a": "1"}, want: true},
		{name: "DifferentValue", a: stn.Attributes{"a": "1"}, b: stn.Attributes{"a": "2"}, want: false},
		{name: "DifferentKeys", a: stn.Attributes{"a": "1"}, b: stn.Attributes{"b": "1"}, want: false},
		{name: "SubsetLonger", a: stn.Attributes{"a": "1"}, b: stn.Attributes{"a": "1", "b": "2"}, want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := equal(test.a, test.b); got != test.want {
				t.Errorf("equal(%v, %v) = %t; want %t", test.a, test.b, got, test.want)
			}
		})
	}
}

func recv(ctx context.Context, t *testing.T, w *Watcher) stn.Attributes {
	t.Helper()
	select {
	case attrs := <-w.Updates():
		return attrs
	case <-ctx.Done():
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}
