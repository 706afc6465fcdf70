// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package watch re-parses a Simple Text Notation file whenever it changes
// on disk and delivers the parsed attributes as snapshots.
package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yourbase/stn"
	"zombiezen.com/go/log"
)

// A Watcher monitors one Simple Text Notation file. Create a Watcher with
// New, receive snapshots from Updates, and drive it with Run.
type Watcher struct {
	path    string
	updates chan stn.Attributes
}

// New returns a Watcher for the file at path. The file does not need to
// exist: a missing file is reported as an empty snapshot, consistent with
// stn.ParseFile.
func New(path string) *Watcher {
	return &Watcher{
		path:    path,
		updates: make(chan stn.Attributes),
	}
}

// Updates returns the channel snapshots are delivered on. The channel is
// unbuffered: Run blocks until each snapshot is received.
func (w *Watcher) Updates() <-chan stn.Attributes { return w.updates }

// Run sends an initial snapshot of the file, then re-parses and sends a new
// snapshot every time the file changes, until ctx is Done. Snapshots whose
// attributes are identical to the previous one are suppressed.
//
// Run watches the file's parent directory rather than the file itself, so
// the file may be removed, recreated, or atomically replaced while the
// Watcher is running.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	last := stn.ParseFile(w.path)
	if err := w.send(ctx, last); err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watch %s: event channel closed", w.path)
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			log.Debugf(ctx, "%s: %v", w.path, ev.Op)
			attrs := stn.ParseFile(w.path)
			if equal(attrs, last) {
				continue
			}
			last = attrs
			if err := w.send(ctx, attrs); err != nil {
				return err
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watch %s: error channel closed", w.path)
			}
			log.Warnf(ctx, "watch %s: %v", w.path, err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) send(ctx context.Context, attrs stn.Attributes) error {
	select {
	case w.updates <- attrs:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func equal(a, b stn.Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for name, value := range a {
		other, ok := b[name]
		if !ok || other != value {
			return false
		}
	}
	return true
}
