// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package logfile provides an append-only log file that survives abrupt
// process death.
//
// When a program aborts, data sitting in userspace write buffers is lost,
// and the entries describing a fatal error are exactly the ones most likely
// to still be buffered. A File syncs after every write, so the last entry
// written before a crash is on disk.
package logfile

import (
	"fmt"
	"os"
	"sync"
)

// A File is an append-only log file. Writes are serialized and synced to
// disk before returning, so a File may be shared by multiple goroutines.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// Create opens the log file at path for appending, creating it if it does
// not exist. If overwrite is true, existing contents are discarded.
func Create(path string, overwrite bool) (*File, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &File{f: f}, nil
}

// Write appends p to the file and syncs it to disk.
func (lf *File) Write(p []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	n, err := lf.f.Write(p)
	if err != nil {
		return n, fmt.Errorf("write log file: %w", err)
	}
	if err := lf.f.Sync(); err != nil {
		return n, fmt.Errorf("write log file: %w", err)
	}
	return n, nil
}

// WriteString appends s to the file and syncs it to disk.
func (lf *File) WriteString(s string) (int, error) {
	return lf.Write([]byte(s))
}

// Close closes the file. Writing after Close returns an error.
func (lf *File) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	return lf.f.Close()
}
