// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package readstream provides a forward-only read cursor over an in-memory
// byte buffer.
//
// A Stream borrows the buffer it is given: read operations return subslices
// of the original data rather than copies, so the buffer must not be
// modified for as long as the Stream or any returned slice is in use.
//
// No operation on a Stream can fail. Out-of-range requests return whatever
// data is available, possibly none.
package readstream

import "bytes"

// A Stream is a read-only view over a byte buffer with a position that
// advances as data is read. The zero value is an empty stream.
type Stream struct {
	data []byte
	pos  int
}

// New returns a Stream reading from the start of data. The Stream keeps a
// reference to data rather than copying it.
func New(data []byte) *Stream {
	return &Stream{data: data}
}

// HasMore reports whether the read position is before the end of the buffer.
func (s *Stream) HasMore() bool {
	return s.pos < len(s.data)
}

// Pos returns the current read position.
func (s *Stream) Pos() int { return s.pos }

// Len returns the total length of the underlying buffer.
func (s *Stream) Len() int { return len(s.data) }

// Read copies up to len(dst) bytes into dst, advances the read position,
// and returns the number of bytes copied. At the end of the buffer it
// returns 0.
func (s *Stream) Read(dst []byte) int {
	n := copy(dst, s.data[s.pos:])
	s.pos += n
	return n
}

// ReadWhile reads bytes for as long as pred reports true and returns them
// as a subslice of the underlying buffer. The first byte for which pred
// reports false is consumed but not returned, so a delimiter is never seen
// by two consecutive reads. If the stream is already exhausted, ReadWhile
// returns an empty slice.
func (s *Stream) ReadWhile(pred func(byte) bool) []byte {
	begin := s.pos
	n := 0
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.pos++
		if !pred(b) {
			break
		}
		n++
	}
	return s.data[begin : begin+n]
}

// Find returns the position of the first occurrence of seq at or after the
// read position. It returns Len if seq is not present and Pos if seq is
// empty. Find does not move the read position.
func (s *Stream) Find(seq []byte) int {
	i := bytes.Index(s.data[s.pos:], seq)
	if i < 0 {
		return len(s.data)
	}
	return s.pos + i
}

// ReadUntil reads and returns the bytes from the read position up to but
// not including target, advancing the read position to target. A target
// past the end of the buffer is clamped to the end; a target before the
// read position yields an empty slice without moving the position.
func (s *Stream) ReadUntil(target int) []byte {
	if target > len(s.data) {
		target = len(s.data)
	}
	if target < s.pos {
		return nil
	}
	b := s.data[s.pos:target]
	s.pos = target
	return b
}
