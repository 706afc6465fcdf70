// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package writestream provides a growable byte buffer with an explicit
// write position. Unlike bytes.Buffer, the position can be moved backward
// to overwrite previously written bytes, which is useful when assembling
// records whose earlier fields are only known after later ones are written.
package writestream

// A Stream is a byte buffer with a write position. Writes at the position
// overwrite existing bytes and grow the buffer when they run past the end.
// The zero value is an empty buffer ready for use.
type Stream struct {
	buf []byte
	pos int
}

// Bytes returns the contents of the buffer. The slice is valid until the
// next write.
func (s *Stream) Bytes() []byte { return s.buf }

// Len returns the total length of the buffer, independent of the write
// position.
func (s *Stream) Len() int { return len(s.buf) }

// Pos returns the current write position.
func (s *Stream) Pos() int { return s.pos }

// Seek moves the write position, clamping it to [0, Len].
func (s *Stream) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.buf) {
		pos = len(s.buf)
	}
	s.pos = pos
}

// Reset truncates the buffer to zero length and rewinds the write position.
// The underlying storage is retained for reuse.
func (s *Stream) Reset() {
	s.buf = s.buf[:0]
	s.pos = 0
}

// Expand grows the buffer by n zero bytes without moving the write position.
func (s *Stream) Expand(n int) {
	s.buf = append(s.buf, make([]byte, n)...)
}

// Pad appends n zero bytes and moves the write position past them.
func (s *Stream) Pad(n int) {
	s.Expand(n)
	s.pos = len(s.buf)
}

// Put writes a single byte at the write position.
func (s *Stream) Put(b byte) {
	if s.pos == len(s.buf) {
		s.buf = append(s.buf, b)
	} else {
		s.buf[s.pos] = b
	}
	s.pos++
}

// Write writes p at the write position, growing the buffer as needed.
// It implements io.Writer and never returns an error.
func (s *Stream) Write(p []byte) (int, error) {
	if need := s.pos + len(p); need > len(s.buf) {
		s.buf = append(s.buf, make([]byte, need-len(s.buf))...)
	}
	copy(s.buf[s.pos:], p)
	s.pos += len(p)
	return len(p), nil
}

// WriteString writes str at the write position, growing the buffer as
// needed. It never returns an error.
func (s *Stream) WriteString(str string) (int, error) {
	if need := s.pos + len(str); need > len(s.buf) {
		s.buf = append(s.buf, make([]byte, need-len(s.buf))...)
	}
	copy(s.buf[s.pos:], str)
	s.pos += len(str)
	return len(str), nil
}
