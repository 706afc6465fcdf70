// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package stn

import (
	"os"
	"sort"

	"github.com/yourbase/stn/readstream"
)

// multilineMarker opens a multi-line value when it appears, exactly, as a
// whole line in value position. The block's value is every byte up to the
// terminator, which must likewise match exactly.
const multilineMarker = "[MULTILINE]"

var multilineTerminator = []byte("\n[END_MULTILINE]\n")

// Attributes is the result of parsing a Simple Text Notation file: a set of
// attribute names mapped to their values. A null value is stored as the
// empty string.
type Attributes map[string]string

// Get returns the value of the named attribute, or the empty string if the
// attribute is absent. An absent attribute is indistinguishable from one
// with a null value.
func (attrs Attributes) Get(name string) string {
	return attrs[name]
}

// Keys returns the attribute names in ascending order.
func (attrs Attributes) Keys() []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse parses data as Simple Text Notation. It accepts any input: there
// are no syntax errors, only attributes that do or do not result.
//
// An attribute name with no line after it is dropped. A name whose value
// line is blank gets the empty string. When a name repeats, the last value
// wins.
func Parse(data []byte) Attributes {
	attrs := make(Attributes)
	rs := readstream.New(data)
	var name string
	pending := false
	for rs.HasMore() {
		line := rs.ReadWhile(notNewline)
		if len(line) == 0 || line[0] == '#' {
			// Blank and hash lines are skipped between pairs. In value
			// position they are the value: a blank line is the format's
			// null value, and a hash line is not recognized as a comment
			// there.
			if pending {
				attrs[name] = string(line)
				pending = false
			}
			continue
		}
		if !pending {
			name = string(line)
			pending = true
			continue
		}
		value := line
		if string(line) == multilineMarker {
			end := rs.Find(multilineTerminator)
			value = rs.ReadUntil(end)
			// Skip past the terminator. At end of buffer this is a no-op.
			rs.ReadUntil(end + len(multilineTerminator))
		}
		attrs[name] = string(value)
		pending = false
	}
	return attrs
}

func notNewline(c byte) bool { return c != '\n' }

// ParseFile reads the file at path and parses it as Simple Text Notation.
// A file that is missing or cannot be read behaves like an empty file and
// yields empty Attributes.
func ParseFile(path string) Attributes {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(Attributes)
	}
	return Parse(data)
}
