// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package logfile

import (
	"context"
	"io"

	"github.com/yourbase/stn/writestream"
	"zombiezen.com/go/log"
)

// A Logger writes log entries to an io.Writer, one line per entry. Pointing
// Output at a File makes the log durable against aborts; Output may also be
// os.Stderr or any other writer. Each entry is sent in a single Write call,
// so a Logger is safe for concurrent use whenever its Output is.
type Logger struct {
	// Output receives one formatted line per entry.
	Output io.Writer

	// Min is the least severe level that will be written. Entries below it
	// are discarded.
	Min log.Level
}

// Log formats ent and writes it to l.Output. Write errors are discarded:
// the logger is the component of last resort, so there is nowhere left to
// report them.
func (l *Logger) Log(_ context.Context, ent log.Entry) {
	buf := new(writestream.Stream)
	buf.WriteString(ent.Time.Format("2006/01/02 15:04:05 "))
	buf.WriteString(levelString(ent.Level))
	buf.WriteString(": ")
	buf.WriteString(ent.Msg)
	buf.Put('\n')
	l.Output.Write(buf.Bytes())
}

// LogEnabled reports whether ent is at or above the minimum level.
func (l *Logger) LogEnabled(ent log.Entry) bool {
	return ent.Level >= l.Min
}

func levelString(level log.Level) string {
	switch {
	case level >= log.Error:
		return "ERROR"
	case level >= log.Warn:
		return "WARN"
	case level >= log.Info:
		return "INFO"
	default:
		return "DEBUG"
	}
}
