// Copyright 2026 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// These constants identify the log levels in order of increasing Severity.
const (
	Severity_UNKNOWN Severity = iota
	Severity_INFO
	Severity_WARNING
	Severity_ERROR
)

const severityChar = "?IWE"

var severityName = []string{
	Severity_UNKNOWN: "UNKNOWN",
	Severity_INFO:    "INFO",
	Severity_WARNING: "WARNING",
	Severity_ERROR:   "ERROR",
}

// String implements the fmt.Stringer interface.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityName) {
		return strconv.Itoa(int(s))
	}
	return severityName[s]
}

// SeverityByName attempts to parse the passed in string into a severity. (i.e.
// ERROR, INFO). If it succeeds, the returned bool is set to true.
func SeverityByName(s string) (Severity, bool) {
	s = strings.ToUpper(s)
	for i, name := range severityName {
		if i > 0 && name == s {
			return Severity(i), true
		}
	}
	return Severity_UNKNOWN, false
}

// colorProfile defines escape sequences which provide color in
// terminals.
type colorProfile struct {
	infoPrefix  []byte
	warnPrefix  []byte
	errorPrefix []byte
	timePrefix  []byte
}

var colorReset = []byte("\033[0m")

// For terms with 8-color support.
var colorProfile8 = &colorProfile{
	infoPrefix:  []byte("\033[0;36;49m"),
	warnPrefix:  []byte("\033[0;33;49m"),
	errorPrefix: []byte("\033[0;31;49m"),
	timePrefix:  []byte("\033[2;37;49m"),
}

// stderrColorProfile is non-nil only when stderr is a terminal.
var stderrColorProfile = func() *colorProfile {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	if term := os.Getenv("TERM"); term == "" || term == "dumb" {
		return nil
	}
	return colorProfile8
}()

// loggingT collects all the global state of the logging setup.
type loggingT struct {
	mu struct {
		sync.Mutex
		w      io.Writer
		colors *colorProfile
	}
	// verbosity is the V logging level. Read atomically.
	verbosity int32
	// redactable keeps redaction markers in the output when set.
	redactable atomic.Bool
}

var logging = func() *loggingT {
	l := &loggingT{}
	l.mu.w = os.Stderr
	l.mu.colors = stderrColorProfile
	return l
}()

// SetOutput redirects all log output to w and returns a function that
// restores the previous destination. Output to anything but the process'
// stderr is never colorized.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prevW, prevColors := logging.mu.w, logging.mu.colors
	logging.mu.w = w
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		logging.mu.colors = nil
	}
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.w, logging.mu.colors = prevW, prevColors
	}
}

// SetVerbosity sets the level below or at which V(level) returns true.
func SetVerbosity(level int32) error {
	if level < 0 {
		return errors.Newf("invalid verbosity %d", level)
	}
	atomic.StoreInt32(&logging.verbosity, level)
	return nil
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(redactable bool) {
	logging.redactable.Store(redactable)
}

// formatHeader formats a log header using the provided file name and
// line number. Log lines are colorized depending on severity.
//
// Log lines have this form:
//
//	Lyymmdd hh:mm:ss.uuuuuu file:line  msg...
//
// where the fields are defined as follows:
//
//	L                A single character, representing the log level (eg 'I' for INFO)
//	yy               The year (zero padded; ie 2016 is '16')
//	mm               The month (zero padded; ie May is '05')
//	dd               The day (zero padded)
//	hh:mm:ss.uuuuuu  Time in hours, minutes and fractional seconds
//	file             The file name
//	line             The line number
//	msg              The user-supplied message
func formatHeader(
	buf *bytes.Buffer, s Severity, now time.Time, file string, line int, colors *colorProfile,
) {
	if line < 0 {
		line = 0 // not a real line number, but acceptable to someDigits
	}
	if s <= Severity_UNKNOWN || s > Severity_ERROR {
		s = Severity_INFO // for safety.
	}
	if colors != nil {
		switch s {
		case Severity_INFO:
			buf.Write(colors.infoPrefix)
		case Severity_WARNING:
			buf.Write(colors.warnPrefix)
		default:
			buf.Write(colors.errorPrefix)
		}
	}
	year, month, day := now.Date()
	hour, minute, second := now.Clock()
	buf.WriteByte(severityChar[s])
	fmt.Fprintf(buf, "%02d%02d%02d", year%100, int(month), day)
	if colors != nil {
		buf.Write(colors.timePrefix) // gray for time, file & line
	}
	fmt.Fprintf(buf, " %02d:%02d:%02d.%06d %s:%d", hour, minute, second, now.Nanosecond()/1000, file, line)
	// Extra space between the header and the actual message for scannability.
	buf.WriteString("  ")
	if colors != nil {
		buf.Write(colorReset)
	}
}

// outputLogEntry writes one formatted entry to the configured destination.
// Write errors are dropped: there is nowhere left to report them.
func (l *loggingT) outputLogEntry(s Severity, now time.Time, file string, line int, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var buf bytes.Buffer
	formatHeader(&buf, s, now, file, line, l.mu.colors)
	buf.WriteString(msg)
	if buf.Len() == 0 || buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, _ = l.mu.w.Write(buf.Bytes())
}
