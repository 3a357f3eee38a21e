/*
Package logtest provides a logger that records messages so tests can assert on diagnostics.
*/
package logtest

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/logger"
)

var _ logger.Logger = (*Recorder)(nil)

type Entry struct {
	Level   string
	Message string
}

type Recorder struct {
	lock    sync.Mutex
	entries []Entry
}

// Capture installs a Recorder as the package logger for the duration of the test.
func Capture(t testing.TB) *Recorder {
	t.Helper()
	previous := log.Log
	r := &Recorder{}
	log.Log = r
	t.Cleanup(func() {
		log.Log = previous
	})
	return r
}

func (r *Recorder) Entries() []Entry {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Contains reports whether any entry at the given level includes every fragment.
func (r *Recorder) Contains(level string, fragments ...string) bool {
	for _, e := range r.Entries() {
		if e.Level != level {
			continue
		}
		matched := true
		for _, f := range fragments {
			if !strings.Contains(e.Message, f) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func (r *Recorder) record(level, message string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.record("error", fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(args ...interface{}) {
	r.record("error", fmt.Sprint(args...))
}

func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.record("warn", fmt.Sprintf(format, args...))
}

func (r *Recorder) Warn(args ...interface{}) {
	r.record("warn", fmt.Sprint(args...))
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.record("info", fmt.Sprintf(format, args...))
}

func (r *Recorder) Info(args ...interface{}) {
	r.record("info", fmt.Sprint(args...))
}

func (r *Recorder) Debugf(format string, args ...interface{}) {
	r.record("debug", fmt.Sprintf(format, args...))
}

func (r *Recorder) Debug(args ...interface{}) {
	r.record("debug", fmt.Sprint(args...))
}
