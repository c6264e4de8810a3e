package parser

import "fmt"

// Trace collects human-readable diagnostic lines during a parse. A nil
// *Trace is valid and discards everything, so a disabled trace costs one
// nil check per call site. Tracing is threaded explicitly through the walk
// instead of a process-wide flag so concurrent parses cannot interfere.
type Trace struct {
	lines []string
}

func newTrace(enabled bool) *Trace {
	if !enabled {
		return nil
	}
	return &Trace{}
}

// Logf records one formatted trace line.
func (t *Trace) Logf(format string, args ...any) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns the collected trace, nil when tracing was disabled.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	return t.lines
}
