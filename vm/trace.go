package vm

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// tracer is a minimal execution logger, grounded on
// MongooseMoo-barn/trace/tracer.go's enabled-flag-plus-writer shape. The
// engine has no use for the teacher's per-verb filename filters (there are
// no verbs here), so only the enable/writer plumbing survives; everything
// else is standard library, per DESIGN.md's ambient-stack justification.
type tracer struct {
	mu      sync.Mutex
	enabled bool
	w       io.Writer
}

func newTracer(enabled bool) *tracer {
	return &tracer{enabled: enabled, w: os.Stderr}
}

func (t *tracer) scopeEnter(name string, depth int) {
	if t == nil || !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%*senter %s\n", depth*2, "", name)
}

func (t *tracer) scopeExit(name string, depth int, result string) {
	if t == nil || !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%*sexit %s -> %s\n", depth*2, "", name, result)
}

func (t *tracer) logf(format string, args ...any) {
	if t == nil || !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format+"\n", args...)
}
