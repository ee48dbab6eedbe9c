package apperr

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 32

// captureStack renders the calling goroutine's stack, skipping the given
// number of frames (runtime.Callers itself counts as one).
func captureStack(skip int) string {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
