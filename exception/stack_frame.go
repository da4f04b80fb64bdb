package exception

import "runtime"

type StackFrame struct {
	Function string
	File     string
	Line     int
}

// StackFrames is a captured stack, innermost call first.
type StackFrames []StackFrame

// maxStackDepth bounds how many frames StackTrace records.
const maxStackDepth = 64

// StackTrace captures the stack of the caller. A skip of 0 starts at the caller
// of StackTrace itself.
func StackTrace(skip int) StackFrames {
	var programCounters [maxStackDepth]uintptr
	length := runtime.Callers(2+skip, programCounters[:])
	if length == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters[:length])
	stack := make(StackFrames, 0, length)
	for {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}
