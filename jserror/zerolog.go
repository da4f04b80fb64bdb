//go:build !no_zerolog

package jserror

import "github.com/rs/zerolog"

func (e *Error) MarshalZerologObject(event *zerolog.Event) {
	event.Str("message", e.ExceptionMessage)
	if len(e.Frames) > 0 {
		event.Array("frames", e.Frames)
	}
	if e.Cause != nil {
		event.Object("cause", e.Cause)
	}
	if len(e.Aggregated) > 0 {
		event.Array("aggregated", aggregated(e.Aggregated))
	}
}

type aggregated []Error

func (a aggregated) MarshalZerologArray(array *zerolog.Array) {
	for index := range a {
		array.Object(&a[index])
	}
}

func (f StackFrame) MarshalZerologObject(event *zerolog.Event) {
	if f.FunctionName != "" {
		event.Str("function", f.FunctionName)
	}
	event.Str("file", f.FileName).Int("line", f.LineNumber).Int("column", f.ColumnNumber)
	if f.IsInternal() {
		event.Bool("internal", true)
	}
}

func (s StackFrames) MarshalZerologArray(array *zerolog.Array) {
	for _, frame := range s {
		array.Object(frame)
	}
}
