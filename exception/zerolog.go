//go:build !no_zerolog

package exception

import (
	"strconv"

	"github.com/rs/zerolog"
)

func (e String) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", string(e))
}

func (e exception) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", e.Type)
	if e.Message != "" {
		event.Str("message", e.Message)
	}
	if len(e.Cause) > 0 {
		event.Array("cause", errorArray(e.Cause))
	}
	if len(e.Suppressed) > 0 {
		event.Array("suppressed", errorArray(e.Suppressed))
	}
	if e.Recovered != nil {
		event.Interface("recovered", e.Recovered)
	}
	if len(e.StackTrace) > 0 {
		event.Array("stack_trace", e.StackTrace)
	}
}

func (e multipleErrors) MarshalZerologObject(event *zerolog.Event) {
	event.Array("cause", errorArray(e))
}

// errorArray logs nested exceptions as objects and other errors as text.
type errorArray []error

func (a errorArray) MarshalZerologArray(array *zerolog.Array) {
	for _, err := range a {
		if marshaler, ok := err.(zerolog.LogObjectMarshaler); ok {
			array.Object(marshaler)
		} else {
			array.Str(err.Error())
		}
	}
}

// Each frame is logged as "function file:line".
func (s StackFrames) MarshalZerologArray(array *zerolog.Array) {
	for _, frame := range s {
		array.Str(frame.Function + " " + frame.File + ":" + strconv.Itoa(frame.Line))
	}
}
