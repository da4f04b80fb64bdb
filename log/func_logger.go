package log

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/capture"
)

// Func describes a function value as a report frame, "name (origin:line)",
// for route and hook dumps.
func Func(v any) fmt.Stringer {
	return _func{v: v}
}

// Funcs describes a slice of function values as a zerolog array.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return _funcs[S, E]{v: v}
}

type _func struct {
	v any
}

func (f _func) String() string {
	if f.v == nil {
		return "<nil>"
	}
	value := reflect.ValueOf(f.v)
	if value.Kind() != reflect.Func {
		return fmt.Sprintf("<%T>", f.v)
	}
	function := runtime.FuncForPC(value.Pointer())
	if function == nil {
		return "<unknown>"
	}
	file, line := function.FileLine(function.Entry())
	name := function.Name()
	origin := capture.Origin(name, file)
	if origin == "" {
		return name
	}
	return name + " (" + origin + ":" + strconv.Itoa(line) + ")"
}

type _funcs[S ~[]E, E any] struct {
	v S
}

func (f _funcs[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, v := range f.v {
		array.Str(_func{v: v}.String())
	}
}
