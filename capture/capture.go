// Package capture turns Go errors and recovered panics into script error
// reports, so that they can be abbreviated and rendered like runtime errors.
//
// Frames of the Go standard library (runtime, testing, net/http, ...) are
// given file names in the extension namespace, which makes the abbreviation
// hide them the same way it hides the script runtime's own frames.
package capture

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/testerror"
)

// maxDepth bounds the nesting of the produced report.
const maxDepth = 64

const aggregateMessage = "AggregateError"

// FromError converts err into a report. Exceptions contribute their stack
// trace, their first cause becomes the cause and the remaining causes plus the
// suppressed errors become the aggregated errors. Other errors are unwrapped
// with Unwrap() error (cause) or Unwrap() []error (aggregated).
func FromError(err error) *jserror.Error {
	if err == nil {
		return nil
	}
	return fromError(err, 0)
}

// FormatPanic abbreviates and renders a value returned by recover. It must be
// called from the deferred function that recovered it.
func FormatPanic(recovered any, renderer testerror.Renderer) string {
	ex := exception.FromRecovered(recovered, 1)
	if ex == nil {
		return ""
	}
	return testerror.FormatTestError(FromError(ex), renderer)
}

func fromError(err error, depth int) *jserror.Error {
	if report, ok := err.(*jserror.Error); ok {
		return report
	}
	node := &jserror.Error{ExceptionMessage: err.Error()}
	var cause []error
	var aggregated []error
	switch e := err.(type) {
	case exception.Exception:
		node.Frames = Frames(e.GetStackTrace())
		if e.GetType() == "" {
			node.ExceptionMessage = aggregateMessage
			aggregated = e.GetCause()
		} else if causes := e.GetCause(); len(causes) > 0 {
			cause = causes[:1]
			aggregated = causes[1:]
		}
		aggregated = slices.Concat(aggregated, e.GetSuppressed())
	case interface{ Unwrap() []error }:
		if node.ExceptionMessage == "" {
			node.ExceptionMessage = aggregateMessage
		}
		aggregated = e.Unwrap()
	case interface{ Unwrap() error }:
		if inner := e.Unwrap(); inner != nil {
			cause = []error{inner}
		}
	}
	if depth+1 >= maxDepth {
		return node
	}
	if len(cause) > 0 && cause[0] != nil {
		node.Cause = fromError(cause[0], depth+1)
	}
	for _, inner := range aggregated {
		if inner == nil {
			continue
		}
		// a typed nil report converts to nil
		if converted := fromError(inner, depth+1); converted != nil {
			node.Aggregated = append(node.Aggregated, *converted)
		}
	}
	return node
}

// Frames converts a captured Go stack into report frames.
func Frames(stack exception.StackFrames) jserror.StackFrames {
	if stack == nil {
		return nil
	}
	frames := make(jserror.StackFrames, 0, len(stack))
	for _, frame := range stack {
		frames = append(frames, jserror.StackFrame{
			FunctionName: functionName(frame.Function),
			FileName:     Origin(frame.Function, frame.File),
			LineNumber:   frame.Line,
			IsTopLevel:   true,
		})
	}
	return frames
}

// Origin returns the report file name of a Go frame: standard library code is
// placed under "ext:go/", everything else gets a file URL.
func Origin(function string, file string) string {
	if packagePath := packagePath(function); isStandardLibrary(packagePath) {
		return "ext:go/" + packagePath + "/" + path.Base(filepath.ToSlash(file))
	}
	if file == "" {
		return ""
	}
	file = filepath.ToSlash(file)
	if !strings.HasPrefix(file, "/") {
		file = "/" + file
	}
	return "file://" + file
}

func functionName(function string) string {
	return function[strings.LastIndexByte(function, '/')+1:]
}

// packagePath extracts "net/http" from "net/http.(*conn).serve".
func packagePath(function string) string {
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	return function[:slash+1+dot]
}

func isStandardLibrary(packagePath string) bool {
	if packagePath == "" || packagePath == "main" {
		return false
	}
	first, _, _ := strings.Cut(packagePath, "/")
	return !strings.Contains(first, ".")
}
