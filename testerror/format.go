package testerror

import (
	"strings"

	"github.com/thanhminhmr/go-testerror/jserror"
)

// uncaughtPrefix is what the runtime puts in front of unhandled errors.
const uncaughtPrefix = "Uncaught "

// Renderer turns an error report into display text.
type Renderer interface {
	Render(err *jserror.Error) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(err *jserror.Error) string

func (f RendererFunc) Render(err *jserror.Error) string {
	return f(err)
}

// TrimUncaught removes one leading "Uncaught " from message.
func TrimUncaught(message string) string {
	return strings.TrimPrefix(message, uncaughtPrefix)
}

// Prepare abbreviates err and normalizes the root message, leaving the causes
// and aggregated messages to the renderer.
func Prepare(err *jserror.Error) *jserror.Error {
	prepared := Abbreviate(err)
	if prepared != nil {
		prepared.ExceptionMessage = TrimUncaught(prepared.ExceptionMessage)
	}
	return prepared
}

// FormatTestError prepares err for a test report and returns what renderer
// makes of it.
func FormatTestError(err *jserror.Error, renderer Renderer) string {
	return renderer.Render(Prepare(err))
}
