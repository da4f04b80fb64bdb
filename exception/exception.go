package exception

import "fmt"

// Exception is an error with a type, an optional message, a chain of causes,
// suppressed errors, a recovered panic value and a stack trace. Its shape
// matches a script runtime error report (one cause chain plus sibling errors),
// which lets the capture package turn it into a report tree.
//
// Setters may return a new value instead of changing the receiver: always
// continue with the returned Exception.
type Exception interface {
	// Error returns "Type: message", or "Type" without a message.
	Error() string

	GetType() string
	GetMessage() string

	// SetMessage formats message with parameters when there are any.
	SetMessage(message string, parameters ...any) Exception

	// GetCause lists the errors that caused this one, possibly none.
	GetCause() []error

	// AddCause appends causes. Nil errors are dropped and joined errors are
	// flattened.
	AddCause(errors ...error) Exception

	// GetSuppressed lists errors that happened while handling this one.
	GetSuppressed() []error

	// AddSuppressed appends suppressed errors, with the rules of AddCause.
	AddSuppressed(errors ...error) Exception

	GetRecovered() any
	SetRecovered(recovered any) Exception

	// GetStackTrace returns the captured stack, innermost call first, or nil.
	GetStackTrace() StackFrames

	// FillStackTrace captures the stack starting at the caller of
	// FillStackTrace, skipping skip more frames.
	FillStackTrace(skip int) Exception

	__() // private
}

type exception struct {
	Type       string
	Message    string
	Cause      []error
	Suppressed []error
	Recovered  any
	StackTrace StackFrames
}

func (e exception) Error() string {
	if e.Message != "" {
		return e.Type + ": " + e.Message
	}
	return e.Type
}

func (e exception) GetType() string {
	return e.Type
}

func (e exception) GetMessage() string {
	return e.Message
}

func (e exception) SetMessage(message string, parameters ...any) Exception {
	if len(parameters) > 0 {
		e.Message = fmt.Sprintf(message, parameters...)
	} else {
		e.Message = message
	}
	return e
}

func (e exception) GetCause() []error {
	return e.Cause
}

func (e exception) AddCause(errors ...error) Exception {
	e.Cause = concat(e.Cause, errors...)
	return e
}

func (e exception) GetSuppressed() []error {
	return e.Suppressed
}

func (e exception) AddSuppressed(errors ...error) Exception {
	e.Suppressed = concat(e.Suppressed, errors...)
	return e
}

func (e exception) GetRecovered() any {
	return e.Recovered
}

func (e exception) SetRecovered(recovered any) Exception {
	e.Recovered = recovered
	return e
}

func (e exception) GetStackTrace() StackFrames {
	return e.StackTrace
}

func (e exception) FillStackTrace(skip int) Exception {
	e.StackTrace = StackTrace(skip + 1)
	return e
}

func (e exception) __() {}

func (e exception) Unwrap() []error {
	return e.Cause
}

func (e exception) Is(target error) bool {
	return is(e, target)
}

func (e exception) As(target any) bool {
	return as(e, target)
}
