package exception

import "fmt"

var _ Exception = String("")

// String is an Exception made of a type only. Declare one per failure kind as
// a constant and attach details when the failure happens:
//
//	const errorDecode = exception.String("Report: Failed to decode")
//
//	return errorDecode.AddCause(err)
//
// A String stays a String until something is attached to it, so comparing an
// error against the constant with errors.Is matches every detailed variant.
type String string

func (e String) Error() string              { return string(e) }
func (e String) GetType() string            { return string(e) }
func (e String) GetMessage() string         { return "" }
func (e String) GetCause() []error          { return nil }
func (e String) GetSuppressed() []error     { return nil }
func (e String) GetRecovered() any          { return nil }
func (e String) GetStackTrace() StackFrames { return nil }

// promote returns a full exception of this type when attach reports that it
// stored something, and e unchanged otherwise.
func (e String) promote(attach func(full *exception) bool) Exception {
	full := exception{Type: string(e)}
	if !attach(&full) {
		return e
	}
	return full
}

func (e String) SetMessage(message string, parameters ...any) Exception {
	return e.promote(func(full *exception) bool {
		if len(parameters) > 0 {
			message = fmt.Sprintf(message, parameters...)
		}
		full.Message = message
		return message != ""
	})
}

func (e String) AddCause(errors ...error) Exception {
	return e.promote(func(full *exception) bool {
		full.Cause = concat(nil, errors...)
		return len(full.Cause) > 0
	})
}

func (e String) AddSuppressed(errors ...error) Exception {
	return e.promote(func(full *exception) bool {
		full.Suppressed = concat(nil, errors...)
		return len(full.Suppressed) > 0
	})
}

func (e String) SetRecovered(recovered any) Exception {
	return e.promote(func(full *exception) bool {
		full.Recovered = recovered
		return recovered != nil
	})
}

func (e String) FillStackTrace(skip int) Exception {
	stackTrace := StackTrace(skip + 1)
	return e.promote(func(full *exception) bool {
		full.StackTrace = stackTrace
		return true
	})
}

func (e String) __() {}

func (e String) Is(target error) bool {
	return is(e, target)
}

func (e String) As(target any) bool {
	return as(e, target)
}
