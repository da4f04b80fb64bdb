package exception

// Join combines errors into one Exception. Nil errors are dropped and joined
// errors are flattened. It returns nil when nothing is left, and the error
// itself when exactly one Exception is left. Otherwise the result has an
// empty type and the errors as its causes, which reports render as an
// AggregateError.
func Join(errors ...error) Exception {
	multiple := concat(nil, errors...)
	switch len(multiple) {
	case 0:
		return nil
	case 1:
		if inner, ok := multiple[0].(Exception); ok {
			return inner
		}
	}
	return multipleErrors(multiple)
}

type multipleErrors []error

func (e multipleErrors) Error() string              { return "" }
func (e multipleErrors) GetType() string            { return "" }
func (e multipleErrors) GetMessage() string         { return "" }
func (e multipleErrors) GetCause() []error          { return e }
func (e multipleErrors) GetSuppressed() []error     { return nil }
func (e multipleErrors) GetRecovered() any          { return nil }
func (e multipleErrors) GetStackTrace() StackFrames { return nil }
func (e multipleErrors) Unwrap() []error            { return e }

// promote turns the joined errors into an untyped full exception when attach
// stores something; adding more causes keeps it a plain join.
func (e multipleErrors) promote(attach func(full *exception) bool) Exception {
	full := exception{Cause: e}
	if !attach(&full) {
		return e
	}
	return full
}

func (e multipleErrors) SetMessage(message string, parameters ...any) Exception {
	return exception{Cause: e}.SetMessage(message, parameters...)
}

func (e multipleErrors) AddCause(errors ...error) Exception {
	return multipleErrors(concat(e, errors...))
}

func (e multipleErrors) AddSuppressed(errors ...error) Exception {
	return e.promote(func(full *exception) bool {
		full.Suppressed = concat(nil, errors...)
		return len(full.Suppressed) > 0
	})
}

func (e multipleErrors) SetRecovered(recovered any) Exception {
	return e.promote(func(full *exception) bool {
		full.Recovered = recovered
		return recovered != nil
	})
}

func (e multipleErrors) FillStackTrace(skip int) Exception {
	stackTrace := StackTrace(skip + 1)
	return e.promote(func(full *exception) bool {
		full.StackTrace = stackTrace
		return true
	})
}

func (e multipleErrors) __() {}
