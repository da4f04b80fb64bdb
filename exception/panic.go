package exception

// PanicError is the type of exceptions created from recovered non-Exception values.
const PanicError = String("panic")

// Panic panics with value, making sure the panic carries a stack trace pointing
// at the caller of Panic.
func Panic(value any) {
	panic(FromRecovered(value, 1))
}

// Recover converts the value returned by the builtin recover into an Exception,
// capturing a stack trace if it has none yet. It returns nil if nothing was
// recovered.
//
//	defer func() {
//		if recovered := exception.Recover(recover()); recovered != nil {
//			logger.Error().Err(recovered).Msg("Recovered from panic")
//		}
//	}()
func Recover(recovered any) Exception {
	return FromRecovered(recovered, 1)
}

// FromRecovered is Recover for helpers: the stack trace, if one needs to be
// captured, starts skip frames above the caller of FromRecovered.
func FromRecovered(recovered any, skip int) Exception {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(Exception); ok {
		if err.GetStackTrace() == nil {
			err = err.FillStackTrace(skip + 1)
		}
		return err
	}
	ex := PanicError.SetMessage("%v", recovered).SetRecovered(recovered)
	if err, ok := recovered.(error); ok {
		ex = ex.AddCause(err)
	}
	return ex.FillStackTrace(skip + 1)
}
