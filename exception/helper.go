package exception

// is matches exceptions by their type only, so a constant String matches every
// exception built from it.
func is(source Exception, target error) bool {
	if err, ok := target.(Exception); ok {
		return source.GetType() == err.GetType()
	}
	return false
}

func as(source Exception, target any) bool {
	if err, ok := target.(*Exception); ok {
		*err = source
		return true
	}
	return false
}

// concat appends the non-nil errors to result, flattening joined errors.
func concat(result []error, errors ...error) []error {
	for _, err := range errors {
		result = concatAdd(result, err)
	}
	return result
}

func concatAdd(result []error, err error) []error {
	if err == nil {
		return result
	}
	if multiple, ok := err.(multipleErrors); ok {
		for _, inner := range multiple {
			result = concatAdd(result, inner)
		}
		return result
	}
	return append(result, err)
}
