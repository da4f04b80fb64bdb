package jserror

// Error is a script error report: the exception, its stack, the error that
// caused it and the errors aggregated under it. Each Error exclusively owns
// its Cause and Aggregated elements.
type Error struct {
	// ExceptionMessage is the display message, e.g. "Uncaught TypeError: x is
	// not a function".
	ExceptionMessage string `json:"exceptionMessage,omitempty" yaml:"exceptionMessage,omitempty"`

	// Name, Message and Stack are the raw properties of the thrown value. They
	// are only used to fill in ExceptionMessage and Frames when a report
	// omits them.
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Stack   string `json:"stack,omitempty" yaml:"stack,omitempty"`

	Frames StackFrames `json:"frames" yaml:"frames"`

	// SourceLine is the source text of the frame at SourceLineFrameIndex.
	SourceLine           string `json:"sourceLine,omitempty" yaml:"sourceLine,omitempty"`
	SourceLineFrameIndex *int   `json:"sourceLineFrameIndex,omitempty" yaml:"sourceLineFrameIndex,omitempty"`

	Cause      *Error  `json:"cause,omitempty" yaml:"cause,omitempty"`
	Aggregated []Error `json:"aggregated,omitempty" yaml:"aggregated,omitempty"`
}

// Error implements the error interface with the display message.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.ExceptionMessage
}

// Unwrap exposes the cause and the aggregated errors to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	for index := range e.Aggregated {
		errs = append(errs, &e.Aggregated[index])
	}
	return errs
}

// Walk calls visit for e and every error below it, depth first, cause before
// aggregated errors. It stops early when visit returns false.
func (e *Error) Walk(visit func(err *Error, depth int) bool) {
	e.walk(visit, 0)
}

func (e *Error) walk(visit func(err *Error, depth int) bool, depth int) bool {
	if e == nil {
		return true
	}
	if !visit(e, depth) {
		return false
	}
	if !e.Cause.walk(visit, depth+1) {
		return false
	}
	for index := range e.Aggregated {
		if !e.Aggregated[index].walk(visit, depth+1) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of errors in the tree rooted at e.
func (e *Error) CountNodes() int {
	count := 0
	e.Walk(func(*Error, int) bool {
		count++
		return true
	})
	return count
}

// CountFrames returns the total number of frames in the tree rooted at e.
func (e *Error) CountFrames() int {
	count := 0
	e.Walk(func(err *Error, _ int) bool {
		count += len(err.Frames)
		return true
	})
	return count
}
