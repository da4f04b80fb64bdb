package jserror

import "strings"

// InternalPrefixes are the file name prefixes of the runtime's extension
// namespace, in bracketed and plain form.
var InternalPrefixes = [...]string{"[ext:", "ext:"}

// StackFrame is one entry of a script stack trace. Empty strings and zero
// numbers mean the runtime did not report that field.
type StackFrame struct {
	TypeName      string `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	FunctionName  string `json:"functionName,omitempty" yaml:"functionName,omitempty"`
	MethodName    string `json:"methodName,omitempty" yaml:"methodName,omitempty"`
	FileName      string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	LineNumber    int    `json:"lineNumber,omitempty" yaml:"lineNumber,omitempty"`
	ColumnNumber  int    `json:"columnNumber,omitempty" yaml:"columnNumber,omitempty"`
	EvalOrigin    string `json:"evalOrigin,omitempty" yaml:"evalOrigin,omitempty"`
	IsTopLevel    bool   `json:"isTopLevel,omitempty" yaml:"isTopLevel,omitempty"`
	IsEval        bool   `json:"isEval,omitempty" yaml:"isEval,omitempty"`
	IsNative      bool   `json:"isNative,omitempty" yaml:"isNative,omitempty"`
	IsConstructor bool   `json:"isConstructor,omitempty" yaml:"isConstructor,omitempty"`
	IsAsync       bool   `json:"isAsync,omitempty" yaml:"isAsync,omitempty"`
	IsPromiseAll  bool   `json:"isPromiseAll,omitempty" yaml:"isPromiseAll,omitempty"`
	PromiseIndex  int    `json:"promiseIndex,omitempty" yaml:"promiseIndex,omitempty"`
}

// IsInternal reports whether the frame belongs to the runtime's own extension
// code. A frame without a file name is never internal.
func (f StackFrame) IsInternal() bool {
	for _, prefix := range InternalPrefixes {
		if strings.HasPrefix(f.FileName, prefix) {
			return true
		}
	}
	return false
}

type StackFrames []StackFrame

// HasUserFrame reports whether at least one frame is not internal.
func (s StackFrames) HasUserFrame() bool {
	for _, frame := range s {
		if !frame.IsInternal() {
			return true
		}
	}
	return false
}
