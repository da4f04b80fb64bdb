package jserror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thanhminhmr/go-testerror/jserror"
)

func TestParseStack(t *testing.T) {
	stack := "TypeError: x is not a function\n" +
		"    at foo (file:///app.js:3:7)\n" +
		"    at Object.run [as handler] (file:///lib.js:10:2)\n" +
		"    at new Widget (file:///widget.js:1:1)\n" +
		"    at async Promise.all (index 2)\n" +
		"    at async file:///main.js:20:3\n" +
		"    at Array.forEach (native)\n" +
		"    at eval (eval at run (file:///app.js:5:1), <anonymous>:1:9)\n" +
		"    at ext:core/01_core.js:120:5\n"

	frames := jserror.ParseStack(stack)

	assert.Equal(t, jserror.StackFrames{
		{FunctionName: "foo", FileName: "file:///app.js", LineNumber: 3, ColumnNumber: 7, IsTopLevel: true},
		{FunctionName: "Object.run", MethodName: "handler", FileName: "file:///lib.js", LineNumber: 10, ColumnNumber: 2},
		{FunctionName: "Widget", FileName: "file:///widget.js", LineNumber: 1, ColumnNumber: 1, IsConstructor: true},
		{IsAsync: true, IsPromiseAll: true, PromiseIndex: 2},
		{IsAsync: true, IsTopLevel: true, FileName: "file:///main.js", LineNumber: 20, ColumnNumber: 3},
		{FunctionName: "Array.forEach", IsNative: true},
		{FunctionName: "eval", IsTopLevel: true, IsEval: true, EvalOrigin: "eval at run (file:///app.js:5:1)", LineNumber: 1, ColumnNumber: 9},
		{IsTopLevel: true, FileName: "ext:core/01_core.js", LineNumber: 120, ColumnNumber: 5},
	}, frames)
}

func TestParseStackWithoutFrames(t *testing.T) {
	assert.Empty(t, jserror.ParseStack("Error: boom"))
	assert.Empty(t, jserror.ParseStack(""))
}

func TestParseStackLineOnly(t *testing.T) {
	frames := jserror.ParseStack("    at file:///app.js:7")
	assert.Equal(t, jserror.StackFrames{
		{IsTopLevel: true, FileName: "file:///app.js", LineNumber: 7},
	}, frames)
}
