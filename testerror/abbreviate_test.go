package testerror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/testerror"
)

func user(name string) jserror.StackFrame {
	return jserror.StackFrame{FunctionName: name, FileName: "file:///" + name + ".js"}
}

func internal(name string) jserror.StackFrame {
	return jserror.StackFrame{FunctionName: name, FileName: "ext:core/" + name + ".js"}
}

func bracketed(name string) jserror.StackFrame {
	return jserror.StackFrame{FunctionName: name, FileName: "[ext:core/" + name + ".js]"}
}

func TestAbbreviateUserFramesOnly(t *testing.T) {
	frames := jserror.StackFrames{user("a"), user("b"), {FunctionName: "native"}}
	report := &jserror.Error{
		ExceptionMessage: "Error: boom",
		Frames:           frames,
		Cause:            &jserror.Error{ExceptionMessage: "Error: cause", Frames: frames},
	}

	result := testerror.Abbreviate(report)

	assert.Equal(t, frames, result.Frames)
	assert.Equal(t, frames, result.Cause.Frames)
}

func TestAbbreviateInternalFramesOnly(t *testing.T) {
	frames := jserror.StackFrames{internal("a"), bracketed("b"), internal("c")}

	result := testerror.Abbreviate(&jserror.Error{Frames: frames})

	assert.Equal(t, frames, result.Frames)
}

func TestAbbreviateTrailingInternalFrames(t *testing.T) {
	result := testerror.Abbreviate(&jserror.Error{
		Frames: jserror.StackFrames{user("a"), internal("b"), bracketed("c")},
	})

	assert.Equal(t, jserror.StackFrames{user("a")}, result.Frames)
}

func TestAbbreviateKeepsInternalFramesBeforeUserFrame(t *testing.T) {
	result := testerror.Abbreviate(&jserror.Error{
		Frames: jserror.StackFrames{internal("a"), user("b"), internal("c")},
	})

	assert.Equal(t, jserror.StackFrames{internal("a"), user("b")}, result.Frames)
}

func TestAbbreviateAnonymousFrameIsUserCode(t *testing.T) {
	anonymous := jserror.StackFrame{FunctionName: "eval", IsEval: true}

	result := testerror.Abbreviate(&jserror.Error{
		Frames: jserror.StackFrames{internal("a"), anonymous, internal("b")},
	})

	assert.Equal(t, jserror.StackFrames{internal("a"), anonymous}, result.Frames)
}

func TestAbbreviateEmptyAndNil(t *testing.T) {
	assert.Nil(t, testerror.Abbreviate(nil))

	result := testerror.Abbreviate(&jserror.Error{ExceptionMessage: "Error"})
	assert.Nil(t, result.Frames)
	assert.Nil(t, result.Cause)
	assert.Nil(t, result.Aggregated)

	result = testerror.Abbreviate(&jserror.Error{
		Frames:     jserror.StackFrames{},
		Aggregated: []jserror.Error{},
	})
	assert.NotNil(t, result.Frames)
	assert.Empty(t, result.Frames)
	assert.NotNil(t, result.Aggregated)
	assert.Empty(t, result.Aggregated)
}

func TestAbbreviateRecursesIndependently(t *testing.T) {
	report := &jserror.Error{
		ExceptionMessage: "Uncaught AggregateError: several",
		Frames:           jserror.StackFrames{user("root"), internal("runner")},
		Cause: &jserror.Error{
			ExceptionMessage: "Uncaught Error: cause",
			Frames:           jserror.StackFrames{internal("x"), user("cause"), internal("y"), internal("z")},
			Cause: &jserror.Error{
				ExceptionMessage: "Error: deeper",
				Frames:           jserror.StackFrames{internal("setup"), bracketed("setup2")},
			},
		},
		Aggregated: []jserror.Error{
			{ExceptionMessage: "Error: first", Frames: jserror.StackFrames{user("first"), internal("f")}},
			{ExceptionMessage: "Error: second", Frames: jserror.StackFrames{internal("s")}},
			{
				ExceptionMessage: "Error: third",
				Frames:           jserror.StackFrames{user("third")},
				Aggregated: []jserror.Error{
					{ExceptionMessage: "Error: nested", Frames: jserror.StackFrames{user("n"), bracketed("n")}},
				},
			},
		},
	}

	result := testerror.Abbreviate(report)

	assert.Equal(t, "Uncaught AggregateError: several", result.ExceptionMessage)
	assert.Equal(t, jserror.StackFrames{user("root")}, result.Frames)
	require.NotNil(t, result.Cause)
	assert.Equal(t, "Uncaught Error: cause", result.Cause.ExceptionMessage)
	assert.Equal(t, jserror.StackFrames{internal("x"), user("cause")}, result.Cause.Frames)
	require.NotNil(t, result.Cause.Cause)
	assert.Equal(t, jserror.StackFrames{internal("setup"), bracketed("setup2")}, result.Cause.Cause.Frames)
	require.Len(t, result.Aggregated, 3)
	assert.Equal(t, "Error: first", result.Aggregated[0].ExceptionMessage)
	assert.Equal(t, jserror.StackFrames{user("first")}, result.Aggregated[0].Frames)
	assert.Equal(t, "Error: second", result.Aggregated[1].ExceptionMessage)
	assert.Equal(t, jserror.StackFrames{internal("s")}, result.Aggregated[1].Frames)
	assert.Equal(t, "Error: third", result.Aggregated[2].ExceptionMessage)
	require.Len(t, result.Aggregated[2].Aggregated, 1)
	assert.Equal(t, jserror.StackFrames{user("n")}, result.Aggregated[2].Aggregated[0].Frames)

	assert.Equal(t, report.CountNodes(), result.CountNodes())
}

func TestAbbreviateCauseIndependentOfRoot(t *testing.T) {
	report := &jserror.Error{
		Frames: jserror.StackFrames{internal("a")},
		Cause:  &jserror.Error{Frames: jserror.StackFrames{user("b"), internal("c")}},
	}

	result := testerror.Abbreviate(report)

	assert.Equal(t, jserror.StackFrames{internal("a")}, result.Frames)
	assert.Equal(t, jserror.StackFrames{user("b")}, result.Cause.Frames)
}

func TestAbbreviateDoesNotModifyInput(t *testing.T) {
	index := 1
	report := &jserror.Error{
		ExceptionMessage:     "Uncaught Error: boom",
		Frames:               jserror.StackFrames{user("a"), user("b"), internal("c")},
		SourceLineFrameIndex: &index,
		Cause:                &jserror.Error{Frames: jserror.StackFrames{user("d"), internal("e")}},
		Aggregated:           []jserror.Error{{Frames: jserror.StackFrames{user("f"), internal("g")}}},
	}

	result := testerror.Abbreviate(report)
	result.Frames[0].FunctionName = "changed"
	*result.SourceLineFrameIndex = 5
	result.Aggregated[0].ExceptionMessage = "changed"

	assert.Len(t, report.Frames, 3)
	assert.Equal(t, "a", report.Frames[0].FunctionName)
	assert.Equal(t, 1, index)
	assert.Len(t, report.Cause.Frames, 2)
	assert.Len(t, report.Aggregated[0].Frames, 2)
	assert.Empty(t, report.Aggregated[0].ExceptionMessage)
	assert.NotSame(t, report.Cause, result.Cause)
}

func TestAbbreviateDeepCauseChain(t *testing.T) {
	const depth = 10000
	root := &jserror.Error{ExceptionMessage: "Error: 0"}
	current := root
	for range depth {
		current.Frames = jserror.StackFrames{user("u"), internal("i")}
		current.Cause = &jserror.Error{}
		current = current.Cause
	}

	result := testerror.Abbreviate(root)

	assert.Equal(t, root.CountNodes(), result.CountNodes())
	assert.Equal(t, depth, result.CountFrames())
}
