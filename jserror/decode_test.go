package jserror_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-testerror/jserror"
)

func TestDecodeJSON(t *testing.T) {
	input := `{
		"exceptionMessage": "Uncaught Error: boom",
		"frames": [
			{"fileName": "file:///app.js", "lineNumber": 1, "columnNumber": 2, "functionName": "main"},
			{"fileName": "ext:core/01.js", "lineNumber": 3, "columnNumber": 4}
		],
		"sourceLine": "throw new Error('boom')",
		"sourceLineFrameIndex": 0,
		"cause": {"exceptionMessage": "Error: inner", "frames": []},
		"aggregated": [
			{"exceptionMessage": "Error: a", "frames": []},
			{"exceptionMessage": "Error: b", "frames": []}
		]
	}`

	report, err := jserror.Decode(strings.NewReader(input), jserror.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "Uncaught Error: boom", report.ExceptionMessage)
	require.Len(t, report.Frames, 2)
	assert.Equal(t, "main", report.Frames[0].FunctionName)
	assert.True(t, report.Frames[1].IsInternal())
	require.NotNil(t, report.SourceLineFrameIndex)
	assert.Equal(t, 0, *report.SourceLineFrameIndex)
	require.NotNil(t, report.Cause)
	assert.Equal(t, "Error: inner", report.Cause.ExceptionMessage)
	require.Len(t, report.Aggregated, 2)
	assert.Equal(t, "Error: b", report.Aggregated[1].ExceptionMessage)
	assert.Equal(t, 4, report.CountNodes())
	assert.Equal(t, 2, report.CountFrames())
}

func TestDecodeYAML(t *testing.T) {
	input := `
exceptionMessage: "Uncaught Error: boom"
frames:
  - fileName: "file:///app.js"
    lineNumber: 1
  - fileName: "[ext:core/01.js]"
cause:
  name: RangeError
  message: out of range
`
	report, err := jserror.Decode(strings.NewReader(input), jserror.FormatYAML)

	require.NoError(t, err)
	require.Len(t, report.Frames, 2)
	assert.True(t, report.Frames[1].IsInternal())
	require.NotNil(t, report.Cause)
	assert.Equal(t, "RangeError: out of range", report.Cause.ExceptionMessage)
}

func TestDecodeSynthesizesFromStack(t *testing.T) {
	input := `{"name": "TypeError", "message": "x is not a function",
		"stack": "TypeError: x is not a function\n    at file:///app.js:1:1\n    at ext:core/01.js:2:2"}`

	report, err := jserror.Decode(strings.NewReader(input), jserror.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "Uncaught TypeError: x is not a function", report.ExceptionMessage)
	require.Len(t, report.Frames, 2)
	assert.Equal(t, "ext:core/01.js", report.Frames[1].FileName)
}

func TestDecodeMessageFromStackHeader(t *testing.T) {
	input := `{"stack": "Error: boom\n    at file:///app.js:1:1"}`

	report, err := jserror.Decode(strings.NewReader(input), jserror.FormatJSON)

	require.NoError(t, err)
	assert.Equal(t, "Uncaught Error: boom", report.ExceptionMessage)
}

func TestDecodeFailures(t *testing.T) {
	_, err := jserror.Decode(strings.NewReader("{"), jserror.FormatJSON)
	assert.Error(t, err)

	_, err = jserror.Decode(strings.NewReader(`{"frames": []}`), jserror.FormatJSON)
	assert.Error(t, err)

	_, err = jserror.Decode(strings.NewReader(`{}`), jserror.Format("xml"))
	assert.Error(t, err)
}

func TestErrorUnwrap(t *testing.T) {
	report := &jserror.Error{
		ExceptionMessage: "AggregateError",
		Aggregated:       []jserror.Error{{ExceptionMessage: "Error: a"}},
	}
	var target *jserror.Error
	require.True(t, errors.As(report, &target))
	assert.Same(t, report, target)
	assert.Len(t, report.Unwrap(), 1)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, jserror.FormatYAML, jserror.FormatFromPath("fixtures/error.YML"))
	assert.Equal(t, jserror.FormatJSON, jserror.FormatFromPath("error.json"))
	assert.Equal(t, jserror.FormatJSON, jserror.FormatFromPath("-"))

	format, err := jserror.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, jserror.FormatYAML, format)
	_, err = jserror.ParseFormat("toml")
	assert.Error(t, err)
}
