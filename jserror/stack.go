package jserror

import (
	"strconv"
	"strings"
)

// ParseStack extracts frames from a V8-style stack string:
//
//	TypeError: x is not a function
//	    at foo (file:///app.js:3:7)
//	    at async Promise.all (index 0)
//	    at ext:core/01_core.js:120:5
//
// Lines that are not "at" lines are skipped.
func ParseStack(stack string) StackFrames {
	var frames StackFrames
	for _, line := range strings.Split(stack, "\n") {
		body, found := strings.CutPrefix(strings.TrimSpace(line), "at ")
		if !found {
			continue
		}
		frames = append(frames, parseFrame(body))
	}
	return frames
}

// stackHeader returns the lines of a stack string before the first frame.
func stackHeader(stack string) string {
	var header []string
	for _, line := range strings.Split(stack, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "at ") {
			break
		}
		header = append(header, line)
	}
	return strings.TrimSpace(strings.Join(header, "\n"))
}

func parseFrame(body string) StackFrame {
	var frame StackFrame
	if rest, found := strings.CutPrefix(body, "async "); found {
		frame.IsAsync = true
		body = rest
	}
	if rest, found := strings.CutPrefix(body, "Promise.all (index "); found {
		if index, err := strconv.Atoi(strings.TrimSuffix(rest, ")")); err == nil {
			frame.IsPromiseAll = true
			frame.PromiseIndex = index
			return frame
		}
	}
	if rest, found := strings.CutPrefix(body, "new "); found {
		frame.IsConstructor = true
		body = rest
	}
	name, location, hasName := splitCallSite(body)
	if !hasName {
		frame.IsTopLevel = !frame.IsConstructor
		parseLocation(location, &frame)
		return frame
	}
	if before, method, found := strings.Cut(name, " [as "); found {
		name = before
		frame.MethodName = strings.TrimSuffix(method, "]")
	}
	frame.FunctionName = name
	if !frame.IsConstructor && frame.MethodName == "" && !strings.Contains(name, ".") {
		frame.IsTopLevel = true
	}
	parseLocation(location, &frame)
	return frame
}

// splitCallSite splits "name (location)" into its parts. A bare location has
// no name.
func splitCallSite(body string) (name string, location string, hasName bool) {
	if !strings.HasSuffix(body, ")") {
		return "", body, false
	}
	index := strings.Index(body, " (")
	if index < 0 {
		return "", body, false
	}
	return body[:index], body[index+2 : len(body)-1], true
}

func parseLocation(location string, frame *StackFrame) {
	if location == "native" {
		frame.IsNative = true
		return
	}
	if strings.HasPrefix(location, "eval at ") {
		if index := strings.LastIndex(location, ", "); index >= 0 {
			frame.IsEval = true
			frame.EvalOrigin = location[:index]
			location = location[index+2:]
		}
	}
	fileName, line, column := splitPosition(location)
	if fileName != "<anonymous>" {
		frame.FileName = fileName
	}
	frame.LineNumber = line
	frame.ColumnNumber = column
}

// splitPosition cuts the trailing ":line:column" (or ":line") off a location.
func splitPosition(location string) (fileName string, line int, column int) {
	rest, last, ok := cutNumber(location)
	if !ok {
		return location, 0, 0
	}
	fileName, first, ok := cutNumber(rest)
	if !ok {
		return rest, last, 0
	}
	return fileName, first, last
}

func cutNumber(value string) (string, int, bool) {
	index := strings.LastIndexByte(value, ':')
	if index < 0 {
		return value, 0, false
	}
	number, err := strconv.Atoi(value[index+1:])
	if err != nil || number < 0 {
		return value, 0, false
	}
	return value[:index], number, true
}
