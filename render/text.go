package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/testerror"
)

// type check
var _ testerror.Renderer = (*Text)(nil)

// Text renders reports the way the script runtime prints uncaught errors:
// message, aggregated errors indented, source excerpt, "at" frames and the
// cause chain.
type Text struct {
	color         bool
	functionStyle lipgloss.Style
	locationStyle lipgloss.Style
	numberStyle   lipgloss.Style
	grayStyle     lipgloss.Style
	caretStyle    lipgloss.Style
	warningStyle  lipgloss.Style
}

// New returns a renderer, with ANSI colors if color is set.
func New(color bool) *Text {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI)
	style := renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Text{
		color:         color,
		functionStyle: style.Bold(true).Italic(true),
		locationStyle: style.Foreground(lipgloss.Color("6")),
		numberStyle:   style.Foreground(lipgloss.Color("3")),
		grayStyle:     style.Foreground(lipgloss.Color("8")),
		caretStyle:    style.Foreground(lipgloss.Color("1")),
		warningStyle:  style.Foreground(lipgloss.Color("3")),
	}
}

func (t *Text) Render(err *jserror.Error) string {
	if err == nil {
		return ""
	}
	var builder strings.Builder
	t.write(&builder, err, true)
	return builder.String()
}

func (t *Text) write(builder *strings.Builder, err *jserror.Error, includeSource bool) {
	builder.WriteString(err.ExceptionMessage)
	for index := range err.Aggregated {
		var inner strings.Builder
		t.write(&inner, &err.Aggregated[index], false)
		for _, line := range strings.Split(testerror.TrimUncaught(inner.String()), "\n") {
			builder.WriteString("\n    ")
			builder.WriteString(line)
		}
	}
	if includeSource {
		builder.WriteString(t.sourceLine(err))
	}
	for _, frame := range err.Frames {
		builder.WriteString("\n    at ")
		builder.WriteString(t.frame(frame))
	}
	if err.Cause != nil {
		var inner strings.Builder
		t.write(&inner, err.Cause, false)
		builder.WriteString("\nCaused by: ")
		builder.WriteString(testerror.TrimUncaught(inner.String()))
	}
}

// sourceLine returns the source excerpt with a caret under the column of the
// frame it belongs to, or nothing if that frame is gone or has no column.
func (t *Text) sourceLine(err *jserror.Error) string {
	index := err.SourceLineFrameIndex
	if err.SourceLine == "" || index == nil || *index < 0 || *index >= len(err.Frames) {
		return ""
	}
	column := err.Frames[*index].ColumnNumber
	if column <= 0 {
		return ""
	}
	// columns count characters, not bytes
	chars := []rune(err.SourceLine)
	if column > len(chars) {
		return "\n" + t.paint(t.warningStyle, "Warning") +
			" Couldn't format source line: Column " + strconv.Itoa(column) +
			" is out of bounds (source may have changed at runtime)"
	}
	var underline strings.Builder
	for _, char := range chars[:column-1] {
		if char == '\t' {
			underline.WriteByte('\t')
		} else {
			underline.WriteByte(' ')
		}
	}
	underline.WriteByte('^')
	return "\n" + err.SourceLine + "\n" + t.paint(t.caretStyle, underline.String())
}

func (t *Text) frame(frame jserror.StackFrame) string {
	var builder strings.Builder
	if frame.IsAsync {
		builder.WriteString(t.paint(t.grayStyle, "async "))
	}
	if frame.IsPromiseAll {
		builder.WriteString(t.paint(t.functionStyle, "Promise.all (index "+strconv.Itoa(frame.PromiseIndex)+")"))
		return builder.String()
	}
	switch {
	case !frame.IsTopLevel && !frame.IsConstructor:
		builder.WriteString(t.paint(t.functionStyle, methodName(frame)))
	case frame.IsConstructor:
		builder.WriteString(t.paint(t.grayStyle, "new "))
		if frame.FunctionName != "" {
			builder.WriteString(t.paint(t.functionStyle, frame.FunctionName))
		} else {
			builder.WriteString(t.paint(t.locationStyle, "<anonymous>"))
		}
	case frame.FunctionName != "":
		builder.WriteString(t.paint(t.functionStyle, frame.FunctionName))
	default:
		builder.WriteString(t.location(frame))
		return builder.String()
	}
	builder.WriteString(" (")
	builder.WriteString(t.location(frame))
	builder.WriteString(")")
	return builder.String()
}

func methodName(frame jserror.StackFrame) string {
	var builder strings.Builder
	if frame.FunctionName != "" {
		if frame.TypeName != "" && !strings.HasPrefix(frame.FunctionName, frame.TypeName) {
			builder.WriteString(frame.TypeName)
			builder.WriteString(".")
		}
		builder.WriteString(frame.FunctionName)
		if frame.MethodName != "" && !strings.HasSuffix(frame.FunctionName, frame.MethodName) {
			builder.WriteString(" [as ")
			builder.WriteString(frame.MethodName)
			builder.WriteString("]")
		}
		return builder.String()
	}
	if frame.TypeName != "" {
		builder.WriteString(frame.TypeName)
		builder.WriteString(".")
	}
	if frame.MethodName != "" {
		builder.WriteString(frame.MethodName)
	} else {
		builder.WriteString("<anonymous>")
	}
	return builder.String()
}

func (t *Text) location(frame jserror.StackFrame) string {
	if frame.IsNative {
		return t.paint(t.locationStyle, "native")
	}
	var builder strings.Builder
	if frame.FileName != "" {
		builder.WriteString(t.paint(t.locationStyle, frame.FileName))
	} else {
		if frame.IsEval && frame.EvalOrigin != "" {
			builder.WriteString(t.paint(t.locationStyle, frame.EvalOrigin))
			builder.WriteString(", ")
		}
		builder.WriteString(t.paint(t.locationStyle, "<anonymous>"))
	}
	if frame.LineNumber > 0 {
		builder.WriteString(":")
		builder.WriteString(t.paint(t.numberStyle, strconv.Itoa(frame.LineNumber)))
		if frame.ColumnNumber > 0 {
			builder.WriteString(":")
			builder.WriteString(t.paint(t.numberStyle, strconv.Itoa(frame.ColumnNumber)))
		}
	}
	return builder.String()
}

func (t *Text) paint(style lipgloss.Style, value string) string {
	if !t.color {
		return value
	}
	return style.Render(value)
}
