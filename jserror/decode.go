package jserror

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/thanhminhmr/go-testerror/exception"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of an error report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	errorFormat = exception.String("JsError: Unsupported report format")
	errorDecode = exception.String("JsError: Failed to decode report")
	errorEmpty  = exception.String("JsError: Report is empty")
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(name)); format {
	case FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", errorFormat.SetMessage("%q", name)
	}
}

// Decode reads one error report and fills in the fields the runtime left out,
// see Complete.
func Decode(reader io.Reader, format Format) (*Error, error) {
	var report Error
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(reader).Decode(&report); err != nil {
			return nil, errorDecode.AddCause(err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(reader).Decode(&report); err != nil {
			return nil, errorDecode.AddCause(err)
		}
	default:
		return nil, errorFormat.SetMessage("%q", format)
	}
	if err := report.Complete(); err != nil {
		return nil, err
	}
	return &report, nil
}

// Complete fills in ExceptionMessage and Frames of every error in the tree
// from the raw Name, Message and Stack properties where they are missing. The
// root message gets the "Uncaught " prefix a runtime reports for unhandled
// errors. It fails only if the root ends up with no message at all.
func (e *Error) Complete() error {
	e.Walk(func(err *Error, depth int) bool {
		if err.ExceptionMessage == "" {
			err.ExceptionMessage = synthesizeMessage(err)
			if depth == 0 && err.ExceptionMessage != "" {
				err.ExceptionMessage = "Uncaught " + err.ExceptionMessage
			}
		}
		if err.Frames == nil && err.Stack != "" {
			err.Frames = ParseStack(err.Stack)
		}
		return true
	})
	if e.ExceptionMessage == "" {
		return errorEmpty
	}
	return nil
}

func synthesizeMessage(err *Error) string {
	switch {
	case err.Name != "" && err.Message != "":
		return err.Name + ": " + err.Message
	case err.Name != "":
		return err.Name
	case err.Message != "":
		return err.Message
	default:
		return stackHeader(err.Stack)
	}
}
