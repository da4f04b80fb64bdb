package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/log"
)

func sample() {}

func TestFunc(t *testing.T) {
	if got := log.Func(nil).String(); got != "<nil>" {
		t.Fatalf("unexpected %q", got)
	}
	if got := log.Func(42).String(); got != "<int>" {
		t.Fatalf("unexpected %q", got)
	}
	if got := log.Func(sample).String(); !strings.HasPrefix(got, "github.com/thanhminhmr/go-testerror/log_test.sample (file://") {
		t.Fatalf("unexpected %q", got)
	}
	if got := log.Func(strings.ToUpper).String(); !strings.HasPrefix(got, "strings.ToUpper (ext:go/strings/") {
		t.Fatalf("unexpected %q", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := log.NewLogger(&buffer, &log.Config{Level: "warn"})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	if strings.Contains(buffer.String(), "hidden") || !strings.Contains(buffer.String(), "shown") {
		t.Fatalf("unexpected output %q", buffer.String())
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("unexpected level %v", logger.GetLevel())
	}
}

func TestReport(t *testing.T) {
	if got := log.Report(nil); got != "" {
		t.Fatalf("unexpected %q", got)
	}
	err := exception.String("Store: Failed to open").AddCause(exception.String("Postgres: Failed to connect"))
	got := log.Report(err)
	if !strings.HasPrefix(got, "Store: Failed to open\nCaused by: Postgres: Failed to connect") {
		t.Fatalf("unexpected %q", got)
	}
}
