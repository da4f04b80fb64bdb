package exception_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/thanhminhmr/go-testerror/exception"
)

func checkStackTrace(t *testing.T, trace exception.StackFrames, function string) {
	t.Helper()
	if len(trace) == 0 {
		t.Fatalf("expected non-empty stack trace")
	}
	for _, frame := range trace {
		if strings.HasSuffix(frame.Function, function) {
			return
		}
	}
	t.Fatalf("expected %s in stack trace, got %+v", function, trace)
}

func TestPanicRecoverPair(t *testing.T) {
	defer func() {
		recovered := exception.Recover(recover())
		if recovered == nil {
			t.Fatalf("expected recovered exception")
		}
		checkStackTrace(t, recovered.GetStackTrace(), "/exception_test.TestPanicRecoverPair")
		if recovered.GetRecovered() != "Test" {
			t.Fatalf("expected recovered value, got %v", recovered.GetRecovered())
		}
	}()
	exception.Panic("Test")
}

func TestRecoverRawPanic(t *testing.T) {
	defer func() {
		recovered := exception.Recover(recover())
		if recovered == nil {
			t.Fatalf("expected recovered exception")
		}
		checkStackTrace(t, recovered.GetStackTrace(), "/exception_test.TestRecoverRawPanic")
		if !errors.Is(recovered, exception.PanicError) || recovered.Error() != "panic: Test" {
			t.Fatalf("expected panic error, got %v", recovered)
		}
	}()
	panic("Test")
}

func TestRecoverNothing(t *testing.T) {
	if recovered := exception.Recover(nil); recovered != nil {
		t.Fatalf("expected nil, got %v", recovered)
	}
}
