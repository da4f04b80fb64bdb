package log

import (
	"github.com/thanhminhmr/go-testerror/capture"
	"github.com/thanhminhmr/go-testerror/render"
	"github.com/thanhminhmr/go-testerror/testerror"
)

var plain = render.New(false)

// Report renders err the way test errors are rendered: causes and
// suppressed errors as a tree, standard library frames hidden from the end.
func Report(err error) string {
	if err == nil {
		return ""
	}
	return testerror.FormatTestError(capture.FromError(err), plain)
}
