package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"

	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/report"
	"github.com/thanhminhmr/go-testerror/tcp"
)

// maxLineBytes bounds one request line.
const maxLineBytes = 1 << 20

const (
	lineTransport = "tcp"
	errorLine     = exception.String("Request line is not valid")
	errorWrite    = exception.String("Failed to write response")
	errorRead     = exception.String("Failed to read request")
)

type lineRequest struct {
	Name  string         `json:"name"`
	Error *jserror.Error `json:"error"`
}

// lineReply is one response line. Exactly one of Text and Error is set.
type lineReply struct {
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// LineHandler serves newline delimited JSON requests of the form
// {"name": ..., "error": {...}}. Every request is answered with one JSON line,
// {"id": ..., "text": ...} with the rendered report or {"error": ...}.
// Blank request lines are ignored.
func LineHandler(service *report.Service) tcp.ServerHandler {
	return tcp.ServerHandlerFunc(func(ctx context.Context, conn net.Conn) error {
		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
		defer stop()
		logger := zerolog.Ctx(ctx)
		writer := bufio.NewWriter(conn)
		encoder := json.NewEncoder(writer)
		encoder.SetEscapeHTML(false)
		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var reply lineReply
			if submitted, err := handleLine(ctx, service, line); err != nil {
				logger.Warn().Err(err).Msg("Rejected request line")
				reply.Error = err.Error()
			} else {
				reply.ID = submitted.ID.String()
				reply.Text = submitted.Text
			}
			if err := encoder.Encode(&reply); err != nil {
				return errorWrite.AddCause(err)
			}
			if err := writer.Flush(); err != nil {
				return errorWrite.AddCause(err)
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			return errorRead.AddCause(err)
		}
		return nil
	})
}

func handleLine(ctx context.Context, service *report.Service, line []byte) (*report.Report, error) {
	var request lineRequest
	if err := json.Unmarshal(line, &request); err != nil {
		return nil, errorLine.AddCause(err)
	}
	if request.Error == nil {
		return nil, errorLine.SetMessage("error is missing")
	}
	if err := request.Error.Complete(); err != nil {
		return nil, errorLine.AddCause(err)
	}
	return service.Submit(ctx, lineTransport, request.Name, request.Error)
}
