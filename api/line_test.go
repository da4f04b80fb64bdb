package api_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-testerror/api"
	"github.com/thanhminhmr/go-testerror/metrics"
	"github.com/thanhminhmr/go-testerror/render"
	"github.com/thanhminhmr/go-testerror/report"
)

type lineReply struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// readReply reads one JSON reply line.
func readReply(t *testing.T, reader *bufio.Reader) lineReply {
	t.Helper()
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	var reply lineReply
	require.NoError(t, json.Unmarshal([]byte(line), &reply))
	return reply
}

func startLineHandler(t *testing.T) (*report.MemoryStore, net.Conn, *bufio.Reader, chan error) {
	t.Helper()
	logger := zerolog.Nop()
	store := report.NewMemoryStore()
	service := report.NewService(
		render.New(false),
		store,
		metrics.NewRegistry(),
		&logger,
		&report.Config{Store: report.StoreMemory, DefaultLimit: 20, MaxLimit: 100},
	)
	client, server := net.Pipe()
	require.NoError(t, client.SetDeadline(time.Now().Add(5*time.Second)))
	done := make(chan error, 1)
	go func() {
		done <- api.LineHandler(service).Handle(logger.WithContext(context.Background()), server)
	}()
	return store, client, bufio.NewReader(client), done
}

func writeLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()
	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)
}

func TestLineHandler(t *testing.T) {
	store, client, reader, done := startLineHandler(t)

	writeLine(t, client, `{"name":"t","error":{"exceptionMessage":"Uncaught Error: boom","frames":[`+
		`{"functionName":"f","fileName":"file:///a.js","lineNumber":1,"columnNumber":2},`+
		`{"functionName":"g","fileName":"ext:cli/40_test.js","lineNumber":3,"columnNumber":4}]}}`)
	reply := readReply(t, reader)
	assert.Equal(t, "Error: boom\n    at f (file:///a.js:1:2)", reply.Text)
	assert.Empty(t, reply.Error)
	_, err := uuid.Parse(reply.ID)
	assert.NoError(t, err)

	writeLine(t, client, "")
	writeLine(t, client, `not json`)
	reply = readReply(t, reader)
	assert.True(t, strings.HasPrefix(reply.Error, "Request line is not valid"), reply.Error)
	assert.Empty(t, reply.Text)

	writeLine(t, client, `{"name":"t"}`)
	assert.Equal(t, lineReply{Error: "Request line is not valid: error is missing"}, readReply(t, reader))

	require.NoError(t, client.Close())
	require.NoError(t, <-done)

	reports, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestLineHandlerMultilineMessage(t *testing.T) {
	_, client, reader, done := startLineHandler(t)

	writeLine(t, client, `{"name":"diff","error":{"exceptionMessage":"Error: a\n\nb","frames":[`+
		`{"fileName":"file:///a.js","lineNumber":1,"isTopLevel":true}]}}`)
	writeLine(t, client, `{"name":"next","error":{"exceptionMessage":"Error: c"}}`)

	assert.Equal(t, "Error: a\n\nb\n    at file:///a.js:1", readReply(t, reader).Text)
	assert.Equal(t, "Error: c", readReply(t, reader).Text)

	require.NoError(t, client.Close())
	require.NoError(t, <-done)
}
