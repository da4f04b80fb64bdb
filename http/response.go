package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

type ServerErrorResponse struct {
	Status int
	Cause  error
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(e.Status)
	_, err := writer.Write([]byte(e.Cause.Error()))
	return err
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}

func (e ServerErrorResponse) Unwrap() error {
	return e.Cause
}

func (e ServerErrorResponse) MarshalZerologObject(event *zerolog.Event) {
	event.AnErr("cause", e.Cause).Int("status", e.Status)
}

type ServerJsonResponse struct {
	Status   int
	Response any
}

func (r ServerJsonResponse) Render(writer http.ResponseWriter) error {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(r.Status)
	return json.NewEncoder(writer).Encode(r.Response)
}

// ServerTextResponse writes Text as plain text, for terminals and test logs.
type ServerTextResponse struct {
	Status int
	Text   string
}

func (r ServerTextResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(r.Status)
	_, err := writer.Write([]byte(r.Text))
	return err
}
