// Package api exposes the report service over HTTP and over a line based TCP
// protocol.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	httpserver "github.com/thanhminhmr/go-testerror/http"
	"github.com/thanhminhmr/go-testerror/jserror"
	"github.com/thanhminhmr/go-testerror/report"
)

const transport = "http"

const (
	errorReport = exception.String("Report is not valid")
	errorSubmit = exception.String("Failed to submit report")
	errorGet    = exception.String("Failed to get report")
	errorList   = exception.String("Failed to list reports")
)

type submitRequest struct {
	Format string     `query:"format" validate:"omitempty,oneof=json text"`
	Body   submitBody `json:""`
}

type submitBody struct {
	Name  string         `json:"name" validate:"max=256"`
	Error *jserror.Error `json:"error" validate:"required"`
}

type getRequest struct {
	ID     uuid.UUID `url:"id"`
	Format string    `query:"format" validate:"omitempty,oneof=json text"`
}

type listRequest struct {
	Limit int `query:"limit" validate:"min=0"`
}

type listResponse struct {
	Reports []*report.Report `json:"reports"`
}

type handler struct {
	service *report.Service
}

// Register mounts the report routes on router.
func Register(router chi.Router, service *report.Service) {
	h := handler{service: service}
	router.Route("/v1/reports", func(router chi.Router) {
		router.Post("/", httpserver.ServerRequestParser(h.submit))
		router.Get("/", httpserver.ServerRequestParser(h.list))
		router.Get("/{id}", httpserver.ServerRequestParser(h.get))
	})
}

func (h handler) submit(ctx context.Context, request *submitRequest) httpserver.ServerResponse {
	if err := request.Body.Error.Complete(); err != nil {
		return httpserver.ServerErrorResponse{Status: http.StatusBadRequest, Cause: errorReport.AddCause(err)}
	}
	submitted, err := h.service.Submit(ctx, transport, request.Body.Name, request.Body.Error)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to submit report")
		return httpserver.ServerErrorResponse{Status: http.StatusInternalServerError, Cause: errorSubmit}
	}
	return respond(http.StatusCreated, submitted, request.Format)
}

func (h handler) get(ctx context.Context, request *getRequest) httpserver.ServerResponse {
	found, err := h.service.Get(ctx, request.ID)
	if errors.Is(err, report.ErrNotFound) {
		return httpserver.ServerErrorResponse{Status: http.StatusNotFound, Cause: err}
	} else if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to get report")
		return httpserver.ServerErrorResponse{Status: http.StatusInternalServerError, Cause: errorGet}
	}
	return respond(http.StatusOK, found, request.Format)
}

func (h handler) list(ctx context.Context, request *listRequest) httpserver.ServerResponse {
	reports, err := h.service.List(ctx, request.Limit)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to list reports")
		return httpserver.ServerErrorResponse{Status: http.StatusInternalServerError, Cause: errorList}
	}
	if reports == nil {
		reports = []*report.Report{}
	}
	return httpserver.ServerJsonResponse{Status: http.StatusOK, Response: listResponse{Reports: reports}}
}

func respond(status int, found *report.Report, format string) httpserver.ServerResponse {
	if format == "text" {
		return httpserver.ServerTextResponse{Status: status, Text: found.Text}
	}
	return httpserver.ServerJsonResponse{Status: status, Response: found}
}
