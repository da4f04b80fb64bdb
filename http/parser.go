package http

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/thanhminhmr/go-testerror/exception"
	"github.com/thanhminhmr/go-testerror/internal"
)

// ServerRequestHandler handles a request already bound to ServerRequest.
// Returning nil responds with 204 No Content.
type ServerRequestHandler[ServerRequest any] func(ctx context.Context, request *ServerRequest) ServerResponse

// ServerRequestParser binds the "url", "query" and "json" tagged fields of
// ServerRequest, validates it and calls handler. Misconfigured request types
// panic when the route is built.
func ServerRequestParser[ServerRequest any](handler ServerRequestHandler[ServerRequest]) http.HandlerFunc {
	tags := checkServerRequestConfiguration[ServerRequest]()
	return func(writer http.ResponseWriter, request *http.Request) {
		var parsed ServerRequest
		serverRequestHandler(writer, request, &parsed, tags, func() ServerResponse {
			return handler(request.Context(), &parsed)
		})
	}
}

func serverRequestHandler(
	writer http.ResponseWriter,
	request *http.Request,
	parsed any,
	tags serverRequestConfiguration,
	handler func() ServerResponse,
) {
	logger := zerolog.Ctx(request.Context())
	if errorResponse := parseServerRequest(request, parsed, tags); errorResponse != nil {
		logger.Warn().Err(errorResponse).Msg("Failed to parse request")
		if err := errorResponse.Render(writer); err != nil {
			logger.Error().Err(err).Msg("Failed to render error")
		}
		return
	}
	logger.Trace().Any("request", parsed).Msg("Request parsed")
	if response := handler(); response != nil {
		if err := response.Render(writer); err != nil {
			logger.Error().Err(err).Msg("Failed to render response")
		}
	} else {
		logger.Trace().Msg("Empty response returned")
		writer.WriteHeader(http.StatusNoContent)
	}
}

//region serverRequestConfiguration

type serverRequestConfiguration struct {
	flags          uint
	jsonFieldIndex int
}

const (
	tagQuery uint = 1 << iota
	tagUrl
	tagJson
)

func checkServerRequestConfiguration[ServerRequest any]() serverRequestConfiguration {
	requestType := reflect.TypeFor[ServerRequest]()
	if requestType.Kind() != reflect.Struct {
		panic("BUG: ServerRequest must be a struct")
	}
	tags := serverRequestConfiguration{}
	for index := range requestType.NumField() {
		field := requestType.Field(index)
		if _, exists := field.Tag.Lookup("query"); exists {
			tags.flags |= tagQuery
		}
		if _, exists := field.Tag.Lookup("url"); exists {
			tags.flags |= tagUrl
		}
		if value, exists := field.Tag.Lookup("json"); exists {
			if value != "" {
				panic("BUG: json tag value must be empty")
			}
			if tags.flags&tagJson != 0 {
				panic("BUG: multiple json-tagged fields are not allowed")
			}
			tags.flags |= tagJson
			tags.jsonFieldIndex = index
		}
	}
	return tags
}

//endregion serverRequestConfiguration

//region parseServerRequest

const (
	errorInvalid            = exception.String("Request is not valid")
	errorContentTypeMissing = exception.String("Content-Type is missing")
	errorContentTypeInvalid = exception.String("Content-Type is invalid")
	errorContentType        = exception.String("Content-Type is unsupported")
	errorBindQuery          = exception.String("Bind query values failed")
	errorBindUrl            = exception.String("Bind url params failed")
	errorDecodeJson         = exception.String("Decode json body failed")
	errorBodyTooLarge       = exception.String("Request body is too large")
	errorCreateDecoder      = exception.String("Create decoder failed")
	errorDecode             = exception.String("Decode failed")
)

func parseServerRequest(request *http.Request, parsed any, tags serverRequestConfiguration) (errorResponse *ServerErrorResponse) {
	if tags.flags&tagQuery != 0 {
		if err := bindQuery(request, parsed); err != nil {
			return err
		}
	}
	if tags.flags&tagUrl != 0 {
		if err := bindUrl(request, parsed); err != nil {
			return err
		}
	}
	// validate after the body is bound
	defer func() {
		if errorResponse != nil {
			return
		}
		if err := internal.Validator.Struct(parsed); err != nil {
			errorResponse = &ServerErrorResponse{
				Cause:  errorInvalid.AddCause(err),
				Status: http.StatusBadRequest,
			}
		}
	}()
	if tags.flags&tagJson == 0 {
		return nil
	}
	switch request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		contentType := request.Header.Get("Content-Type")
		if contentType == "" {
			return &ServerErrorResponse{
				Cause:  errorContentTypeMissing,
				Status: http.StatusUnsupportedMediaType,
			}
		}
		contentType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return &ServerErrorResponse{
				Cause:  errorContentTypeInvalid.AddCause(err),
				Status: http.StatusBadRequest,
			}
		}
		if contentType != "application/json" {
			return &ServerErrorResponse{
				Cause:  errorContentType,
				Status: http.StatusUnsupportedMediaType,
			}
		}
		return bindJson(request, parsed, tags.jsonFieldIndex)
	}
	return nil
}

func bindQuery(request *http.Request, parsed any) *ServerErrorResponse {
	if values := request.URL.Query(); len(values) > 0 {
		if err := bind("query", values, parsed); err != nil {
			return &ServerErrorResponse{
				Cause:  errorBindQuery.AddCause(err),
				Status: http.StatusBadRequest,
			}
		}
	}
	return nil
}

func bindUrl(request *http.Request, parsed any) *ServerErrorResponse {
	routeContext := chi.RouteContext(request.Context())
	if routeContext != nil && len(routeContext.URLParams.Keys) > 0 {
		urlParams := map[string]string{}
		for index, key := range routeContext.URLParams.Keys {
			urlParams[key] = routeContext.URLParams.Values[index]
		}
		if err := bind("url", urlParams, parsed); err != nil {
			return &ServerErrorResponse{
				Cause:  errorBindUrl.AddCause(err),
				Status: http.StatusBadRequest,
			}
		}
	}
	return nil
}

func bindJson(request *http.Request, parsed any, fieldIndex int) *ServerErrorResponse {
	fieldAsInterface := reflect.ValueOf(parsed).Elem().Field(fieldIndex).Addr().Interface()
	if err := json.NewDecoder(request.Body).Decode(fieldAsInterface); err != nil {
		if maxBytesError := (*http.MaxBytesError)(nil); errors.As(err, &maxBytesError) {
			return &ServerErrorResponse{
				Cause:  errorBodyTooLarge.AddCause(err),
				Status: http.StatusRequestEntityTooLarge,
			}
		}
		return &ServerErrorResponse{
			Cause:  errorDecodeJson.AddCause(err),
			Status: http.StatusBadRequest,
		}
	}
	return nil
}

func bind(tag string, input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:           internal.DefaultDecodeHookFunc,
		WeaklyTypedInput:     true,
		Result:               output,
		TagName:              tag,
		IgnoreUntaggedFields: true,
	})
	if err != nil {
		return errorCreateDecoder.AddCause(err)
	}
	if err := decoder.Decode(input); err != nil {
		return errorDecode.AddCause(err)
	}
	return nil
}

//endregion parseServerRequest
