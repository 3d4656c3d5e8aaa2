// Package http is the HTTP edge of draftdesk: router facade, envelope writer, server
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"

	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/logger"
	pnet "draftdesk/internal/platform/net"
)

// Envelope is the body of every JSON response the API writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// dataEnvelope wraps data for a success status
func dataEnvelope(r *stdhttp.Request, status int, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
	}
}

// ErrorEnvelope maps err through perr, the status comes from its code
func ErrorEnvelope(r *stdhttp.Request, err error) Envelope {
	wire := perr.WireFrom(err)
	status := perr.HTTPStatusCode(wire.Code)
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// WriteJSON encodes v with status
// v is marshalled before the header goes out so an unencodable value still gets a 500
func WriteJSON(w stdhttp.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Named("http").Error().Err(err).Msg("encode response")
		stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// Response is what return style handlers hand back
// a Body that is an error turns into an error envelope with the mapped status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent is a bare 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err through perr when written
func Error(err error) Response { return Response{Body: err} }

// Handle mounts a return style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		env := ErrorEnvelope(r, err)
		WriteJSON(w, env.StatusCode, env)
		return
	}
	switch resp.Status {
	case stdhttp.StatusNoContent, stdhttp.StatusNotModified:
		w.WriteHeader(resp.Status)
	case 0:
		WriteJSON(w, stdhttp.StatusOK, dataEnvelope(r, stdhttp.StatusOK, resp.Body))
	default:
		WriteJSON(w, resp.Status, dataEnvelope(r, resp.Status, resp.Body))
	}
}
