package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "draftdesk/internal/platform/errors"
	pnet "draftdesk/internal/platform/net"
	phttp "draftdesk/internal/platform/net/http"
)

type renderIn struct {
	Text string `json:"text" validate:"required"`
}

func serve(t *testing.T, h phttp.Handler, method, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-9"))
	rec := httptest.NewRecorder()
	h(rec, req)

	var env phttp.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestCall_OKEnvelope(t *testing.T) {
	rec, env := serve(t, phttp.Call(func(*http.Request) (any, error) {
		return map[string]string{"tag": "orders"}, nil
	}), http.MethodGet, "")

	if rec.Code != http.StatusOK || env.StatusCode != http.StatusOK || env.Status != "OK" {
		t.Fatalf("status %d env %+v", rec.Code, env)
	}
	if env.RequestID != "rid-9" {
		t.Fatalf("request id %q", env.RequestID)
	}
	if m, _ := env.Data.(map[string]any); m["tag"] != "orders" {
		t.Fatalf("data %v", env.Data)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type %q", ct)
	}
}

func TestCall_ErrorEnvelope(t *testing.T) {
	rec, env := serve(t, phttp.Call(func(*http.Request) (any, error) {
		return nil, perr.WithField(perr.InvalidArgf("index out of range"), "index")
	}), http.MethodPost, "")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", rec.Code)
	}
	if env.Code != perr.ErrorCodeInvalidArgument || env.Field != "index" || env.Error != "index out of range" {
		t.Fatalf("env %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("error envelopes carry no data")
	}

	rec, env = serve(t, phttp.Call(func(*http.Request) (any, error) {
		return nil, errors.New("plain")
	}), http.MethodGet, "")
	if rec.Code != http.StatusInternalServerError || env.Code != perr.ErrorCodeUnknown {
		t.Fatalf("foreign error %d %+v", rec.Code, env)
	}
}

func TestCall_ResponsePassThrough(t *testing.T) {
	rec, _ := serve(t, phttp.Call(func(*http.Request) (any, error) {
		return phttp.NoContent(), nil
	}), http.MethodPost, "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content %d %q", rec.Code, rec.Body.String())
	}

	rec, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusAccepted, Body: "queued", Header: http.Header{"X-Track": {"t1"}}}
	}), http.MethodPost, "")
	if rec.Code != http.StatusAccepted || env.Data != "queued" || rec.Header().Get("X-Track") != "t1" {
		t.Fatalf("custom response %d %+v", rec.Code, env)
	}
}

func TestJSON_BindsAndValidates(t *testing.T) {
	h := phttp.JSON(func(_ *http.Request, in renderIn) (any, error) {
		return strings.ToUpper(in.Text), nil
	})

	rec, env := serve(t, h, http.MethodPost, `{"text":"hi"}`)
	if rec.Code != http.StatusOK || env.Data != "HI" {
		t.Fatalf("ok path %d %+v", rec.Code, env)
	}

	rec, env = serve(t, h, http.MethodPost, `{"text":`)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeJSON {
		t.Fatalf("bad json %d %+v", rec.Code, env)
	}

	rec, env = serve(t, h, http.MethodPost, `{}`)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("missing text %d %+v", rec.Code, env)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.WriteJSON(rec, http.StatusTeapot, map[string]int{"n": 1})
	if rec.Code != http.StatusTeapot || strings.TrimSpace(rec.Body.String()) != `{"n":1}` {
		t.Fatalf("%d %q", rec.Code, rec.Body.String())
	}
}
