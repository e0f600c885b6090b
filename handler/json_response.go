package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	for k, v := range j.headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONHeader adds a response header
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Set(key, value)
	}
}

// JSON encodes v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as {"error": "..."}. HTTPError supplies the status
// and message; any other error is reported as a generic 500 so internal
// details do not leak to the client.
func JSONError(err error, opts ...JSONOption) Response {
	httpErr := ErrInternal
	var target HTTPError
	if errors.As(err, &target) {
		httpErr = target
	}

	r := &jsonResponse{
		status: httpErr.Code,
		body:   ErrorBody{Error: httpErr.Message},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
