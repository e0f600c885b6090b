package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates a response with status 200 and no body.
func Empty() Response {
	return emptyResponse{status: http.StatusOK}
}
