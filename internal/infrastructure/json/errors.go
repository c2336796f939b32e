package json

import (
	"log"
	"net/http"
	"strconv"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, err error, msg string) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	Write(w, status, resp)
}

// WriteValidationError reports malformed or missing input. Validation
// failures carry their own message; nothing server-side is worth hiding.
func WriteValidationError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, err, err.Error())
}

func WriteNotFoundError(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusNotFound, nil, msg)
}

// WriteUpstreamError reports a failed provider call. 502 keeps the retry
// contract distinct from client errors and from our own 500s.
func WriteUpstreamError(w http.ResponseWriter, err error) {
	log.Printf("Upstream failure: %v", err)
	WriteError(w, http.StatusBadGateway, err, "An upstream provider is unavailable. Retry later.")
}

func WriteInternalError(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	WriteError(w, http.StatusInternalServerError, err, "An unexpected error occurred")
}

func WriteRateLimitError(w http.ResponseWriter, retryAfterSeconds int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	WriteError(w, http.StatusTooManyRequests, nil, "Rate limit exceeded. Retry later.")
}
