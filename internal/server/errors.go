package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ibeckermayer/mockshot/internal/screenshot"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/store"
)

// Every fixed error message
const (
	ErrorInvalidBody         = "Invalid body"
	ErrorBodyTooLarge        = "Request body too large"
	ErrorScreenshotFailed    = "Failed to generate screenshot"
	ErrorInternalServerError = "Internal server error"
	ErrorMethodNotAllowed    = "Method not allowed"
	ErrorNotFound            = "Not found"
	ErrorInvalidLimit        = "Invalid limit"
)

// Ok is the health check body
const Ok = "OK"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, serializer.ErrorResponse{Success: false, Error: msg})
}

// writeDecodeError reports a body that could not be read or parsed
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, ErrorBodyTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, ErrorInvalidBody+": "+err.Error())
}

// writeCaptureError maps service errors to 400 for bad input and 500 for everything else
func writeCaptureError(w http.ResponseWriter, err error) {
	if errors.Is(err, screenshot.ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg := ErrorScreenshotFailed
	if err != nil {
		msg += ": " + err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

// writeProfileError maps profile rule violations to client errors
func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrProfileNameRequired), errors.Is(err, store.ErrProfileLimit):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrProfileExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[server] profile store error: %v", err)
		writeError(w, http.StatusInternalServerError, ErrorInternalServerError)
	}
}
