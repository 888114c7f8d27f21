package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

const defaultExportsLimit = 50

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, Ok)
}

// decodeJSON reads exactly one JSON value from the body
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	// Drain so MaxBytesReader can report oversized trailing data
	_, err := io.Copy(io.Discard, r.Body)
	return err
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	var req serializer.Request
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := s.screenshots.Capture(r.Context(), req)
	if err != nil {
		writeCaptureError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.PNG); err != nil {
		log.Printf("[server] failed to write png %s: %v", res.ID, err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req serializer.Request
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	doc, err := s.screenshots.Render(req)
	if err != nil {
		writeCaptureError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	io.WriteString(w, doc)
}

type saveProfileRequest struct {
	Name   string       `json:"name"`
	Author types.Author `json:"author"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.ListProfiles(r.Context())
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := s.profiles.SaveProfile(r.Context(), req.Name, req.Author)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.profiles.DeleteProfile(r.Context(), id); err != nil {
		writeProfileError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	limit := defaultExportsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, ErrorInvalidLimit)
			return
		}
		limit = n
	}

	exports, err := s.history.ListExports(r.Context(), limit)
	if err != nil {
		log.Printf("[server] failed to list exports: %v", err)
		writeError(w, http.StatusInternalServerError, ErrorInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, exports)
}

func (s *Server) handleExportStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		log.Printf("[server] failed to read export stats: %v", err)
		writeError(w, http.StatusInternalServerError, ErrorInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
