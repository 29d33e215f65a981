package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// envelope is the uniform response body. Clients branch on Success
// without inspecting status codes; Message and Errors are explicit nulls
// when absent, matching what existing clients expect.
type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message *string  `json:"message"`
	Errors  []string `json:"errors"`
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) respondSuccess(w http.ResponseWriter, data any, message string) {
	s.respond(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Message: optional(message),
	})
}

func (s *Server) respondErrors(w http.ResponseWriter, status int, errs ...string) {
	s.respond(w, status, envelope{
		Success: false,
		Errors:  errs,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
