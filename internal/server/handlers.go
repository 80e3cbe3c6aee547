package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jask/glossview/internal/database/repository"
)

var validate = validator.New()

// Missing fields are rejected; empty strings are allowed.
type termRequest struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type termResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type detail struct {
	Detail string `json:"detail"`
}

func toResponse(t repository.Term) termResponse {
	return termResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Glossary API"})
}

func (s *Server) createTerm(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTerm(w, r)
	if !ok {
		return
	}
	t, err := s.terms.Create(r.Context(), repository.Term{Name: *req.Name, Description: *req.Description})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, detail{"Term already exists"})
	case err != nil:
		s.internal(w, "create term", err)
	default:
		writeJSON(w, http.StatusOK, toResponse(t))
	}
}

func (s *Server) listTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := s.terms.List(r.Context())
	if err != nil {
		s.internal(w, "list terms", err)
		return
	}
	out := make([]termResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, toResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}
	t, err := s.terms.Get(r.Context(), id)
	switch {
	case err != nil:
		s.internal(w, "get term", err)
	case t == nil:
		writeJSON(w, http.StatusNotFound, detail{"Term not found"})
	default:
		writeJSON(w, http.StatusOK, toResponse(*t))
	}
}

func (s *Server) updateTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeTerm(w, r)
	if !ok {
		return
	}
	t := repository.Term{ID: id, Name: *req.Name, Description: *req.Description}
	err := s.terms.Update(r.Context(), t)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, detail{"Term not found"})
	case errors.Is(err, repository.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, detail{"Term already exists"})
	case err != nil:
		s.internal(w, "update term", err)
	default:
		writeJSON(w, http.StatusOK, toResponse(t))
	}
}

func (s *Server) deleteTerm(w http.ResponseWriter, r *http.Request) {
	id, ok := termID(w, r)
	if !ok {
		return
	}
	err := s.terms.Delete(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, detail{"Term not found"})
	case err != nil:
		s.internal(w, "delete term", err)
	default:
		writeJSON(w, http.StatusOK, detail{fmt.Sprintf("Term with ID %d has been deleted", id)})
	}
}

// graph serves the graph document as stored, without re-encoding it.
func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.opts.GraphPath)
	if errors.Is(err, os.ErrNotExist) {
		writeJSON(w, http.StatusNotFound, detail{"Graph data not found"})
		return
	}
	if err != nil {
		s.internal(w, "read graph", err)
		return
	}
	if !json.Valid(data) {
		s.internal(w, "read graph", fmt.Errorf("%s is not valid JSON", s.opts.GraphPath))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) decodeTerm(w http.ResponseWriter, r *http.Request) (termRequest, bool) {
	var req termRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{"invalid JSON body"})
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{validationMessage(err)})
		return req, false
	}
	return req, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		if e.Tag() == "required" {
			msgs = append(msgs, field+" is required")
		} else {
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func termID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "termID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail{"term id must be an integer"})
		return 0, false
	}
	return id, true
}

func (s *Server) internal(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, detail{"Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
