package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// storeError maps a propagated data-layer error onto a status code.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		apiError(w, "not found", http.StatusNotFound)
	case errors.Is(err, store.ErrAlreadyExists):
		apiError(w, "already exists", http.StatusConflict)
	case errors.Is(err, store.ErrInvalid):
		apiError(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.ErrorContext(r.Context(), op, "error", err)
		apiError(w, fmt.Sprintf("%s: %v", op, err), http.StatusInternalServerError)
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into T and validates it. On failure it writes
// a 400 and returns false.
func decode[T any](s *Server, w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	if err := s.validate.Struct(&req); err != nil {
		apiError(w, validationMessage(err), http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fe.Field()+" must be a YYYY-MM-DD date")
		case "email":
			msgs = append(msgs, fe.Field()+" must be an email address")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
