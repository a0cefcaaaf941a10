package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/hugh/agencyhub/internal/api/dto"
	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:   msg,
		Code:    dto.CodeBadRequest,
		Details: details,
	})
}

// writeError maps repository errors onto RPC status codes. Failures that are
// not the caller's fault are reported without detail.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr   *crm.ValidationError
		refErr *crm.ReferenceError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Code:    dto.CodeConstraintViolation,
			Details: verr.Fields,
		})
	case errors.As(err, &refErr):
		code := dto.CodeReferenceInvalid
		if refErr.Mismatch {
			code = dto.CodeReferenceMismatch
		}
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: refErr.Error(), Code: code})
	case errors.Is(err, crm.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: dto.CodeNotFound})
	case errors.Is(err, crm.ErrConstraintViolation):
		msg := "Request violates a data constraint"
		switch {
		case database.IsUniqueViolation(err):
			msg = "Request conflicts with existing data"
		case database.IsForeignKeyViolation(err):
			msg = "Request references a record that does not exist"
		}
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: msg, Code: dto.CodeConstraintViolation})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
			Code:  dto.CodeInternal,
		})
	}
}

// decodeJSON reads a single JSON object from the request body. It writes the
// 400 response itself and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is empty"
		}
		badRequest(w, msg, map[string]string{"body": err.Error()})
		return false
	}
	if dec.More() {
		badRequest(w, "Invalid request body", map[string]string{"body": "unexpected data after JSON object"})
		return false
	}
	return true
}

// uintParam reads a required positive integer from the query string.
func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		badRequest(w, fmt.Sprintf("Invalid %s", name), map[string]string{name: "Must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
