package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopcart-backend/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a standard error payload
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// DecodeJSONRequest decodes the request body into dst and writes a 400
// response on failure. Callers should return immediately when an error is
// returned; the response has already been written.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Request body is required")
		return errors.New("empty request body")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
