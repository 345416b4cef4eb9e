package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serenelion/earthcare-network/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	if domainErr, ok := err.(*usecase.DomainError); ok {
		switch {
		case strings.HasSuffix(domainErr.Code, "_NOT_FOUND"):
			status = http.StatusNotFound
		case domainErr.Code == "VALIDATION_ERROR":
			status = http.StatusBadRequest
		default:
			status = http.StatusConflict
		}
	}

	respondJSON(w, status, errorResponse{Message: err.Error()})
}
