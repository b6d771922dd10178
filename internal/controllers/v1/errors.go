package v1

import (
	"errors"
	"net/http"

	"github.com/fundward/backend/internal/ledger"
	"github.com/fundward/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, ledger.ErrAlreadyProcessed) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost = errors.New("you must send a file to this endpoint")
)
