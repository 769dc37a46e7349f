package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/domain"
)

// getPrincipalEmail extracts the authenticated user's email from the request
// context. The email is placed there by the authentication middleware; a
// missing value means the middleware did not run for this route.
func getPrincipalEmail(r *http.Request) (string, bool) {
	return shared.GetPrincipalEmail(r.Context())
}

// getPathID extracts a numeric entity ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidID, paramName)
	}
	return id, nil
}

// errInvalidQueryParam builds the bad-request error for a malformed numeric
// query parameter.
func errInvalidQueryParam(name string) error {
	return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidID, name)
}

// respondWithMappedError translates a service or store error into its HTTP
// status and safe message, logging the original error with redaction.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
