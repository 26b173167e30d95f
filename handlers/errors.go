package handlers

import (
	"errors"
	"net/http"

	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// writeError maps the scheduling error taxonomy onto HTTP statuses:
// validation 400, missing records 404, slot conflicts 409, transient
// store failures 503, everything else 500.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *scheduling.ValidationError
		conflictErr   *scheduling.ConflictError
		notFoundErr   *scheduling.NotFoundError
		transientErr  *scheduling.TransientError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", conflictErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Error())
	case errors.As(err, &transientErr):
		utils.JSONError(c, http.StatusServiceUnavailable, "Temporary failure, please retry", transientErr.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
