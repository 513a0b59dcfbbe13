package handlers

import (
	"net/http"

	"github.com/contentloom/contentloom/internal/pkg/errors"
	"github.com/contentloom/contentloom/internal/pkg/utils"
)

// writeServiceError maps a service error to the wire, preserving AppError
// codes and hiding internals behind a generic 500 otherwise.
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Something went wrong", err))
}
