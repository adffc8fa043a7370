package handler

import (
	"context"
	"errors"
	"net/http"

	"folio-api/internal/logic"
	"folio-api/pkg/portfolio"
)

type errorBody struct {
	Error string `json:"error"`
}

// ErrorHandler maps domain errors to HTTP status codes. Installed via
// httpx.SetErrorHandlerCtx at startup.
func ErrorHandler(_ context.Context, err error) (int, any) {
	var validation *portfolio.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, errorBody{Error: validation.Error()}
	case errors.Is(err, logic.ErrHoldingNotFound):
		return http.StatusNotFound, errorBody{Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Error: err.Error()}
	}
}
