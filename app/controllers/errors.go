package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/logger"
	"github.com/shashiranjanraj/plantnet/pkg/response"
)

// shippedConflictMessage matches the message clients already display.
const shippedConflictMessage = "You can't delete/cancel once the product shipped"

// writeServiceError maps service sentinels onto the error contract.
// Anything unexpected is logged with the request id and answered 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrPlantNotFound):
		response.Error(w, http.StatusNotFound, "Plant not found")
	case errors.Is(err, services.ErrOrderNotFound):
		response.Error(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrOrderShipped):
		response.Error(w, http.StatusConflict, shippedConflictMessage)
	default:
		logger.WithCtx(r.Context()).Error("storage failure",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.Internal(w)
	}
}
