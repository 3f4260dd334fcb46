package main

import (
	"errors"
	"log"
	"net/http"

	"carrental/pkg/booking"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondEngineError maps the booking error taxonomy onto HTTP statuses.
// Client-facing errors keep their message; anything unexpected is logged and
// surfaced as a generic failure.
func respondEngineError(c *gin.Context, err error) {
	var validationErr *booking.ValidationError
	var conflictErr *booking.ConflictError
	var transitionErr *booking.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &conflictErr):
		respondError(c, http.StatusBadRequest, conflictErr.Error())
	case errors.As(err, &transitionErr):
		respondError(c, http.StatusBadRequest, transitionErr.Error())
	case errors.Is(err, booking.ErrCarNotFound):
		respondError(c, http.StatusNotFound, "Car not found")
	case errors.Is(err, booking.ErrReservationNotFound):
		respondError(c, http.StatusNotFound, "Reservation not found")
	default:
		log.Printf("Unexpected error: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
