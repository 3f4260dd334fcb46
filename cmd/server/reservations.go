package main

import (
	"log"
	"net/http"
	"time"

	"carrental/pkg/auth"
	"carrental/pkg/booking"
	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
)

func reservationView(reservation *models.Reservation) gin.H {
	return gin.H{
		"reservationUid": reservation.ReservationUid,
		"startDate":      reservation.StartDate.Format(booking.DateFormat),
		"endDate":        reservation.EndDate.Format(booking.DateFormat),
		"totalPrice":     reservation.TotalPrice.StringFixed(2),
		"status":         reservation.Status,
		"createdAt":      reservation.CreatedAt.Format(time.RFC3339),
	}
}

func createReservation(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var request struct {
		CarUid    string `json:"carUid" binding:"required"`
		StartDate string `json:"startDate" binding:"required"`
		EndDate   string `json:"endDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	start, err := time.Parse(booking.DateFormat, request.StartDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(booking.DateFormat, request.EndDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
		return
	}

	reservation, err := engine.Book(principal.UserID, request.CarUid, start, end)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Reservation created", reservationView(reservation))
}

func myReservations(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var reservations []models.Reservation
	err := db.Where("user_id = ?", principal.UserID).
		Preload("Car").
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		log.Printf("Failed to load reservations: %v", err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]gin.H, len(reservations))
	for i := range reservations {
		item := reservationView(&reservations[i])
		item["car"] = gin.H{
			"carUid": reservations[i].Car.CarUid,
			"make":   reservations[i].Car.Make,
			"model":  reservations[i].Car.Model,
		}
		items[i] = item
	}
	respondOK(c, http.StatusOK, "Your reservations", items)
}
